// @title English Learning Platform API
// @version 1.0
// @description 8주 영어 학습 플랫폼 백엔드 서버.

// @contact.name API 지원

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"english_edu_backend/internal/app"
	"english_edu_backend/internal/config"
	"english_edu_backend/pkg/logger"
	"flag"
	"log"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "데이터베이스 마이그레이션만 수행하고 종료")
	migrate := flag.Bool("migrate", false, "시작 시 데이터베이스 마이그레이션 강제 수행")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("데이터베이스 마이그레이션 완료, 종료합니다")
		return
	}

	application.Run()
}
