package database

import (
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/model"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedAdmin(db)

	return db, nil
}

// Migrate creates or updates every table the server uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.ActivityProgress{},
		&model.JournalEntry{},
		&model.Post{},
		&model.Comment{},
		&model.CommunityLike{},
		&model.PlacementResult{},
		&model.Achievement{},
	)
}

// seedAdmin creates the bootstrap admin account on an empty users table. The
// password must be changed at first login.
func seedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("changeme-admin"), bcrypt.DefaultCost)
	if err != nil {
		return
	}
	admin := &model.User{
		Name:     "관리자",
		Email:    "admin@localhost",
		Password: string(hashed),
		Role:     model.Admin,
		Level:    model.LevelC1,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("seed admin failed: %v", err)
	}
}
