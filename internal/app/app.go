package app

import (
	"context"
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/controller"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/service"
	"english_edu_backend/pkg/configwatcher"
	"english_edu_backend/pkg/database"
	"english_edu_backend/pkg/logger"
	"english_edu_backend/pkg/monitoring"
	"english_edu_backend/pkg/security"
	"english_edu_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user        *repository.UserRepository
	progress    *repository.ProgressRepository
	journal     *repository.JournalRepository
	post        *repository.PostRepository
	comment     *repository.CommentRepository
	placement   *repository.PlacementRepository
	achievement *repository.AchievementRepository
}

type services struct {
	storage     *service.StorageService
	auth        *service.AuthService
	user        *service.UserService
	progress    *service.ProgressService
	curriculum  *service.CurriculumService
	journal     *service.JournalService
	community   *service.CommunityService
	placement   *service.PlacementService
	achievement *service.AchievementService
	dashboard   *service.DashboardService
	speaking    *service.SpeakingService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	progress    *controller.ProgressController
	curriculum  *controller.CurriculumController
	journal     *controller.JournalController
	community   *controller.CommunityController
	placement   *controller.PlacementController
	dashboard   *controller.DashboardController
	achievement *controller.AchievementController
	speaking    *controller.SpeakingController
	health      *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		progress:    repository.NewProgressRepository(db),
		journal:     repository.NewJournalRepository(db),
		post:        repository.NewPostRepository(db),
		comment:     repository.NewCommentRepository(db),
		placement:   repository.NewPlacementRepository(db),
		achievement: repository.NewAchievementRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) (*services, error) {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.progress = service.NewProgressService(repos.progress)

	curriculum, err := service.NewCurriculumService(cfg.Content.CurriculumFile)
	if err != nil {
		return nil, err
	}
	s.curriculum = curriculum

	s.journal = service.NewJournalService(repos.journal)
	s.community = service.NewCommunityService(repos.post, repos.comment, rdb)

	placement, err := service.NewPlacementService(cfg.Content.PlacementTestFile, repos.placement, repos.user)
	if err != nil {
		return nil, err
	}
	s.placement = placement

	s.achievement = service.NewAchievementService(repos.achievement, repos.user)
	s.dashboard = service.NewDashboardService(s.progress, s.journal, s.achievement, s.curriculum)
	s.speaking = service.NewSpeakingService(repos.progress, s.curriculum, s.storage)

	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth),
		user:        controller.NewUserController(s.user),
		progress:    controller.NewProgressController(s.progress, s.curriculum, s.journal, s.achievement),
		curriculum:  controller.NewCurriculumController(s.curriculum, s.progress),
		journal:     controller.NewJournalController(s.journal, s.achievement),
		community:   controller.NewCommunityController(s.community, s.achievement),
		placement:   controller.NewPlacementController(s.placement),
		dashboard:   controller.NewDashboardController(s.dashboard),
		achievement: controller.NewAchievementController(s.achievement),
		speaking:    controller.NewSpeakingController(s.speaking),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchContent reloads curriculum content when the config file changes, so
// text fixes go live without a restart. Structural changes still need one.
func (a *App) watchContent(s *services) {
	go configwatcher.WatchConfig("configs/config.yaml", func(cfg *config.Config) {
		if cfg.Content.CurriculumFile == "" {
			return
		}
		if err := s.curriculum.Load(cfg.Content.CurriculumFile); err != nil {
			logger.Log.Error("커리큘럼 재적재 실패", zap.Error(err))
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services, err := app.initServices(repos, cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize services", zap.Error(err))
	}
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("english-learning-platform", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchContent(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
