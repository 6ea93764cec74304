package app

import (
	"english_edu_backend/docs"
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/middleware"
	"english_edu_backend/internal/model"
	"english_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.HealthCheck)

	a.registerPublicRoutes(router, c, cfg)
	a.registerCommunityRoutes(router, c, repos, cfg)
	a.registerLearnerRoutes(router, c, repos, cfg)
	a.registerStaffRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)

		// Curriculum browsing is open; week detail carries progress when a
		// token is present.
		public.GET("/curriculum", c.curriculum.ListWeeks)
		public.GET("/curriculum/activities/:activityId", c.curriculum.GetActivity)
		public.GET("/curriculum/:weekId", middleware.TryAuthMiddleware(cfg), c.curriculum.GetWeek)

		public.GET("/users/leaderboard", c.user.Leaderboard)
	}
}

func (a *App) registerCommunityRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	community := router.Group("/api/community")
	// TryAuth first so the activity recorder sees the claims.
	community.Use(middleware.TryAuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		community.GET("/posts", c.community.ListPosts)
		community.GET("/posts/:postId", c.community.GetPost)
		community.GET("/posts/:postId/comments", c.community.ListComments)

		authorized := community.Group("/")
		authorized.Use(middleware.AuthMiddleware(cfg))
		{
			authorized.POST("/posts", c.community.CreatePost)
			authorized.PATCH("/posts/:postId", c.community.UpdatePost)
			authorized.DELETE("/posts/:postId", c.community.DeletePost)
			authorized.POST("/posts/:postId/comments", c.community.CreateComment)
			authorized.POST("/posts/:postId/comments/:commentId/accept", c.community.AcceptComment)
			authorized.DELETE("/comments/:commentId", c.community.DeleteComment)
			authorized.POST("/likes", c.community.ToggleLike)
		}
	}
}

func (a *App) registerLearnerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	api := router.Group("/api")
	api.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		api.GET("/auth/me", c.auth.Me)
		api.PATCH("/users/me", c.user.UpdateProfile)
		api.POST("/users/me/avatar", c.user.UploadAvatar)

		progress := api.Group("/progress")
		{
			progress.GET("", c.progress.GetOverallProgress)
			progress.GET("/weeks/:weekId", c.progress.GetWeekProgress)
			progress.GET("/:activityId", c.progress.GetProgress)
			progress.PATCH("/:activityId", c.progress.UpdateProgress)
			progress.POST("/:activityId/complete", c.progress.CompleteActivity)
			progress.PUT("/:activityId/draft", c.progress.SaveDraft)
			progress.POST("/:activityId/listen", c.progress.IncrementListen)
			progress.POST("/:activityId/attempts", c.progress.IncrementAttempts)
			progress.POST("/:activityId/recordings", c.speaking.UploadRecording)
		}

		journal := api.Group("/journal")
		{
			journal.PUT("", c.journal.Upsert)
			journal.GET("", c.journal.Month)
			journal.GET("/streak", c.journal.Streak)
			journal.GET("/:date", c.journal.GetByDate)
		}

		placement := api.Group("/placement")
		{
			placement.GET("/test", c.placement.GetTest)
			placement.POST("/submit", c.placement.Submit)
			placement.GET("/result", c.placement.Latest)
			placement.GET("/history", c.placement.History)
		}

		api.GET("/dashboard", c.dashboard.Summary)
		api.GET("/achievements", c.achievement.List)
	}
}

func (a *App) registerStaffRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	staff := router.Group("/api")
	staff.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Teacher))
	{
		staff.GET("/users/students", c.user.ListStudents)
	}
}
