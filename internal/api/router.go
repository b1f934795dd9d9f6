package api

import (
	"github.com/gin-gonic/gin"

	"video-catalog-service/internal/api/handlers"
	"video-catalog-service/internal/auth"
	"video-catalog-service/internal/config"
	"video-catalog-service/internal/middleware"
	"video-catalog-service/internal/services"
	"video-catalog-service/pkg/logger"
)

// NewRouter builds the API route table. Mutating video routes sit behind the
// auth middleware; reads and login are open.
func NewRouter(cfg *config.Config, videoService *services.VideoService, authService *auth.JWTService, log logger.Logger) (*gin.Engine, error) {
	router := gin.New()

	router.Use(gin.Logger())
	router.Use(middleware.ErrorRecovery(log, cfg.Server.DebugErrors))
	router.Use(middleware.CORS())
	router.Use(middleware.Trace())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	authHandler, err := handlers.NewAuthHandler(authService, cfg.Auth)
	if err != nil {
		return nil, err
	}
	videosHandler := handlers.NewVideosHandler(videoService)

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}

		videos := apiGroup.Group("/videos")
		{
			videos.GET("", videosHandler.FindAll)
			videos.GET("/:id", videosHandler.FindOne)

			protected := videos.Group("")
			protected.Use(middleware.AuthMiddleware(authService))
			{
				protected.POST("", videosHandler.Create)
				protected.PUT("/:id", videosHandler.Update)
				protected.DELETE("/:id", videosHandler.Remove)
				protected.POST("/fetch", videosHandler.Fetch)
			}
		}
	}

	return router, nil
}
