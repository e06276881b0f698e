package handler

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/middleware"
)

// RouterDeps содержит все зависимости HTTP-слоя
type RouterDeps struct {
	AuthHandler     *AuthHandler
	UserHandler     *UserHandler
	QuestionHandler *QuestionHandler
	QuizHandler     *QuizHandler
	AuthMiddleware  *middleware.AuthMiddleware
	RateLimiter     *middleware.RateLimiter
	AuthRateLimit   middleware.RateLimitConfig
	Health          repository.Pinger
	AllowedOrigins  []string
	Production      bool
}

// NewRouter собирает gin.Engine со всеми маршрутами /api
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	// В production не доверяем прокси-заголовкам (защита от IP spoofing для rate limiting)
	trusted := []string{"127.0.0.1", "::1"}
	if deps.Production {
		trusted = nil
	}
	if err := router.SetTrustedProxies(trusted); err != nil {
		log.Printf("[Router] Warning: failed to set trusted proxies: %v", err)
	}

	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	router.GET("/healthz", func(c *gin.Context) {
		if deps.Health != nil {
			if err := deps.Health.Ping(c.Request.Context()); err != nil {
				log.Printf("[Router] Health check failed: %v", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		limited := deps.RateLimiter.Limit(deps.AuthRateLimit)
		api.POST("/register", limited, deps.AuthHandler.Register)
		api.POST("/login", limited, deps.AuthHandler.Login)

		authed := api.Group("")
		authed.Use(deps.AuthMiddleware.RequireAuth())
		{
			authed.GET("/user", deps.UserHandler.GetMe)

			questions := authed.Group("/questions")
			{
				questions.GET("/random", deps.QuestionHandler.GetRandom)
				questions.GET("", deps.QuestionHandler.List)
				questions.POST("", deps.QuestionHandler.Create)

				withID := questions.Group("/:id")
				withID.Use(middleware.ExtractIDParam("id", "questionID"))
				{
					withID.PUT("", deps.QuestionHandler.Update)
					withID.DELETE("", deps.QuestionHandler.Delete)
				}
			}

			authed.POST("/quiz/submit", deps.QuizHandler.Submit)
			authed.GET("/results", deps.QuizHandler.GetResults)
			authed.GET("/results/export", deps.QuizHandler.ExportResults)
		}
	}

	return router
}

// corsConfig строит настройки CORS. Пустой список или "*" разрешают любой origin без credentials.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			origins = nil
			break
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
