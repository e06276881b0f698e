package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/event"
	"github.com/yourusername/quiz-api/internal/handler"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/auth"
	"github.com/yourusername/quiz-api/pkg/database"
)

// NewServeCmd создает команду запуска HTTP-сервера
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(parent context.Context, configPath, portFlag string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if portFlag != "" {
		cfg.Server.Port = portFlag
	}

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()

	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		// Rate limiting необязателен, продолжаем без него
		log.Printf("[Server] Warning: %v. Rate limiting отключен", err)
		redisClient = nil
	}
	var limiterClient redis.UniversalClient
	if redisClient != nil {
		limiterClient = redisClient
		defer redisClient.Close()
	}

	publisher := newPublisher(cfg.RabbitMQ)
	defer publisher.Close()

	jwtService, err := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpirationHrs, cfg.JWT.Issuer)
	if err != nil {
		return err
	}

	authService, err := service.NewAuthService(store.users, jwtService, publisher)
	if err != nil {
		return err
	}
	userService := service.NewUserService(store.users)
	questionService := service.NewQuestionService(store.questions)
	quizService := service.NewQuizService(store.questions, store.results, publisher)
	resultService := service.NewResultService(store.results)

	production := gin.Mode() == gin.ReleaseMode
	router := handler.NewRouter(handler.RouterDeps{
		AuthHandler:     handler.NewAuthHandler(authService),
		UserHandler:     handler.NewUserHandler(userService),
		QuestionHandler: handler.NewQuestionHandler(questionService),
		QuizHandler:     handler.NewQuizHandler(quizService, resultService),
		AuthMiddleware:  middleware.NewAuthMiddleware(jwtService),
		RateLimiter:     middleware.NewRateLimiter(limiterClient),
		AuthRateLimit:   middleware.AuthRateLimitConfig(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window),
		Health:          store.health,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		Production:      production,
	})

	// Настраиваем HTTP сервер с тайм-аутами для защиты от slow client attacks
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Слушаем синхронно, чтобы занятый порт был фатальной ошибкой запуска
	listener, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %s is already in use: %w", cfg.Server.Port, err)
		}
		return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[Server] Starting server on port %s (storage: %s)", cfg.Server.Port, cfg.Database.Driver)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok && err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("[Server] Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("[Server] Server exited properly")
	return nil
}

// newPublisher подключается к RabbitMQ, если он настроен. Ошибка подключения не фатальна.
func newPublisher(cfg config.RabbitMQConfig) event.Publisher {
	if cfg.URI == "" {
		return event.NoOpPublisher{}
	}
	publisher, err := event.NewAMQPPublisher(cfg.URI, cfg.Exchange)
	if err != nil {
		log.Printf("[Server] Warning: %v. События не публикуются", err)
		return event.NoOpPublisher{}
	}
	log.Printf("[Server] Публикация событий в обменник %s включена", cfg.Exchange)
	return publisher
}
