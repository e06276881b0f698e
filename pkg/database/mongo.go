package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yourusername/quiz-api/internal/config"
)

// NewMongoClient подключается к MongoDB, повторяя попытки до успеха.
// Каждая попытка ограничена ConnectTimeout (server selection + ping).
func NewMongoClient(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(connectTimeout).
		SetConnectTimeout(connectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	var client *mongo.Client
	err := retryForever(ctx, "MongoDB", cfg.RetryDelay, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()

		c, err := mongo.Connect(attemptCtx, opts)
		if err != nil {
			return err
		}
		if err := c.Ping(attemptCtx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			return err
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	log.Printf("[Database] Подключение к MongoDB установлено (database: %s)", cfg.Database)
	return client, nil
}

// DisconnectMongo закрывает соединение с MongoDB
func DisconnectMongo(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		log.Printf("[Database] Ошибка отключения от MongoDB: %v", err)
		return
	}
	log.Println("[Database] Соединение с MongoDB закрыто")
}
