package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// Имена коллекций
const (
	usersCollection     = "users"
	questionsCollection = "questions"
	resultsCollection   = "results"
)

const defaultTimeout = 10 * time.Second

// base содержит общие для репозиториев коллекцию и таймаут операции
type base struct {
	col     *mongo.Collection
	timeout time.Duration
}

func newBase(db *mongo.Database, name string, timeout time.Duration) base {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return base{col: db.Collection(name), timeout: timeout}
}

func (b base) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

// translateError переводит ошибки драйвера в ошибки приложения
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperrors.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", apperrors.ErrConflict, err)
	}
	return err
}

// parseID преобразует строковый id в ObjectID. Некорректный id — ErrNotFound.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", apperrors.ErrNotFound, id)
	}
	return oid, nil
}

// EnsureIndexes создает индексы: уникальные username и email, история результатов по пользователю
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = db.Collection(resultsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}},
		Options: options.Index().SetName("idx_results_user_ts"),
	})
	if err != nil {
		return fmt.Errorf("failed to create result indexes: %w", err)
	}

	log.Println("[MongoDB] Индексы созданы")
	return nil
}

// HealthChecker реализует repository.Pinger для MongoDB
type HealthChecker struct {
	client *mongo.Client
}

// NewHealthChecker создает проверку доступности MongoDB
func NewHealthChecker(client *mongo.Client) *HealthChecker {
	return &HealthChecker{client: client}
}

// Ping проверяет соединение с primary
func (h *HealthChecker) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return h.client.Ping(ctx, readpref.Primary())
}
