package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/yourusername/quiz-api/internal/config"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/repository/memory"
	"github.com/yourusername/quiz-api/internal/repository/mongodb"
	"github.com/yourusername/quiz-api/internal/repository/postgres"
	"github.com/yourusername/quiz-api/pkg/database"
)

// storage объединяет репозитории выбранного драйвера
type storage struct {
	users     repository.UserRepository
	questions repository.QuestionRepository
	results   repository.ResultRepository
	health    repository.Pinger
	close     func()
}

// openStorage подключается к хранилищу из конфигурации.
// Подключение к MongoDB/PostgreSQL повторяется, пока не удастся или не отменят ctx.
func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	timeout := cfg.Database.QueryTimeout

	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, err := database.NewMongoClient(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			database.DisconnectMongo(client)
			return nil, err
		}
		return &storage{
			users:     mongodb.NewUserRepo(db, timeout),
			questions: mongodb.NewQuestionRepo(db, timeout),
			results:   mongodb.NewResultRepo(db, timeout),
			health:    mongodb.NewHealthChecker(client),
			close:     func() { database.DisconnectMongo(client) },
		}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgresDB(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		if err := database.MigrateDB(db); err != nil {
			database.ClosePostgres(db)
			return nil, err
		}
		return &storage{
			users:     postgres.NewUserRepo(db, timeout),
			questions: postgres.NewQuestionRepo(db, timeout),
			results:   postgres.NewResultRepo(db, timeout),
			health:    database.NewPostgresHealthChecker(db),
			close:     func() { database.ClosePostgres(db) },
		}, nil

	case config.DriverMemory:
		log.Println("[Storage] Используется хранилище в памяти, данные не сохраняются между запусками")
		return &storage{
			users:     memory.NewUserRepo(),
			questions: memory.NewQuestionRepo(),
			results:   memory.NewResultRepo(),
			health:    memory.HealthChecker{},
			close:     func() {},
		}, nil
	}

	return nil, fmt.Errorf("unsupported database driver: %q", cfg.Database.Driver)
}
