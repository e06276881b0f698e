package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ResultRepo реализует repository.ResultRepository
type ResultRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewResultRepo создает новый репозиторий результатов
func NewResultRepo(db *gorm.DB, timeout time.Duration) *ResultRepo {
	return &ResultRepo{db: db, timeout: timeout}
}

// Create сохраняет результат попытки
func (r *ResultRepo) Create(ctx context.Context, result *entity.Result) error {
	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.Answers == nil {
		result.Answers = entity.AnswerList{}
	}
	return translateError(db.Create(result).Error)
}

// ListByUser возвращает результаты пользователя, новые первыми
func (r *ResultRepo) ListByUser(ctx context.Context, userID string) ([]entity.Result, error) {
	results := make([]entity.Result, 0)
	if !isValidUUID(userID) {
		return results, nil
	}

	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	err := db.Where("user_id = ?", userID).
		Order(`"timestamp" DESC`).
		Order("id DESC").
		Find(&results).Error
	return results, err
}
