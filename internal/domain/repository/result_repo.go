package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ResultRepository определяет методы для работы с результатами (только добавление и чтение)
type ResultRepository interface {
	Create(ctx context.Context, result *entity.Result) error
	// ListByUser возвращает результаты пользователя, новые первыми
	ListByUser(ctx context.Context, userID string) ([]entity.Result, error)
}
