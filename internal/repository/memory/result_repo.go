package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ResultRepo хранит результаты в памяти (только добавление)
type ResultRepo struct {
	mu      sync.RWMutex
	results []entity.Result
}

// NewResultRepo создает пустой репозиторий результатов
func NewResultRepo() *ResultRepo {
	return &ResultRepo{}
}

// Create сохраняет результат попытки
func (r *ResultRepo) Create(_ context.Context, result *entity.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	stored := *result
	stored.Answers = append(entity.AnswerList{}, result.Answers...)
	r.results = append(r.results, stored)
	return nil
}

// ListByUser возвращает результаты пользователя, новые первыми
func (r *ResultRepo) ListByUser(_ context.Context, userID string) ([]entity.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]entity.Result, 0)
	// Обход с конца сохраняет порядок вставки для равных timestamp
	for i := len(r.results) - 1; i >= 0; i-- {
		if r.results[i].UserID == userID {
			results = append(results, r.results[i])
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Timestamp.After(results[j].Timestamp)
	})
	return results, nil
}
