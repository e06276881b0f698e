package service

import (
	"context"
	"fmt"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
)

// ResultService предоставляет доступ к истории результатов
type ResultService struct {
	resultRepo repository.ResultRepository
}

// NewResultService создает новый сервис результатов
func NewResultService(resultRepo repository.ResultRepository) *ResultService {
	return &ResultService{
		resultRepo: resultRepo,
	}
}

// ListUserResults возвращает результаты пользователя, новые первыми
func (s *ResultService) ListUserResults(ctx context.Context, userID string) ([]entity.Result, error) {
	results, err := s.resultRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results for user %s: %w", userID, err)
	}
	if results == nil {
		results = []entity.Result{}
	}
	return results, nil
}
