package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами.
// Неразрешимый id (в том числе некорректного формата) трактуется как ErrNotFound.
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	CreateBatch(ctx context.Context, questions []entity.Question) error
	List(ctx context.Context) ([]entity.Question, error)
	// FindByIDs возвращает найденные вопросы; отсутствующие и некорректные id пропускаются
	FindByIDs(ctx context.Context, ids []string) ([]entity.Question, error)
	// Sample возвращает до limit случайных вопросов
	Sample(ctx context.Context, limit int) ([]entity.Question, error)
	Update(ctx context.Context, id string, update entity.QuestionUpdate) (*entity.Question, error)
	Delete(ctx context.Context, id string) error
}
