package repository

import (
	"context"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// UserRepository определяет методы для работы с пользователями.
// Create возвращает apperrors.ErrConflict при нарушении уникальности username/email,
// методы Get* возвращают apperrors.ErrNotFound, если запись отсутствует.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// ExistsByUsernameOrEmail проверяет, занят ли username или email
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
