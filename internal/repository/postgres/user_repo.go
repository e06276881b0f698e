package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB, timeout time.Duration) *UserRepo {
	return &UserRepo{db: db, timeout: timeout}
}

// Create создает нового пользователя
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return translateError(db.Create(user).Error)
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !isValidUUID(id) {
		return nil, apperrors.ErrNotFound
	}
	return r.first(ctx, "id = ?", id)
}

// GetByUsername возвращает пользователя по имени пользователя
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.first(ctx, "username = ?", username)
}

// ExistsByUsernameOrEmail проверяет, занят ли username или email
func (r *UserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	var count int64
	err := db.Model(&entity.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepo) first(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	var user entity.User
	if err := db.Where(query, arg).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}
