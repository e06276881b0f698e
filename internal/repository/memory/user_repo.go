package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// UserRepo хранит пользователей в памяти процесса (для разработки и тестов)
type UserRepo struct {
	mu         sync.RWMutex
	byID       map[string]entity.User
	byUsername map[string]string
	byEmail    map[string]string
}

// NewUserRepo создает пустой репозиторий пользователей
func NewUserRepo() *UserRepo {
	return &UserRepo{
		byID:       make(map[string]entity.User),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

// Create сохраняет пользователя. Повтор username или email — ErrConflict.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.byUsername[user.Username]; ok {
		return apperrors.ErrConflict
	}
	if _, ok := r.byEmail[email]; ok {
		return apperrors.ErrConflict
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	r.byID[user.ID] = *user
	r.byUsername[user.Username] = user.ID
	r.byEmail[email] = user.ID
	return nil
}

// GetByID возвращает пользователя по ID
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

// GetByUsername возвращает пользователя по имени пользователя
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	user := r.byID[id]
	return &user, nil
}

// ExistsByUsernameOrEmail проверяет, занят ли username или email
func (r *UserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, usernameTaken := r.byUsername[username]
	_, emailTaken := r.byEmail[strings.ToLower(email)]
	return usernameTaken || emailTaken, nil
}
