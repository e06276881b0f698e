package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/event"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// AuthService предоставляет методы регистрации и входа
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	publisher  event.Publisher
	now        func() time.Time
}

// RegisterInput содержит данные для регистрации
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginResult содержит выпущенный токен и пользователя
type LoginResult struct {
	Token string
	User  *entity.User
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(
	userRepo repository.UserRepository,
	jwtService *auth.JWTService,
	publisher event.Publisher,
) (*AuthService, error) {
	if userRepo == nil {
		return nil, fmt.Errorf("UserRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	if publisher == nil {
		publisher = event.NoOpPublisher{}
	}

	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		publisher:  publisher,
		now:        time.Now,
	}, nil
}

// RegisterUser регистрирует нового пользователя.
// Пароль хешируется bcrypt, в ответе хеш не возвращается (json:"-").
func (s *AuthService) RegisterUser(ctx context.Context, input RegisterInput) (*entity.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = normalizeEmail(input.Email)

	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", apperrors.ErrValidation)
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: username or email already exists", apperrors.ErrConflict)
	}

	user := &entity.User{
		Username:  input.Username,
		Email:     input.Email,
		CreatedAt: s.now().UTC(),
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Уникальный индекс ловит гонку между проверкой и вставкой
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: username or email already exists", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Printf("[AuthService] Пользователь ID=%s (%s) зарегистрирован", user.ID, user.Username)

	if err := s.publisher.Publish(event.UserRegistered, map[string]interface{}{
		"userId":   user.ID,
		"username": user.Username,
	}); err != nil {
		log.Printf("[AuthService] Не удалось опубликовать событие %s: %v", event.UserRegistered, err)
	}

	return user, nil
}

// LoginUser проверяет учетные данные и выпускает токен.
// Для неизвестного пользователя и неверного пароля возвращается одна и та же ошибка.
func (s *AuthService) LoginUser(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(password) {
		log.Printf("[AuthService] Неудачная попытка входа для пользователя ID=%s", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[AuthService] Пользователь ID=%s (%s) успешно вошел в систему", user.ID, user.Username)
	return &LoginResult{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
