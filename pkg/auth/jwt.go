package auth

import (
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// JWTCustomClaims содержит пользовательские поля для токена
type JWTCustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity — личность пользователя, извлеченная из проверенного токена
type Identity struct {
	UserID   string
	Username string
}

// JWTService выпускает и проверяет bearer-токены, подписанные HS256.
// Состояния между запросами не хранит.
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTService создает новый сервис JWT
func NewJWTService(secret string, expirationHrs int, issuer string) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT secret is required for JWTService")
	}
	if expirationHrs <= 0 {
		expirationHrs = 24
	}
	return &JWTService{
		secret:     []byte(secret),
		expiration: time.Duration(expirationHrs) * time.Hour,
		issuer:     issuer,
		now:        time.Now,
	}, nil
}

// SetClock подменяет источник времени (используется в тестах)
func (s *JWTService) SetClock(now func() time.Time) {
	s.now = now
}

// GenerateToken создает новый токен для пользователя
func (s *JWTService) GenerateToken(user *entity.User) (string, error) {
	issuedAt := s.now()
	claims := &JWTCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		log.Printf("[JWT] Ошибка генерации токена для пользователя ID=%s: %v", user.ID, err)
		return "", err
	}
	return tokenString, nil
}

// ParseToken проверяет подпись и срок действия токена и возвращает личность.
// Пустой токен дает apperrors.ErrMissingToken, любая другая ошибка проверки — apperrors.ErrInvalidToken.
func (s *JWTService) ParseToken(tokenString string) (*Identity, error) {
	if tokenString == "" {
		return nil, apperrors.ErrMissingToken
	}

	claims := &JWTCustomClaims{}
	// Срок действия проверяем сами по s.now, поэтому встроенную валидацию claims отключаем
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	now := s.now()
	if !claims.VerifyExpiresAt(now, true) {
		return nil, fmt.Errorf("%w: token expired", apperrors.ErrInvalidToken)
	}
	if !claims.VerifyIssuedAt(now, false) {
		return nil, fmt.Errorf("%w: token used before issued", apperrors.ErrInvalidToken)
	}
	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer", apperrors.ErrInvalidToken)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: user id claim is missing", apperrors.ErrInvalidToken)
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
