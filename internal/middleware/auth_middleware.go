package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// Ключи контекста Gin, в которые кладется личность пользователя
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// TokenParser проверяет bearer-токен и возвращает личность
type TokenParser interface {
	ParseToken(tokenString string) (*auth.Identity, error)
}

// AuthMiddleware обеспечивает аутентификацию для защищенных маршрутов
type AuthMiddleware struct {
	parser TokenParser
}

// NewAuthMiddleware создает новый middleware аутентификации
func NewAuthMiddleware(parser TokenParser) *AuthMiddleware {
	return &AuthMiddleware{parser: parser}
}

// RequireAuth проверяет токен из заголовка Authorization: Bearer <token>.
// Нет токена — 401, токен недействителен или истек — 403.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":    "Access token is required",
				"error_type": "token_missing",
			})
			return
		}

		// Проверяем формат заголовка Bearer {token}
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message":    "Authorization header format must be Bearer {token}",
				"error_type": "token_missing",
			})
			return
		}

		identity, err := m.parser.ParseToken(parts[1])
		if err != nil {
			if errors.Is(err, apperrors.ErrMissingToken) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"message":    "Access token is required",
					"error_type": "token_missing",
				})
				return
			}
			log.Printf("[AuthMiddleware] Отклонен токен для %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message":    "Invalid or expired token",
				"error_type": "token_invalid",
			})
			return
		}

		c.Set(ContextUserID, identity.UserID)
		c.Set(ContextUsername, identity.Username)
		c.Next()
	}
}
