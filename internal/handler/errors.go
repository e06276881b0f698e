package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// handleError преобразует ошибку сервиса в HTTP-ответ {"message", "error_type"}.
// Внутренние ошибки логируются полностью, клиенту уходит общее сообщение.
func handleError(c *gin.Context, component string, err error) {
	status, errorType, message := classifyError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] Internal error on %s %s: %v", component, c.Request.Method, c.Request.URL.Path, err)
	} else {
		log.Printf("[%s] Request error (%s): %v", component, errorType, err)
	}
	c.JSON(status, gin.H{"message": message, "error_type": errorType})
}

func classifyError(err error) (int, string, string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, "validation_error", err.Error()
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusBadRequest, "conflict", "Username or email already exists"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusBadRequest, "invalid_credentials", "Invalid username or password"
	case errors.Is(err, apperrors.ErrMissingToken):
		return http.StatusUnauthorized, "token_missing", "Access token is required"
	case errors.Is(err, apperrors.ErrInvalidToken):
		return http.StatusForbidden, "token_invalid", "Invalid or expired token"
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "not_found", "Resource not found"
	default:
		return http.StatusInternalServerError, "internal_server_error", "Internal server error"
	}
}

// bindError отвечает 400 на некорректное тело запроса
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message":    "Invalid request body: " + err.Error(),
		"error_type": "validation_error",
	})
}

// currentUserID возвращает ID пользователя, установленный AuthMiddleware
func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		handleError(c, "Auth", apperrors.ErrMissingToken)
		return "", false
	}
	return userID, true
}
