package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/service"
)

// UserHandler обрабатывает запросы профиля
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый обработчик профиля
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe возвращает профиль текущего пользователя без хеша пароля
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "UserHandler", err)
		return
	}

	c.JSON(http.StatusOK, user)
}
