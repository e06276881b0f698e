package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ExtractIDParam создает middleware для извлечения строкового идентификатора из URL.
// paramName - имя параметра в URL (например, "id").
// contextKey - ключ, под которым значение будет сохранено в контексте Gin.
// Пустой id не может ссылаться на запись, поэтому отвечаем 404.
func ExtractIDParam(paramName, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.Param(paramName))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"message":    fmt.Sprintf("Invalid %s", paramName),
				"error_type": "not_found",
			})
			return
		}
		c.Set(contextKey, id)
		c.Next()
	}
}
