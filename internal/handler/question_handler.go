package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuestionHandler обрабатывает CRUD вопросов и случайную выборку
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// GetRandom возвращает до 10 случайных вопросов
func (h *QuestionHandler) GetRandom(c *gin.Context) {
	questions, err := h.questionService.SampleRandom(c.Request.Context(), service.DefaultSampleSize)
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// List возвращает все вопросы
func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questionService.ListQuestions(c.Request.Context())
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Create создает вопрос
func (h *QuestionHandler) Create(c *gin.Context) {
	var req dto.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), req.ToInput())
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

// Update частично обновляет вопрос
func (h *QuestionHandler) Update(c *gin.Context) {
	questionID := c.GetString("questionID")

	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	question, err := h.questionService.UpdateQuestion(c.Request.Context(), questionID, req.ToUpdate())
	if err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// Delete удаляет вопрос
func (h *QuestionHandler) Delete(c *gin.Context) {
	questionID := c.GetString("questionID")

	if err := h.questionService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		handleError(c, "QuestionHandler", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Question deleted successfully"})
}
