package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/handler/dto"
	"github.com/yourusername/quiz-api/internal/handler/helper"
	"github.com/yourusername/quiz-api/internal/middleware"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuizHandler обрабатывает отправку ответов и историю результатов
type QuizHandler struct {
	quizService   *service.QuizService
	resultService *service.ResultService
}

// NewQuizHandler создает новый обработчик квизов
func NewQuizHandler(quizService *service.QuizService, resultService *service.ResultService) *QuizHandler {
	return &QuizHandler{
		quizService:   quizService,
		resultService: resultService,
	}
}

// Submit оценивает ответы и сохраняет результат
func (h *QuizHandler) Submit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if req.Answers == nil {
		handleError(c, "QuizHandler", fmt.Errorf("%w: answers field is required", apperrors.ErrValidation))
		return
	}

	outcome, err := h.quizService.SubmitQuiz(c.Request.Context(), userID, *req.Answers)
	if err != nil {
		handleError(c, "QuizHandler", err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// GetResults возвращает историю результатов текущего пользователя
func (h *QuizHandler) GetResults(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	results, err := h.resultService.ListUserResults(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "QuizHandler", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// ExportResults выгружает историю результатов в CSV (по умолчанию) или XLSX
func (h *QuizHandler) ExportResults(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		handleError(c, "QuizHandler", fmt.Errorf("%w: format must be csv or xlsx", apperrors.ErrValidation))
		return
	}

	results, err := h.resultService.ListUserResults(c.Request.Context(), userID)
	if err != nil {
		handleError(c, "QuizHandler", err)
		return
	}

	filename := fmt.Sprintf("results_%s_%s", c.GetString(middleware.ContextUsername), time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, results, filename)
	default:
		h.exportCSV(c, results, filename)
	}
}

// exportCSV экспортирует результаты в CSV с правильным экранированием спецсимволов
func (h *QuizHandler) exportCSV(c *gin.Context, results []entity.Result, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	if _, err := c.Writer.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		log.Printf("[QuizHandler] Ошибка записи CSV в response: %v", err)
		return
	}

	writer := csv.NewWriter(c.Writer)
	if err := writer.Write(helper.ExportHeaders); err != nil {
		log.Printf("[QuizHandler] Ошибка записи заголовков CSV: %v", err)
		return
	}
	for i, r := range results {
		if err := writer.Write(helper.ResultToRow(r)); err != nil {
			log.Printf("[QuizHandler] Ошибка записи строки CSV %d: %v", i+1, err)
			return
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Printf("[QuizHandler] Ошибка записи CSV в response: %v", err)
	}
}

// exportXLSX экспортирует результаты в Excel с использованием StreamWriter
func (h *QuizHandler) exportXLSX(c *gin.Context, results []entity.Result, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Результаты"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		log.Printf("[QuizHandler] Ошибка переименования листа: %v", err)
		sheetName = "Sheet1"
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		handleError(c, "QuizHandler", fmt.Errorf("failed to create stream writer: %w", err))
		return
	}

	headers := make([]interface{}, 0, len(helper.ExportHeaders))
	for _, title := range helper.ExportHeaders {
		headers = append(headers, title)
	}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuizHandler] Ошибка записи заголовков: %v", err)
	}

	for i, r := range results {
		// Числа пишем числами, остальные колонки как в CSV
		text := helper.ResultToRow(r)
		row := []interface{}{text[0], r.Score, r.Total, r.Percentage, text[4]}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[QuizHandler] Ошибка записи строки %d: %v", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		handleError(c, "QuizHandler", fmt.Errorf("failed to flush xlsx: %w", err))
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuizHandler] Ошибка записи Excel в response: %v", err)
	}
}
