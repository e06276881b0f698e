package helper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

// ExportHeaders — заголовки таблицы при экспорте результатов
var ExportHeaders = []string{"Дата", "Правильных", "Всего вопросов", "Процент", "Ответы"}

// ResultToRow преобразует результат в строку таблицы экспорта
func ResultToRow(r entity.Result) []string {
	return []string{
		r.Timestamp.UTC().Format(time.RFC3339),
		strconv.Itoa(r.Score),
		strconv.Itoa(r.Total),
		fmt.Sprintf("%d%%", r.Percentage),
		SanitizeForExcel(FormatAnswers(r.Answers)),
	}
}

// FormatAnswers сворачивает ответы в строку вида "id1:A; id2:C"
func FormatAnswers(answers entity.AnswerList) string {
	parts := make([]string, 0, len(answers))
	for _, a := range answers {
		parts = append(parts, a.QuestionID+":"+a.Answer)
	}
	return strings.Join(parts, "; ")
}

// SanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func SanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
