package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/quiz-api/internal/domain/entity"
)

func TestSanitizeForExcel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"обычный текст", "обычный текст"},
		{"=SUM(A1:A2)", "'=SUM(A1:A2)"},
		{"+1", "'+1"},
		{"-1", "'-1"},
		{"@cmd", "'@cmd"},
		{"\tx", "'\tx"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeForExcel(tt.in))
		})
	}
}

func TestResultToRow(t *testing.T) {
	r := entity.Result{
		Score:      2,
		Total:      3,
		Percentage: 67,
		Answers: entity.AnswerList{
			{QuestionID: "q1", Answer: "A"},
			{QuestionID: "q2", Answer: "=B"},
		},
		Timestamp: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	row := ResultToRow(r)

	assert.Equal(t, []string{"2024-05-01T12:00:00Z", "2", "3", "67%", "q1:A; q2:=B"}, row)
	assert.Len(t, row, len(ExportHeaders))
}

func TestResultToRow_FormulaInAnswersIsEscaped(t *testing.T) {
	r := entity.Result{Answers: entity.AnswerList{{QuestionID: "=HYPERLINK(x)", Answer: "A"}}}

	row := ResultToRow(r)

	assert.Equal(t, "'=HYPERLINK(x):A", row[4])
}
