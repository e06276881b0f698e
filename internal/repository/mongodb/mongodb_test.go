package mongodb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

func TestTranslateError(t *testing.T) {
	dupErr := mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"нет документов", mongo.ErrNoDocuments, apperrors.ErrNotFound},
		{"дубликат ключа", dupErr, apperrors.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	other := errors.New("network")
	assert.Same(t, other, translateError(other), "прочие ошибки не изменяются")
}

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := parseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = parseID("not-an-object-id")
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "некорректный id трактуется как отсутствующий")
}

func TestDocumentConversion(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	q := &entity.Question{Question: "2+2?", OptionA: "3", OptionB: "4", OptionC: "5", OptionD: "6", CorrectAnswer: "B", CreatedAt: now, UpdatedAt: now}

	doc := newQuestionDocument(q)
	back := doc.toEntity()

	assert.Equal(t, doc.ID.Hex(), back.ID)
	assert.Equal(t, "B", back.CorrectAnswer)
	assert.Equal(t, now, back.CreatedAt)

	res := resultDocument{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}.toEntity()
	assert.NotNil(t, res.Answers, "пустой список ответов не должен быть nil")
}
