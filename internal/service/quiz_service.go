package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	"github.com/yourusername/quiz-api/internal/event"
)

// QuizOutcome — итог проверки одной отправки
type QuizOutcome struct {
	Score      int `json:"score"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
	// Unscored — число ответов на вопросы, которые не удалось найти
	Unscored int `json:"unscored"`
}

// QuizService проверяет ответы и сохраняет результат попытки
type QuizService struct {
	questionRepo repository.QuestionRepository
	resultRepo   repository.ResultRepository
	publisher    event.Publisher
	now          func() time.Time
}

// NewQuizService создает новый сервис проверки квизов
func NewQuizService(
	questionRepo repository.QuestionRepository,
	resultRepo repository.ResultRepository,
	publisher event.Publisher,
) *QuizService {
	if publisher == nil {
		publisher = event.NoOpPublisher{}
	}
	return &QuizService{
		questionRepo: questionRepo,
		resultRepo:   resultRepo,
		publisher:    publisher,
		now:          time.Now,
	}
}

// SubmitQuiz оценивает ответы пользователя и сохраняет результат.
// Ответ засчитывается, если метка совпадает с правильной. Ответы на ненайденные
// вопросы не засчитываются, но учитываются в Total и Unscored.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID string, answers []entity.SubmittedAnswer) (*QuizOutcome, error) {
	answers = normalizeAnswers(answers)
	ids := uniqueQuestionIDs(answers)

	byID := make(map[string]*entity.Question, len(ids))
	if len(ids) > 0 {
		questions, err := s.questionRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load questions: %w", err)
		}
		for i := range questions {
			byID[questions[i].ID] = &questions[i]
		}
	}

	outcome := &QuizOutcome{Total: len(answers)}
	stored := make(entity.AnswerList, 0, len(answers))
	for _, answer := range answers {
		stored = append(stored, answer)

		question, ok := byID[answer.QuestionID]
		if !ok {
			outcome.Unscored++
			continue
		}
		if question.IsCorrect(answer.Answer) {
			outcome.Score++
		}
	}
	outcome.Percentage = entity.Percentage(outcome.Score, outcome.Total)

	result := &entity.Result{
		UserID:     userID,
		Score:      outcome.Score,
		Total:      outcome.Total,
		Percentage: outcome.Percentage,
		Answers:    stored,
		Timestamp:  s.now().UTC(),
	}
	if err := s.resultRepo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to save result: %w", err)
	}

	log.Printf("[QuizService] Пользователь ID=%s: %d/%d (%d%%), не найдено вопросов: %d",
		userID, outcome.Score, outcome.Total, outcome.Percentage, outcome.Unscored)

	if err := s.publisher.Publish(event.QuizSubmitted, map[string]interface{}{
		"resultId":   result.ID,
		"userId":     userID,
		"score":      outcome.Score,
		"total":      outcome.Total,
		"percentage": outcome.Percentage,
	}); err != nil {
		log.Printf("[QuizService] Не удалось опубликовать событие %s: %v", event.QuizSubmitted, err)
	}

	return outcome, nil
}

// normalizeAnswers обрезает пробелы в id и приводит метки к верхнему регистру.
// Исходный срез не изменяется.
func normalizeAnswers(answers []entity.SubmittedAnswer) []entity.SubmittedAnswer {
	out := make([]entity.SubmittedAnswer, len(answers))
	for i, answer := range answers {
		out[i] = entity.SubmittedAnswer{
			QuestionID: strings.TrimSpace(answer.QuestionID),
			Answer:     entity.NormalizeOption(answer.Answer),
		}
	}
	return out
}

// uniqueQuestionIDs собирает непустые id без повторов в порядке появления
func uniqueQuestionIDs(answers []entity.SubmittedAnswer) []string {
	seen := make(map[string]struct{}, len(answers))
	ids := make([]string, 0, len(answers))
	for _, answer := range answers {
		id := answer.QuestionID
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
