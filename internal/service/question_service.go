package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// DefaultSampleSize — количество вопросов в случайной выборке по умолчанию
const DefaultSampleSize = 10

// QuestionInput содержит поля нового вопроса
type QuestionInput struct {
	Question      string `json:"question" yaml:"question"`
	OptionA       string `json:"optionA" yaml:"optionA"`
	OptionB       string `json:"optionB" yaml:"optionB"`
	OptionC       string `json:"optionC" yaml:"optionC"`
	OptionD       string `json:"optionD" yaml:"optionD"`
	CorrectAnswer string `json:"correctAnswer" yaml:"correctAnswer"`
}

// QuestionService предоставляет методы для работы с банком вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
	now          func() time.Time
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		now:          time.Now,
	}
}

// CreateQuestion проверяет и сохраняет новый вопрос
func (s *QuestionService) CreateQuestion(ctx context.Context, input QuestionInput) (*entity.Question, error) {
	question, err := s.buildQuestion(input)
	if err != nil {
		return nil, err
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	log.Printf("[QuestionService] Создан вопрос ID=%s", question.ID)
	return question, nil
}

// ImportQuestions проверяет все вопросы и сохраняет их одной пачкой.
// Ошибка валидации любого вопроса отменяет весь импорт.
func (s *QuestionService) ImportQuestions(ctx context.Context, inputs []QuestionInput) (int, error) {
	if len(inputs) == 0 {
		return 0, nil
	}

	questions := make([]entity.Question, 0, len(inputs))
	for i, input := range inputs {
		question, err := s.buildQuestion(input)
		if err != nil {
			return 0, fmt.Errorf("question #%d: %w", i+1, err)
		}
		questions = append(questions, *question)
	}

	if err := s.questionRepo.CreateBatch(ctx, questions); err != nil {
		return 0, fmt.Errorf("failed to import questions: %w", err)
	}

	log.Printf("[QuestionService] Импортировано вопросов: %d", len(questions))
	return len(questions), nil
}

// ListQuestions возвращает все вопросы
func (s *QuestionService) ListQuestions(ctx context.Context) ([]entity.Question, error) {
	questions, err := s.questionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// SampleRandom возвращает до n случайных вопросов. n <= 0 означает DefaultSampleSize.
func (s *QuestionService) SampleRandom(ctx context.Context, n int) ([]entity.Question, error) {
	if n <= 0 {
		n = DefaultSampleSize
	}
	questions, err := s.questionRepo.Sample(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to sample questions: %w", err)
	}
	return questions, nil
}

// UpdateQuestion применяет частичное обновление. Переданные поля не могут быть пустыми.
// Пустое обновление возвращает вопрос без изменений или ErrNotFound.
func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, update entity.QuestionUpdate) (*entity.Question, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: question id is required", apperrors.ErrNotFound)
	}
	if update.IsEmpty() {
		return s.findQuestion(ctx, id)
	}

	for name, value := range update.Fields() {
		if strings.TrimSpace(value.(string)) == "" {
			return nil, fmt.Errorf("%w: %s must not be empty", apperrors.ErrValidation, name)
		}
	}
	if update.CorrectAnswer != nil {
		marker := entity.NormalizeOption(*update.CorrectAnswer)
		if !entity.IsValidOption(marker) {
			return nil, fmt.Errorf("%w: correctAnswer must be one of A, B, C, D", apperrors.ErrValidation)
		}
		update.CorrectAnswer = &marker
	}

	question, err := s.questionRepo.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("failed to update question %s: %w", id, err)
	}

	log.Printf("[QuestionService] Обновлен вопрос ID=%s", id)
	return question, nil
}

// DeleteQuestion удаляет вопрос. Уже сохраненные результаты не затрагиваются.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: question id is required", apperrors.ErrNotFound)
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete question %s: %w", id, err)
	}

	log.Printf("[QuestionService] Удален вопрос ID=%s", id)
	return nil
}

func (s *QuestionService) findQuestion(ctx context.Context, id string) (*entity.Question, error) {
	questions, err := s.questionRepo.FindByIDs(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("failed to load question %s: %w", id, err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("question %s: %w", id, apperrors.ErrNotFound)
	}
	return &questions[0], nil
}

func (s *QuestionService) buildQuestion(input QuestionInput) (*entity.Question, error) {
	question := &entity.Question{
		Question:      strings.TrimSpace(input.Question),
		OptionA:       strings.TrimSpace(input.OptionA),
		OptionB:       strings.TrimSpace(input.OptionB),
		OptionC:       strings.TrimSpace(input.OptionC),
		OptionD:       strings.TrimSpace(input.OptionD),
		CorrectAnswer: entity.NormalizeOption(input.CorrectAnswer),
	}

	required := fmt.Errorf("%w: question, optionA, optionB, optionC, optionD and correctAnswer are required", apperrors.ErrValidation)
	if question.Question == "" || question.CorrectAnswer == "" {
		return nil, required
	}
	for _, option := range question.Options() {
		if option == "" {
			return nil, required
		}
	}
	if !entity.IsValidOption(question.CorrectAnswer) {
		return nil, fmt.Errorf("%w: correctAnswer must be one of A, B, C, D", apperrors.ErrValidation)
	}

	now := s.now().UTC()
	question.CreatedAt = now
	question.UpdatedAt = now
	return question, nil
}
