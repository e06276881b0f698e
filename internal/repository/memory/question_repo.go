package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// QuestionRepo хранит вопросы в памяти в порядке добавления
type QuestionRepo struct {
	mu    sync.RWMutex
	order []string
	items map[string]entity.Question
	rnd   *rand.Rand
	clock func() time.Time
}

// NewQuestionRepo создает пустой репозиторий вопросов
func NewQuestionRepo() *QuestionRepo {
	return &QuestionRepo{
		items: make(map[string]entity.Question),
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		clock: time.Now,
	}
}

// Create сохраняет вопрос и заполняет его ID
func (r *QuestionRepo) Create(_ context.Context, question *entity.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insert(question)
	return nil
}

// CreateBatch сохраняет несколько вопросов
func (r *QuestionRepo) CreateBatch(_ context.Context, questions []entity.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range questions {
		r.insert(&questions[i])
	}
	return nil
}

func (r *QuestionRepo) insert(question *entity.Question) {
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if _, exists := r.items[question.ID]; !exists {
		r.order = append(r.order, question.ID)
	}
	r.items[question.ID] = *question
}

// List возвращает все вопросы в порядке добавления
func (r *QuestionRepo) List(_ context.Context) ([]entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	questions := make([]entity.Question, 0, len(r.order))
	for _, id := range r.order {
		questions = append(questions, r.items[id])
	}
	return questions, nil
}

// FindByIDs возвращает найденные вопросы, отсутствующие id пропускаются
func (r *QuestionRepo) FindByIDs(_ context.Context, ids []string) ([]entity.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	questions := make([]entity.Question, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if q, ok := r.items[id]; ok {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

// Sample возвращает до limit случайных вопросов без повторов
func (r *QuestionRepo) Sample(_ context.Context, limit int) ([]entity.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit > len(r.order) {
		limit = len(r.order)
	}
	if limit < 0 {
		limit = 0
	}

	questions := make([]entity.Question, 0, limit)
	for _, idx := range r.rnd.Perm(len(r.order))[:limit] {
		questions = append(questions, r.items[r.order[idx]])
	}
	return questions, nil
}

// Update применяет частичное обновление
func (r *QuestionRepo) Update(_ context.Context, id string, update entity.QuestionUpdate) (*entity.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	question, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	update.Apply(&question)
	question.UpdatedAt = r.clock().UTC()
	r.items[id] = question
	return &question, nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
