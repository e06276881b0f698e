package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-api/internal/pkg/errors"
)

// questionColumns сопоставляет поля частичного обновления с колонками таблицы
var questionColumns = map[string]string{
	"question":      "question",
	"optionA":       "option_a",
	"optionB":       "option_b",
	"optionC":       "option_c",
	"optionD":       "option_d",
	"correctAnswer": "correct_answer",
}

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db      *gorm.DB
	timeout time.Duration
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB, timeout time.Duration) *QuestionRepo {
	return &QuestionRepo{db: db, timeout: timeout}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	return translateError(db.Create(question).Error)
}

// CreateBatch создает пакет вопросов в одной транзакции
func (r *QuestionRepo) CreateBatch(ctx context.Context, questions []entity.Question) error {
	if len(questions) == 0 {
		return nil
	}
	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	for i := range questions {
		if questions[i].ID == "" {
			questions[i].ID = uuid.NewString()
		}
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return translateError(tx.CreateInBatches(&questions, 100).Error)
	})
}

// List возвращает все вопросы в порядке создания
func (r *QuestionRepo) List(ctx context.Context) ([]entity.Question, error) {
	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	questions := make([]entity.Question, 0)
	err := db.Order("created_at ASC").Order("id").Find(&questions).Error
	return questions, err
}

// FindByIDs возвращает вопросы одним запросом IN. Некорректные id пропускаются.
func (r *QuestionRepo) FindByIDs(ctx context.Context, ids []string) ([]entity.Question, error) {
	ids = validUUIDs(ids)
	questions := make([]entity.Question, 0, len(ids))
	if len(ids) == 0 {
		return questions, nil
	}

	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	err := db.Where("id IN ?", ids).Find(&questions).Error
	return questions, err
}

// Sample возвращает до limit случайных вопросов
func (r *QuestionRepo) Sample(ctx context.Context, limit int) ([]entity.Question, error) {
	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	questions := make([]entity.Question, 0, limit)
	err := db.Order("RANDOM()").Limit(limit).Find(&questions).Error
	return questions, err
}

// Update обновляет только переданные поля вопроса
func (r *QuestionRepo) Update(ctx context.Context, id string, update entity.QuestionUpdate) (*entity.Question, error) {
	if !isValidUUID(id) {
		return nil, apperrors.ErrNotFound
	}

	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	updates := map[string]interface{}{"updated_at": time.Now().UTC()}
	for field, value := range update.Fields() {
		updates[questionColumns[field]] = value
	}

	var question entity.Question
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Question{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("id = ?", id).First(&question).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &question, nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(ctx context.Context, id string) error {
	if !isValidUUID(id) {
		return apperrors.ErrNotFound
	}

	db, cancel := session(ctx, r.db, r.timeout)
	defer cancel()

	res := db.Where("id = ?", id).Delete(&entity.Question{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
