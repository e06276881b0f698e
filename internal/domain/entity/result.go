package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"math"
	"time"
)

// SubmittedAnswer — один ответ из отправленного квиза
type SubmittedAnswer struct {
	QuestionID string `json:"questionId" bson:"questionId"`
	Answer     string `json:"answer" bson:"answer"`
}

// AnswerList - пользовательский тип для хранения ответов в JSONB
type AnswerList []SubmittedAnswer

// Scan реализует интерфейс sql.Scanner для AnswerList
func (a *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*a = AnswerList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*a = AnswerList{}
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Value реализует интерфейс driver.Valuer для AnswerList
func (a AnswerList) Value() (driver.Value, error) {
	if len(a) == 0 {
		return []byte("[]"), nil // пустой JSON массив вместо null
	}
	return json.Marshal(a)
}

// Result представляет итог одной попытки прохождения квиза
type Result struct {
	ID         string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID     string     `gorm:"type:uuid;not null;index:idx_results_user_ts,priority:1" json:"userId"`
	Score      int        `gorm:"not null;default:0" json:"score"`
	Total      int        `gorm:"not null;default:0" json:"total"`
	Percentage int        `gorm:"not null;default:0" json:"percentage"`
	Answers    AnswerList `gorm:"type:jsonb;not null" json:"answers"`
	Timestamp  time.Time  `gorm:"not null;index:idx_results_user_ts,priority:2,sort:desc" json:"timestamp"`
}

// TableName определяет имя таблицы для GORM
func (Result) TableName() string {
	return "results"
}

// Percentage возвращает round(100 * score / total). Для total <= 0 возвращает 0.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) * 100 / float64(total)))
}
