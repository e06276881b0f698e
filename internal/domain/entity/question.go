package entity

import (
	"strings"
	"time"
)

// Метки вариантов ответа
const (
	OptionA = "A"
	OptionB = "B"
	OptionC = "C"
	OptionD = "D"
)

// Question представляет вопрос с четырьмя вариантами ответа
type Question struct {
	ID            string    `gorm:"primaryKey;type:uuid" json:"id"`
	Question      string    `gorm:"size:500;not null" json:"question"`
	OptionA       string    `gorm:"size:255;not null" json:"optionA"`
	OptionB       string    `gorm:"size:255;not null" json:"optionB"`
	OptionC       string    `gorm:"size:255;not null" json:"optionC"`
	OptionD       string    `gorm:"size:255;not null" json:"optionD"`
	CorrectAnswer string    `gorm:"size:1;not null" json:"correctAnswer"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// IsCorrect проверяет, совпадает ли выбранный вариант с правильным
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// Options возвращает варианты ответа в порядке A..D
func (q *Question) Options() []string {
	return []string{q.OptionA, q.OptionB, q.OptionC, q.OptionD}
}

// IsValidOption проверяет, является ли метка одной из A, B, C, D
func IsValidOption(marker string) bool {
	switch marker {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// NormalizeOption приводит метку варианта к верхнему регистру без пробелов
func NormalizeOption(marker string) string {
	return strings.ToUpper(strings.TrimSpace(marker))
}

// QuestionUpdate содержит поля для частичного обновления вопроса.
// nil означает "не менять".
type QuestionUpdate struct {
	Question      *string
	OptionA       *string
	OptionB       *string
	OptionC       *string
	OptionD       *string
	CorrectAnswer *string
}

// IsEmpty возвращает true, если ни одно поле не задано
func (u QuestionUpdate) IsEmpty() bool {
	return u.Question == nil && u.OptionA == nil && u.OptionB == nil &&
		u.OptionC == nil && u.OptionD == nil && u.CorrectAnswer == nil
}

// Fields возвращает заданные поля в виде map (ключи — имена JSON/BSON полей)
func (u QuestionUpdate) Fields() map[string]interface{} {
	fields := make(map[string]interface{})
	if u.Question != nil {
		fields["question"] = *u.Question
	}
	if u.OptionA != nil {
		fields["optionA"] = *u.OptionA
	}
	if u.OptionB != nil {
		fields["optionB"] = *u.OptionB
	}
	if u.OptionC != nil {
		fields["optionC"] = *u.OptionC
	}
	if u.OptionD != nil {
		fields["optionD"] = *u.OptionD
	}
	if u.CorrectAnswer != nil {
		fields["correctAnswer"] = *u.CorrectAnswer
	}
	return fields
}

// Apply применяет заданные поля к вопросу
func (u QuestionUpdate) Apply(q *Question) {
	if u.Question != nil {
		q.Question = *u.Question
	}
	if u.OptionA != nil {
		q.OptionA = *u.OptionA
	}
	if u.OptionB != nil {
		q.OptionB = *u.OptionB
	}
	if u.OptionC != nil {
		q.OptionC = *u.OptionC
	}
	if u.OptionD != nil {
		q.OptionD = *u.OptionD
	}
	if u.CorrectAnswer != nil {
		q.CorrectAnswer = *u.CorrectAnswer
	}
}
