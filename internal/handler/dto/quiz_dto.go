package dto

import (
	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/service"
)

// QuestionRequest представляет запрос на создание вопроса
type QuestionRequest struct {
	Question      string `json:"question"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer"`
}

// ToInput преобразует запрос во входные данные сервиса
func (r QuestionRequest) ToInput() service.QuestionInput {
	return service.QuestionInput{
		Question:      r.Question,
		OptionA:       r.OptionA,
		OptionB:       r.OptionB,
		OptionC:       r.OptionC,
		OptionD:       r.OptionD,
		CorrectAnswer: r.CorrectAnswer,
	}
}

// UpdateQuestionRequest представляет частичное обновление вопроса (отсутствующие поля не меняются)
type UpdateQuestionRequest struct {
	Question      *string `json:"question"`
	OptionA       *string `json:"optionA"`
	OptionB       *string `json:"optionB"`
	OptionC       *string `json:"optionC"`
	OptionD       *string `json:"optionD"`
	CorrectAnswer *string `json:"correctAnswer"`
}

// ToUpdate преобразует запрос в entity.QuestionUpdate
func (r UpdateQuestionRequest) ToUpdate() entity.QuestionUpdate {
	return entity.QuestionUpdate{
		Question:      r.Question,
		OptionA:       r.OptionA,
		OptionB:       r.OptionB,
		OptionC:       r.OptionC,
		OptionD:       r.OptionD,
		CorrectAnswer: r.CorrectAnswer,
	}
}

// SubmitQuizRequest представляет отправку ответов.
// Answers — указатель, чтобы отличать отсутствующее поле от пустого массива.
type SubmitQuizRequest struct {
	Answers *[]entity.SubmittedAnswer `json:"answers"`
}
