package errors

import "errors"

// Общие ошибки приложения. Сервисы оборачивают их через fmt.Errorf("%w: ..."),
// обработчики сопоставляют через errors.Is.
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrConflict используется при нарушении уникальности (username/email уже заняты).
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials не различает "пользователь не найден" и "неверный пароль".
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrMissingToken используется, когда bearer-токен не передан.
	ErrMissingToken = errors.New("token is missing")

	// ErrInvalidToken используется для токена с неверной подписью или истекшего токена.
	ErrInvalidToken = errors.New("token is invalid or expired")
)
