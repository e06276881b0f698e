package dto

// RegisterRequest представляет запрос на регистрацию.
// Обязательность полей проверяет сервис (после обрезки пробелов).
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest представляет запрос на вход
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginUserDTO — публичные данные пользователя в ответе на вход
type LoginUserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginResponse представляет ответ на успешный вход
type LoginResponse struct {
	Token string       `json:"token"`
	User  LoginUserDTO `json:"user"`
}

// MessageResponse — ответ с текстовым сообщением
type MessageResponse struct {
	Message string `json:"message"`
}
