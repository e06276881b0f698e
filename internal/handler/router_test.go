package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/quiz-api/internal/domain/entity"
	"github.com/yourusername/quiz-api/internal/middleware"
	"github.com/yourusername/quiz-api/internal/repository/memory"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/auth"
)

// testApp собирает роутер поверх хранилищ в памяти
type testApp struct {
	router    *gin.Engine
	questions *memory.QuestionRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	userRepo := memory.NewUserRepo()
	questionRepo := memory.NewQuestionRepo()
	resultRepo := memory.NewResultRepo()

	jwtService, err := auth.NewJWTService("handler-secret", 24, "quiz-api")
	require.NoError(t, err)
	authService, err := service.NewAuthService(userRepo, jwtService, nil)
	require.NoError(t, err)

	router := NewRouter(RouterDeps{
		AuthHandler:     NewAuthHandler(authService),
		UserHandler:     NewUserHandler(service.NewUserService(userRepo)),
		QuestionHandler: NewQuestionHandler(service.NewQuestionService(questionRepo)),
		QuizHandler: NewQuizHandler(
			service.NewQuizService(questionRepo, resultRepo, nil),
			service.NewResultService(resultRepo),
		),
		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
		RateLimiter:    middleware.NewRateLimiter(nil),
		AuthRateLimit:  middleware.AuthRateLimitConfig(5, 0),
		Health:         memory.HealthChecker{},
		AllowedOrigins: []string{"http://localhost:3000"},
	})

	return &testApp{router: router, questions: questionRepo}
}

func (a *testApp) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) registerAndLogin(t *testing.T, username string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/register", "", gin.H{
		"username": username, "email": username + "@example.com", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(t, http.MethodPost, "/api/login", "", gin.H{"username": username, "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (a *testApp) createQuestion(t *testing.T, token, correct string) entity.Question {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/questions", token, gin.H{
		"question": "Вопрос?", "optionA": "a", "optionB": "b", "optionC": "c", "optionD": "d", "correctAnswer": correct,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var q entity.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &q))
	return q
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestRegister(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodPost, "/api/register", "", gin.H{
		"username": "alice", "email": "alice@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", decodeMap(t, w)["message"])
	assert.NotContains(t, w.Body.String(), "password", "ответ не содержит чувствительных данных")

	// Повтор username
	w = app.do(t, http.MethodPost, "/api/register", "", gin.H{
		"username": "alice", "email": "other@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "conflict", decodeMap(t, w)["error_type"])

	// Повтор email
	w = app.do(t, http.MethodPost, "/api/register", "", gin.H{
		"username": "alice2", "email": "ALICE@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Отсутствует поле
	w = app.do(t, http.MethodPost, "/api/register", "", gin.H{"username": "bob", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeMap(t, w)["error_type"])
}

func TestLogin(t *testing.T) {
	app := newTestApp(t)
	app.registerAndLogin(t, "alice")

	w := app.do(t, http.MethodPost, "/api/login", "", gin.H{"username": "alice", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeMap(t, w)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.NotEmpty(t, user["id"])

	wrongPassword := app.do(t, http.MethodPost, "/api/login", "", gin.H{"username": "alice", "password": "nope"})
	unknownUser := app.do(t, http.MethodPost, "/api/login", "", gin.H{"username": "ghost", "password": "secret123"})

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, wrongPassword.Code, unknownUser.Code)
	assert.JSONEq(t, wrongPassword.Body.String(), unknownUser.Body.String(), "ответы неотличимы")

	w = app.do(t, http.MethodPost, "/api/login", "", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser(t *testing.T) {
	app := newTestApp(t)
	token := app.registerAndLogin(t, "alice")

	w := app.do(t, http.MethodGet, "/api/user", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeMap(t, w)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotContains(t, body, "password")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/user"},
		{http.MethodGet, "/api/questions"},
		{http.MethodGet, "/api/questions/random"},
		{http.MethodPost, "/api/questions"},
		{http.MethodPut, "/api/questions/abc"},
		{http.MethodDelete, "/api/questions/abc"},
		{http.MethodPost, "/api/quiz/submit"},
		{http.MethodGet, "/api/results"},
		{http.MethodGet, "/api/results/export"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, app.do(t, rt.method, rt.path, "", nil).Code)
			assert.Equal(t, http.StatusForbidden, app.do(t, rt.method, rt.path, "bad.token.value", nil).Code)
		})
	}
}

func TestQuestionCRUD(t *testing.T) {
	app := newTestApp(t)
	token := app.registerAndLogin(t, "alice")

	q := app.createQuestion(t, token, "b")
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "B", q.CorrectAnswer)

	// Неверная метка
	w := app.do(t, http.MethodPost, "/api/questions", token, gin.H{
		"question": "?", "optionA": "a", "optionB": "b", "optionC": "c", "optionD": "d", "correctAnswer": "E",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Частичное обновление
	w = app.do(t, http.MethodPut, "/api/questions/"+q.ID, token, gin.H{"optionA": "новый"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeMap(t, w)
	assert.Equal(t, "новый", updated["optionA"])
	assert.Equal(t, "b", updated["optionB"])

	w = app.do(t, http.MethodPut, "/api/questions/unknown", token, gin.H{"optionA": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Пустое тело: 404 для неизвестного id, 200 и запись без изменений для существующего
	w = app.do(t, http.MethodPut, "/api/questions/does-not-exist", token, gin.H{})
	assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())

	w = app.do(t, http.MethodPut, "/api/questions/"+q.ID, token, gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "новый", decodeMap(t, w)["optionA"])

	// Удаление
	w = app.do(t, http.MethodDelete, "/api/questions/"+q.ID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = app.do(t, http.MethodDelete, "/api/questions/"+q.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code, "повторное удаление дает 404")

	w = app.do(t, http.MethodGet, "/api/questions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), q.ID, "удаленный вопрос не попадает в список")
}

func TestRandomQuestions(t *testing.T) {
	app := newTestApp(t)
	token := app.registerAndLogin(t, "alice")
	for i := 0; i < 3; i++ {
		app.createQuestion(t, token, "A")
	}

	w := app.do(t, http.MethodGet, "/api/questions/random", token, nil)

	require.Equal(t, http.StatusOK, w.Code)
	var questions []entity.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
	assert.Len(t, questions, 3)
}

func TestSubmitQuizAndResults(t *testing.T) {
	app := newTestApp(t)
	token := app.registerAndLogin(t, "alice")
	q1 := app.createQuestion(t, token, "A")
	q2 := app.createQuestion(t, token, "C")

	// Все ответы верные
	w := app.do(t, http.MethodPost, "/api/quiz/submit", token, gin.H{"answers": []gin.H{
		{"questionId": q1.ID, "answer": "A"},
		{"questionId": q2.ID, "answer": "C"},
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"score":2,"total":2,"percentage":100,"unscored":0}`, w.Body.String())

	// Ненайденный вопрос
	w = app.do(t, http.MethodPost, "/api/quiz/submit", token, gin.H{"answers": []gin.H{
		{"questionId": q1.ID, "answer": "B"},
		{"questionId": "missing", "answer": "A"},
	}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":0,"total":2,"percentage":0,"unscored":1}`, w.Body.String())

	// Пустой список ответов
	w = app.do(t, http.MethodPost, "/api/quiz/submit", token, gin.H{"answers": []gin.H{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":0,"total":0,"percentage":0,"unscored":0}`, w.Body.String())

	// Поле answers отсутствует
	w = app.do(t, http.MethodPost, "/api/quiz/submit", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// История: новые первыми, три попытки
	w = app.do(t, http.MethodGet, "/api/results", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var results []entity.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 3)
	assert.Equal(t, 0, results[0].Total, "последняя попытка первой")
	assert.Equal(t, 100, results[2].Percentage)

	// Чужая история пуста
	other := app.registerAndLogin(t, "bob")
	w = app.do(t, http.MethodGet, "/api/results", other, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestExportResults(t *testing.T) {
	app := newTestApp(t)
	token := app.registerAndLogin(t, "alice")
	q := app.createQuestion(t, token, "A")

	w := app.do(t, http.MethodPost, "/api/quiz/submit", token, gin.H{"answers": []gin.H{
		{"questionId": q.ID, "answer": "A"},
	}})
	require.Equal(t, http.StatusOK, w.Code)

	t.Run("csv", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/results/export", token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "results_alice_")
		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		assert.Len(t, lines, 2, "заголовок и одна строка")
		assert.Contains(t, lines[1], "100%")
	})

	t.Run("xlsx", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/results/export?format=xlsx", token, nil)

		require.Equal(t, http.StatusOK, w.Code)
		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		require.NoError(t, err)
		defer f.Close()

		rows, err := f.GetRows("Результаты")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "100", rows[1][3])
	})

	t.Run("неизвестный формат", func(t *testing.T) {
		w := app.do(t, http.MethodGet, "/api/results/export?format=pdf", token, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/healthz", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCorsConfig(t *testing.T) {
	cfg := corsConfig(nil)
	assert.True(t, cfg.AllowAllOrigins)
	assert.False(t, cfg.AllowCredentials)

	cfg = corsConfig([]string{"*"})
	assert.True(t, cfg.AllowAllOrigins)

	cfg = corsConfig([]string{"http://localhost:5173"})
	assert.False(t, cfg.AllowAllOrigins)
	assert.True(t, cfg.AllowCredentials)
}
