package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/auth"
	"todo-api/internal/config"
	"todo-api/internal/repository"
	"todo-api/internal/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.Config{
		Port:        "0",
		DatabaseURL: filepath.Join(t.TempDir(), "test.db"),
		JWTSecret:   "test-secret",
		Env:         "test",
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	listRepo := repository.NewListRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	tokens := auth.NewTokenService(cfg.JWTSecret)
	gate := auth.NewGate(tokens)

	return New(cfg,
		gate,
		service.NewAuthService(userRepo, tokens),
		service.NewListService(listRepo),
		service.NewTaskService(taskRepo, listRepo),
	)
}

func (s *Server) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
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

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func register(t *testing.T, s *Server, username, email string) string {
	t.Helper()
	rec, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "register %s: %s", username, rec.Body.String())
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestFullScenario(t *testing.T) {
	s := newTestServer(t)

	// Register alice.
	rec, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	token := body["token"].(string)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@x.com", user["email"])

	// Create list "Groceries".
	rec, body = s.do(t, http.MethodPost, "/api/lists", token, map[string]string{"title": "Groceries"})
	require.Equal(t, http.StatusCreated, rec.Code)
	list := body["data"].(map[string]interface{})
	listID := list["id"].(float64)
	assert.Equal(t, "Groceries", list["title"])

	// Create task "Milk" with default status and priority.
	rec, body = s.do(t, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"listId": listID,
		"title":  "Milk",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	task := body["data"].(map[string]interface{})
	taskID := task["id"].(float64)
	assert.Equal(t, "pending", task["status"])
	assert.Equal(t, "medium", task["priority"])

	// Patch status to completed.
	rec, body = s.do(t, http.MethodPatch, taskPath(taskID)+"/status", token, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "completed", body["data"].(map[string]interface{})["status"])

	// Delete the list.
	rec, _ = s.do(t, http.MethodDelete, listPath(listID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The task is gone with it.
	rec, body = s.do(t, http.MethodGet, taskPath(taskID), token, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found", body["error"])
}

func listPath(id float64) string {
	return "/api/lists/" + jsonID(id)
}

func taskPath(id float64) string {
	return "/api/tasks/" + jsonID(id)
}

func jsonID(id float64) string {
	raw, _ := json.Marshal(uint(id))
	return string(raw)
}

func TestRegisterDuplicateConflict(t *testing.T) {
	s := newTestServer(t)
	register(t, s, "alice", "a@x.com")

	rec, body := s.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "other",
		"email":    "a@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User already exists", body["error"])
}

func TestLoginFailureShapesMatch(t *testing.T) {
	s := newTestServer(t)
	register(t, s, "alice", "a@x.com")

	rec1, body1 := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	rec2, body2 := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@x.com", "password": "secret1",
	})

	assert.Equal(t, http.StatusUnauthorized, rec1.Code)
	assert.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.Equal(t, body1, body2, "wrong password and unknown email must be indistinguishable")
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	token := register(t, s, "alice", "a@x.com")

	rec, body := s.do(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@x.com", user["email"])

	rec, _ = s.do(t, http.MethodGet, "/api/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestResourceRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/lists"},
		{http.MethodPost, "/api/lists"},
		{http.MethodGet, "/api/lists/1"},
		{http.MethodGet, "/api/tasks/1"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodPatch, "/api/tasks/1/status"},
	}

	for _, tt := range paths {
		rec, body := s.do(t, tt.method, tt.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, "Access token required", body["error"])
	}

	rec, body := s.do(t, http.MethodGet, "/api/lists", "bogus-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid or expired token", body["error"])
}

func TestCrossUserAccessLooksAbsent(t *testing.T) {
	s := newTestServer(t)
	aliceToken := register(t, s, "alice", "a@x.com")
	bobToken := register(t, s, "bob", "b@x.com")

	_, body := s.do(t, http.MethodPost, "/api/lists", aliceToken, map[string]string{"title": "private"})
	listID := body["data"].(map[string]interface{})["id"].(float64)

	_, body = s.do(t, http.MethodPost, "/api/tasks", aliceToken, map[string]interface{}{
		"listId": listID, "title": "secret task",
	})
	taskID := body["data"].(map[string]interface{})["id"].(float64)

	attempts := []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, listPath(listID), nil},
		{http.MethodPut, listPath(listID), map[string]string{"title": "mine now"}},
		{http.MethodDelete, listPath(listID), nil},
		{http.MethodGet, "/api/tasks/list/" + jsonID(listID), nil},
		{http.MethodGet, taskPath(taskID), nil},
		{http.MethodPut, taskPath(taskID), map[string]string{"title": "mine now"}},
		{http.MethodDelete, taskPath(taskID), nil},
		{http.MethodPatch, taskPath(taskID) + "/status", map[string]string{"status": "completed"}},
	}

	for _, tt := range attempts {
		rec, _ := s.do(t, tt.method, tt.path, bobToken, tt.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s must report NotFound, not Forbidden", tt.method, tt.path)
	}
}

func TestTaskUpdatePermissiveVsPatchStrict(t *testing.T) {
	s := newTestServer(t)
	token := register(t, s, "alice", "a@x.com")

	_, body := s.do(t, http.MethodPost, "/api/lists", token, map[string]string{"title": "groceries"})
	listID := body["data"].(map[string]interface{})["id"].(float64)

	_, body = s.do(t, http.MethodPost, "/api/tasks", token, map[string]interface{}{
		"listId": listID, "title": "milk", "priority": "high",
	})
	task := body["data"].(map[string]interface{})
	taskID := task["id"].(float64)

	// PUT with unknown priority succeeds and keeps the prior value.
	rec, body := s.do(t, http.MethodPut, taskPath(taskID), token, map[string]string{
		"title": "milk", "priority": "urgent",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "high", body["data"].(map[string]interface{})["priority"])

	// PATCH with an unknown status is rejected outright.
	rec, body = s.do(t, http.MethodPatch, taskPath(taskID)+"/status", token, map[string]string{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid status", body["error"])

	// And the status is unchanged.
	rec, body = s.do(t, http.MethodGet, taskPath(taskID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", body["data"].(map[string]interface{})["status"])
}

func TestEmptyCollectionsSerializeAsArrays(t *testing.T) {
	s := newTestServer(t)
	token := register(t, s, "alice", "a@x.com")

	rec, body := s.do(t, http.MethodGet, "/api/lists", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data, ok := body["data"].([]interface{})
	require.True(t, ok, "data must be an array, got %T", body["data"])
	assert.Empty(t, data)
}

func TestHealthAndIndex(t *testing.T) {
	s := newTestServer(t)

	rec, body := s.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "test", body["environment"])

	rec, body = s.do(t, http.MethodGet, "/api", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Todo List API", body["message"])

	rec, body = s.do(t, http.MethodGet, "/nowhere", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "/api", body["availableEndpoints"])
}
