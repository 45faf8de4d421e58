package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"todo-api/internal/service"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type dataBody struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func errorJSON(c echo.Context, code int, kind, message string) error {
	return c.JSON(code, errorBody{Error: kind, Message: message})
}

func dataJSON(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, dataBody{Message: message, Data: data})
}

var errorResponses = map[error]struct {
	code    int
	kind    string
	message string
}{
	service.ErrRegistrationFields:   {http.StatusBadRequest, "Missing required fields", "Username, email, and password are required"},
	service.ErrPasswordTooShort:     {http.StatusBadRequest, "Password too short", "Password must be at least 6 characters long"},
	service.ErrLoginFields:          {http.StatusBadRequest, "Missing required fields", "Email and password are required"},
	service.ErrDuplicateUser:        {http.StatusConflict, "User already exists", "A user with this email or username already exists"},
	service.ErrInvalidCredentials:   {http.StatusUnauthorized, "Invalid credentials", "Email or password is incorrect"},
	service.ErrUnauthorized:         {http.StatusUnauthorized, "Unauthorized", "Authentication required"},
	service.ErrListNotFound:         {http.StatusNotFound, "List not found", "The requested list does not exist or you do not have access to it"},
	service.ErrTaskNotFound:         {http.StatusNotFound, "Task not found", "The requested task does not exist or you do not have access to it"},
	service.ErrTitleRequired:        {http.StatusBadRequest, "Missing required field", "Title is required"},
	service.ErrListAndTitleRequired: {http.StatusBadRequest, "Missing required fields", "List ID and title are required"},
	service.ErrStatusRequired:       {http.StatusBadRequest, "Missing required field", "Status is required"},
	service.ErrInvalidStatus:        {http.StatusBadRequest, "Invalid status", "Status must be one of: pending, in_progress, completed"},
}

// serviceError renders a known service error, or a 500 with the given
// fallback message for anything unexpected. Storage detail stays in the
// logs; outside production it is echoed in the body to ease debugging.
func (s *Server) serviceError(c echo.Context, err error, fallback string) error {
	for sentinel, resp := range errorResponses {
		if errors.Is(err, sentinel) {
			return errorJSON(c, resp.code, resp.kind, resp.message)
		}
	}

	log.Printf("[error] %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
	message := fallback
	if !s.cfg.Production() {
		message = fallback + ": " + err.Error()
	}
	return errorJSON(c, http.StatusInternalServerError, "Server error", message)
}

func bindError(c echo.Context) error {
	return errorJSON(c, http.StatusBadRequest, "Invalid request", "Request body must be valid JSON")
}
