package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"todo-api/internal/auth"
	"todo-api/internal/service"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	user, token, err := s.authSvc.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return s.serviceError(c, err, "Internal server error during registration")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user": echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"token": token,
	})
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	user, token, err := s.authSvc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return s.serviceError(c, err, "Internal server error during login")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Login successful",
		"user": echo.Map{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"token": token,
	})
}

// profile echoes the identity the gate already verified. The gate should
// have rejected unauthenticated requests before this point.
func (s *Server) profile(c echo.Context) error {
	claims, ok := auth.Identity(c)
	if !ok {
		return s.serviceError(c, service.ErrUnauthorized, "")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": echo.Map{
			"id":       claims.UserID,
			"username": claims.Username,
			"email":    claims.Email,
		},
	})
}
