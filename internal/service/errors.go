package service

import "errors"

// Sentinel errors the HTTP layer maps onto status codes. NotFound covers
// both "does not exist" and "exists but owned by someone else" so that
// resource existence never leaks across users.
var (
	ErrRegistrationFields = errors.New("username, email, and password are required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrLoginFields        = errors.New("email and password are required")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("authentication required")

	ErrListNotFound = errors.New("list not found")
	ErrTaskNotFound = errors.New("task not found")

	ErrTitleRequired        = errors.New("title is required")
	ErrListAndTitleRequired = errors.New("list id and title are required")
	ErrStatusRequired       = errors.New("status is required")
	ErrInvalidStatus        = errors.New("invalid status")
)
