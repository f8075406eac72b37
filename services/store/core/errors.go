package core

import "errors"

// Users errors
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Tasks errors
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrInvalidArgs  = errors.New("invalid args")
)
