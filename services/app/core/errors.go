package core

import "errors"

var (
	ErrInvalidArgs  = errors.New("invalid args")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("remote store unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)
