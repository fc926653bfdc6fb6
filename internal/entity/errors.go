package entity

import "errors"

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidTaskData    = errors.New("invalid task data")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
