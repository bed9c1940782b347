package domain

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already registered")
	ErrGoogleIDTaken = errors.New("google account already linked")
)
