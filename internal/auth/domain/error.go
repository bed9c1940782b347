package domain

import "errors"

var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoPassword marks accounts created through Google sign-in only.
	ErrNoPassword = errors.New("account has no password")

	ErrNoOutstandingRequest = errors.New("no otp request found")
	ErrInvalidCode          = errors.New("invalid otp")
	ErrCodeExpired          = errors.New("otp expired")

	// ErrNotificationFailed wraps a transport error after the operation's
	// primary effect already committed.
	ErrNotificationFailed = errors.New("notification dispatch failed")
)
