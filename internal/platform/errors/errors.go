package apperrors

import "errors"

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrNoActiveSession     = errors.New("no active session")
	ErrActiveSessionExists = errors.New("active session already exists")
	ErrSessionRunning      = errors.New("session is running")
	ErrSessionEnding       = errors.New("previous session is still ending")
	ErrStartInProgress     = errors.New("session start already in progress")
	ErrSessionCanceled     = errors.New("session start canceled")
)
