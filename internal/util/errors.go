package util

import "errors"

var (
	ErrPaperNotFound        = errors.New("paper not found")
	ErrSessionNotFound      = errors.New("session not found")
	ErrResultNotFound       = errors.New("result not found")
	ErrSessionAlreadyActive = errors.New("an active session already exists for this paper")
	ErrSessionExpired       = errors.New("session expired, rely on the auto-submitted result")
	ErrSessionTerminal      = errors.New("session already submitted or expired")
	ErrUnknownQuestion      = errors.New("unknown question id")
	ErrInvalidOption        = errors.New("option is not in the question's label set")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrProgressConflict     = errors.New("progress update conflict, retries exhausted")
)
