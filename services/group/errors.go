package group

import (
	"errors"
	"fmt"
)

type SessionError struct {
	Code    string
	Message string
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSessionError(code, msg string) error {
	return &SessionError{
		Code:    code,
		Message: msg,
	}
}

const (
	CodeInvalid    = "invalid"
	CodeNotFound   = "notFound"
	CodeConflict   = "conflict"
	CodeNoSolution = "noSolution"
)

var (
	ErrSessionNotFound     = &SessionError{Code: CodeNotFound, Message: "Session not found"}
	ErrParticipantNotFound = &SessionError{Code: CodeNotFound, Message: "Participant not found"}
	ErrNotCollecting       = &SessionError{Code: CodeConflict, Message: "Session is no longer accepting participants"}
	ErrAlreadyBooked       = &SessionError{Code: CodeConflict, Message: "Session has already been booked"}
	ErrNoSolution          = &SessionError{Code: CodeNoSolution, Message: "Session has no solution to book"}
)

var errSolverFailed = errors.New("group solver failed")
