package autonomy

import "fmt"

type AutonomyError struct {
	Code    string
	Message string
}

func (e *AutonomyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAutonomyError(code, msg string) error {
	return &AutonomyError{Code: code, Message: msg}
}

const (
	CodeInvalid  = "invalid"
	CodeNotFound = "notFound"
)

var (
	ErrMissingUser    = &AutonomyError{Code: CodeInvalid, Message: "Missing userId"}
	ErrConfigNotFound = &AutonomyError{Code: CodeNotFound, Message: "No autonomy config for user"}
)
