package user

import "fmt"

type UserError struct {
	Code    string
	Message string
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

var (
	ErrUserIDRequired  = &UserError{Code: "invalid", Message: "User ID required"}
	ErrVibeRequired    = &UserError{Code: "invalid", Message: "User ID and vibe vector required"}
	ErrProfileNotFound = &UserError{Code: "notFound", Message: "Profile not found"}
)
