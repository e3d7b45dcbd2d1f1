package verification

import "fmt"

type VerificationError struct {
	Code    string
	Message string
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewVerificationError(code, msg string) error {
	return &VerificationError{Code: code, Message: msg}
}

var (
	ErrPhoneRequired = &VerificationError{Code: "phoneRequired", Message: "Phone number required"}
	ErrCodeRequired  = &VerificationError{Code: "codeRequired", Message: "Phone and code required"}
	ErrInvalidPhone  = &VerificationError{Code: "invalidPhone", Message: "Invalid phone number"}
	ErrCodeNotFound  = &VerificationError{Code: "codeNotFound", Message: "No verification code found. Request a new one."}
	ErrCodeExpired   = &VerificationError{Code: "codeExpired", Message: "Code expired. Request a new one."}
	ErrInvalidCode   = &VerificationError{Code: "invalidCode", Message: "Invalid code"}
)
