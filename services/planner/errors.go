package planner

import "fmt"

type PlanError struct {
	Code    string
	Message string
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewPlanError(code, msg string) error {
	return &PlanError{
		Code:    code,
		Message: msg,
	}
}

// ErrMissingLocation is reported when a request names nowhere to plan the evening.
var ErrMissingLocation = &PlanError{
	Code:    "missingLocation",
	Message: "Please tell me where you'd like to go, e.g. \"dinner in the West Village\"",
}
