// Package apperrors holds the error values shared between services, repositories
// and handlers so that callers can branch on errors.Is instead of matching
// message text.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// registration errors
	ErrUsernameTaken = errors.New("username is already taken")
	ErrEmailTaken    = errors.New("email is already registered")

	// login errors.
	// Unknown username and wrong password both map to this single value so the
	// two cases are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// lookup errors
	ErrTaskNotFound = errors.New("task not found")
	ErrUserNotFound = errors.New("user not found")

	// ownership errors
	ErrNotTaskOwner = errors.New("not authorized to access this task")
)

// FieldError describes a validation failure for a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the list of field errors produced by request validation.
// It implements error so it can travel through the service layer like any
// other failure.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, fe := range v {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidationErrors unwraps err into ValidationErrors if possible.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
