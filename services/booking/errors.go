package booking

import (
	"errors"
	"fmt"
)

// ServiceError is the typed failure shape for booking operations. The tool
// layer flattens these into the wire envelope; only the message text differs
// between validation and not-found failures there.
type ServiceError struct {
	Code    string
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

const (
	codeValidation = "validationError"
	codeNotFound   = "notFoundError"
)

func NewValidationError(msg string) error {
	return &ServiceError{Code: codeValidation, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &ServiceError{Code: codeNotFound, Message: msg}
}

// IsValidationError reports whether err is a validation failure.
func IsValidationError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Code == codeValidation
}

// IsNotFoundError reports whether err is a not-found failure.
func IsNotFoundError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se) && se.Code == codeNotFound
}
