package apperror

import (
	"errors"
	"fmt"
)

// BusinessError is the one error type services return for expected failures.
// Field and Value name the input that caused it.
type BusinessError struct {
	Value any
	Field string
	Code  ErrorCode
}

func New(value any, field string, code ErrorCode) *BusinessError {
	return &BusinessError{Value: value, Field: field, Code: code}
}

// Of builds an error that is not tied to a request field.
func Of(code ErrorCode) *BusinessError {
	return &BusinessError{Code: code}
}

func (e *BusinessError) Error() string {
	if e.Field == "" {
		return e.Code.Name + ": " + e.Code.Message
	}
	return fmt.Sprintf("%s: %s (%s=%v)", e.Code.Name, e.Code.Message, e.Field, e.Value)
}

// Is matches on the code so callers can use errors.Is(err, apperror.Of(apperror.PostNotFound)).
func (e *BusinessError) Is(target error) bool {
	var t *BusinessError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code.Name == e.Code.Name
}

// As unwraps err into a BusinessError.
func As(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// HasCode reports whether err is a BusinessError carrying code.
func HasCode(err error, code ErrorCode) bool {
	be, ok := As(err)
	return ok && be.Code.Name == code.Name
}
