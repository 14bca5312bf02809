package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ExternalServiceError is returned by the upstream adapters. StatusCode is
// zero when the request never got a response.
type ExternalServiceError struct {
	ErrorMessage
	Service    string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

// NewStatusError reports a non-200 upstream response. 5xx and 429 are transient.
func NewStatusError(service string, status int) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s returned status %d", service, status)},
		Service:      service,
		StatusCode:   status,
		Transient:    status >= 500 || status == 429,
	}
}

// NewTransportError reports a request that failed before a response arrived.
func NewTransportError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s request failed: %v", service, err)},
		Service:      service,
		Transient:    true,
		Err:          err,
	}
}

// NewShapeError reports a 200 response whose body didn't match the expected shape.
func NewShapeError(service string, err error) *ExternalServiceError {
	msg := fmt.Sprintf("%s returned an unexpected payload", service)
	if err != nil {
		msg = fmt.Sprintf("%s: %v", msg, err)
	}
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: msg},
		Service:      service,
		StatusCode:   200,
		Err:          err,
	}
}
