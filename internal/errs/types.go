package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

type ForbiddenError struct {
	ErrorMessage
}

// DatabaseError wraps a failed datastore operation.
type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// ExternalServiceError wraps a failed call to another service. Transient
// failures are worth retrying.
type ExternalServiceError struct {
	ErrorMessage
	Service   string
	Transient bool
	Err       error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// StorageError wraps a failed local cache operation.
type StorageError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *StorageError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewForbiddenError(message string) *ForbiddenError {
	return &ForbiddenError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s: %v", message, err)},
		Operation:    operation,
		Err:          err,
	}
}

func NewExternalServiceError(service string, transient bool, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s: %v", service, err)},
		Service:      service,
		Transient:    transient,
		Err:          err,
	}
}

func NewStorageError(operation string, err error) *StorageError {
	return &StorageError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s: %v", operation, err)},
		Operation:    operation,
		Err:          err,
	}
}
