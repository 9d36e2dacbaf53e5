package api

import (
	"errors"
	"fmt"
)

// ValidationError is returned when the server rejects a request with a client
// error status. Message is the text the server supplied.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError is returned when the target contact no longer exists remotely.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("contact %s not found", e.ID)
}

// NetworkError covers transport failures, server errors and responses that
// could not be decoded.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Kind is the class of a remote failure.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindNotFound
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	default:
		return "network"
	}
}

// Classify maps err to its Kind. Errors outside the taxonomy count as
// network errors.
func Classify(err error) Kind {
	var (
		validation *ValidationError
		notFound   *NotFoundError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &validation):
		return KindValidation
	case errors.As(err, &notFound):
		return KindNotFound
	default:
		return KindNetwork
	}
}
