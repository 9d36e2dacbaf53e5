package handlers

import (
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorModel is the error body every phonebook client understands:
// {"error": "message"}.
type ErrorModel struct {
	status  int
	Message string `json:"error" example:"name must be unique" doc:"What went wrong"`
}

func (e *ErrorModel) Error() string  { return e.Message }
func (e *ErrorModel) GetStatus() int { return e.status }

// newError replaces huma's problem+json errors. Schema validation failures,
// which huma reports as 422, are answered with 400 like any other rejected
// input.
func newError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}
	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}
	return &ErrorModel{status: status, Message: msg}
}

func init() {
	huma.NewError = newError
}
