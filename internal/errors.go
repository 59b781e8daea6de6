package internal

import "errors"

// ErrEmptyRequest is returned when no infrastructure request was given.
var ErrEmptyRequest = errors.New("please provide a description of the infrastructure you need")

// ErrorWithSuggestion is a custom error type that includes a suggestion for the user
type ErrorWithSuggestion struct {
	Suggestion string
	Err        error
}

// Error returns the error message
func (es *ErrorWithSuggestion) Error() string {
	return es.Err.Error()
}

// Unwrap returns the wrapped error
func (es *ErrorWithSuggestion) Unwrap() error {
	return es.Err
}
