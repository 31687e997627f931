package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrRejected      = errors.New("word rejected")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// RejectReason tags why a word was not accepted for play.
type RejectReason string

const (
	RejectNotFound        RejectReason = "not-found"
	RejectSuggestionsOnly RejectReason = "suggestions-only"
	RejectOffensive       RejectReason = "offensive"
	RejectNotCommonWord   RejectReason = "not-a-common-word"
	RejectNoCommonEntry   RejectReason = "no-common-entry"
	RejectUnresolvable    RejectReason = "unresolvable"
	RejectRare            RejectReason = "rare"
)

var rejectMessages = map[RejectReason]string{
	RejectNotFound:        "we couldn't find this word in the dictionary. try something else?",
	RejectSuggestionsOnly: "we couldn't find this word in the dictionary. try something else?",
	RejectOffensive:       "this word was flagged as inappropriate for gameplay. keep it kid-friendly for everyone, please?",
	RejectNotCommonWord:   "only single, common words are allowed. no names, no phrases, no hyphens.",
	RejectNoCommonEntry:   "only single, common words are allowed. no names or phrases.",
	RejectUnresolvable:    "we couldn't figure out the syllables for that word. try a simpler one?",
	RejectRare:            "this word is so rare, we couldn't score it. try something else.",
}

// Message returns the short user-facing text for the reason.
func (r RejectReason) Message() string {
	if m, ok := rejectMessages[r]; ok {
		return m
	}
	return "that word can't be played. try something else?"
}

// RejectionError is an expected, user-facing refusal of a word.
// It is never a transport or storage failure.
type RejectionError struct {
	Word   string
	Reason RejectReason
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("word %q rejected: %s", e.Word, e.Reason)
}

func (e *RejectionError) Unwrap() error { return ErrRejected }

// NewRejection creates a RejectionError.
func NewRejection(word string, reason RejectReason) *RejectionError {
	return &RejectionError{Word: word, Reason: reason}
}

// RejectionReason extracts the reason from err. ok is false if err is not a rejection.
func RejectionReason(err error) (RejectReason, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej.Reason, true
	}
	return "", false
}
