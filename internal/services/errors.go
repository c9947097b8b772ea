// Package services defines the business logic for contact submissions and
// portfolio projects. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors represent expected, caller-correctable outcomes. Translation
// into user-facing messages or HTTP status codes is performed at the
// handler layer; unexpected failures (storage outages, constraint
// violations) are propagated as raw errors and mapped to generic 500s.
package services

import "errors"

// Validation errors. Each is caller-correctable and maps to HTTP 400.
var (
	// ErrMissingFields is returned when any of the four required contact
	// fields is empty after trimming surrounding whitespace.
	ErrMissingFields = errors.New("please fill all fields")

	// ErrInvalidEmail is returned when the sender address does not parse
	// as a valid email or exceeds the stored column width.
	ErrInvalidEmail = errors.New("please enter a valid email address")

	// ErrNameLength is returned when the sender name exceeds 100 characters.
	ErrNameLength = errors.New("name must be at most 100 characters")

	// ErrSubjectLength is returned when the subject is outside 5-200 characters.
	ErrSubjectLength = errors.New("subject must be between 5 and 200 characters")

	// ErrBodyLength is returned when the message body is outside 10-2000 characters.
	ErrBodyLength = errors.New("message must be between 10 and 2000 characters")
)

// IsValidation reports whether err is one of the caller-correctable
// validation sentinels above.
func IsValidation(err error) bool {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrNameLength),
		errors.Is(err, ErrSubjectLength),
		errors.Is(err, ErrBodyLength):
		return true
	}
	return false
}
