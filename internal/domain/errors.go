package domain

import "errors"

var (
	// ErrRecordNotFound is returned when no record exists for an email.
	ErrRecordNotFound = errors.New("user record not found")
)

// ValidationError marks a client-fault failure (missing or malformed
// request fields). Transports map it to a 400 response.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
