package session

import "errors"

// ValidationError reports rejected user input: an empty login name, empty
// send text, or sending without a local participant. No partial state change
// accompanies one.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// IsValidation returns true if err (or any wrapped error) is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
