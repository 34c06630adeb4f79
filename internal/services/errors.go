package services

import "errors"

// ErrUnknownUser is returned when a userId matches no document.
var ErrUnknownUser = errors.New("unknown user")

// BadDateError marks a from/to/date value that parses as neither
// YYYY-MM-DD nor the stored day format.
type BadDateError struct {
	Field string
	Value string
}

func (e *BadDateError) Error() string {
	return "invalid " + e.Field + " date " + e.Value
}
