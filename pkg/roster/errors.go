package roster

// ErrValidationFailed is returned when form input fails validation before
// any request is made.
type ErrValidationFailed struct {
	Message string
}

func (e *ErrValidationFailed) Error() string {
	return e.Message
}
