package ui

// ActionableError carries a message safe to show directly to the user.
type ActionableError struct {
	Message string
}

func (e *ActionableError) Error() string {
	return e.Message
}
