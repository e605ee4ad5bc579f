package api

import "fmt"

// ErrRequestFailed is returned when the server responds with a non-success
// status. The status text is carried so it can be surfaced to the user.
type ErrRequestFailed struct {
	Op     string
	Status string
}

func (e *ErrRequestFailed) Error() string {
	return fmt.Sprintf("failed to %s: %s", e.Op, e.Status)
}
