package benchmark

import "fmt"

// InvalidInputError reports a contract violation by the caller. It is never
// transient; retrying the same input cannot succeed.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s %s", e.Field, e.Reason)
}
