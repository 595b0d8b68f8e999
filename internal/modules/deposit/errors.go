package deposit

// ValidationError carries the client-facing message for a rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func errValidation(msg string) error {
	return &ValidationError{Message: msg}
}
