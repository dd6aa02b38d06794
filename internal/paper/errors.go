package paper

// ValidationError reports a structurally invalid generation request: no
// usable content for any selected unit, or a configuration that yields no
// questions at all. Anything else that fails during generation is an
// internal error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
