package tasks

// ValidationError is caller input the endpoint refuses before any model call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// UpstreamError wraps a failed model call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return "Gemini generation failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
