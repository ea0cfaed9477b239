package auth

// Envelope is the uniform {success, data?, error?} shape route handlers
// serialize. Internal failures are masked with a generic message; the
// original error is expected to have been logged at the boundary.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// NewEnvelope wraps an operation outcome for serialization.
func NewEnvelope(data any, err error) Envelope {
	if err == nil {
		return Envelope{Success: true, Data: data}
	}

	if svcErr, ok := AsError(err); ok {
		return Envelope{Success: false, Error: svcErr}
	}

	return Envelope{Success: false, Error: NewError(CodeInternal, "something went wrong")}
}
