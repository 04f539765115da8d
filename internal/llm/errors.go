package llm

import (
	"errors"
	"fmt"
)

// Reason classifies why a gateway call failed. The presentation layer maps
// any non-nil failure to the fixed per-operation fallback text; the reason
// exists so classification stays testable away from the UI strings.
type Reason string

const (
	ReasonNoCredential Reason = "no_credential"
	ReasonTransport    Reason = "transport"
	ReasonStatus       Reason = "status"
	ReasonDecode       Reason = "decode"
	ReasonEmpty        Reason = "empty"
	ReasonBusy         Reason = "busy"
)

// CallError is the failure variant of every gateway operation.
type CallError struct {
	Reason Reason
	Err    error
}

func (e *CallError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("llm: %s", e.Reason)
	}
	return fmt.Sprintf("llm: %s: %v", e.Reason, e.Err)
}

func (e *CallError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ReasonOf extracts the failure reason from err, or "" when err is not a
// gateway failure.
func ReasonOf(err error) Reason {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Reason
	}
	return ""
}

func callError(reason Reason, err error) *CallError {
	return &CallError{Reason: reason, Err: err}
}
