package types

import "fmt"

// ClientInputError reports a request the caller can fix: an unsupported
// content type, a missing file field, an oversized upload.
type ClientInputError struct {
	Message string
}

func NewClientInputError(format string, args ...any) *ClientInputError {
	return &ClientInputError{Message: fmt.Sprintf(format, args...)}
}

func (e *ClientInputError) Error() string { return e.Message }

// EngineConfigError reports that the caller asked for an engine that was
// never initialized. Requests hitting this must fail rather than silently
// run a different engine.
type EngineConfigError struct {
	Engine string
}

func (e *EngineConfigError) Error() string {
	return fmt.Sprintf("%s engine requested but not configured", e.Engine)
}

// EngineExecutionError wraps a failure inside rasterization or an OCR
// engine invocation. The underlying engine error text is preserved for the
// response body.
type EngineExecutionError struct {
	Stage string
	Err   error
}

func (e *EngineExecutionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *EngineExecutionError) Unwrap() error { return e.Err }
