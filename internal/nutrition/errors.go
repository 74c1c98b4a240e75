package nutrition

import "fmt"

// ConfigurationError means the Gemini credential is absent. It is fatal to
// plan computation but not to the app: the CLI degrades to review mode and
// shows a persistent banner.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}

// ComputationError wraps any transport, empty-response, or schema failure
// from the Gemini call. It is recoverable: the pet surfaces it with a manual
// retry action.
type ComputationError struct {
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("failed to calculate nutrition plan: %v", e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}
