package advisor

import "fmt"

// OracleError represents a failed call to the text model
type OracleError struct {
	Operation string
	Cause     error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle call failed: %s: %v", e.Operation, e.Cause)
}

func (e *OracleError) Unwrap() error {
	return e.Cause
}

// ParseError represents a model response that could not be turned into a usable result
type ParseError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %s: %v", e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Operation, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}
