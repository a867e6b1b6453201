package crosslight

import "fmt"

// ErrorCode represents specific error conditions in the signal controller
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// A required host capability is missing
	ErrCodeInvalidConfiguration
	// Light or mode value outside the defined state space
	ErrCodeInvalidState
	// An approach already exists for the node/segment pair
	ErrCodeApproachExists
	// No approach exists for the node/segment pair
	ErrCodeApproachNotFound
)

// ConfigurationError represents a missing or invalid host capability.
// It is fatal: the approach cannot function without the capability.
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// ApproachError represents errors tied to one node/segment approach
type ApproachError struct {
	Code    ErrorCode
	Node    NodeID
	Segment SegmentID
	Message string
}

func (e *ApproachError) Error() string {
	return fmt.Sprintf("approach error [node %d, segment %d]: %s", e.Node, e.Segment, e.Message)
}

// NewApproachError creates a new approach error with custom values
func NewApproachError(code ErrorCode, node NodeID, segment SegmentID, message string) *ApproachError {
	return &ApproachError{
		Code:    code,
		Node:    node,
		Segment: segment,
		Message: message,
	}
}

// NewApproachExistsError creates an error for a duplicate approach
func NewApproachExistsError(node NodeID, segment SegmentID) *ApproachError {
	return NewApproachError(ErrCodeApproachExists, node, segment, "approach is already under manual control")
}

// NewApproachNotFoundError creates an error for a missing approach
func NewApproachNotFoundError(node NodeID, segment SegmentID) *ApproachError {
	return NewApproachError(ErrCodeApproachNotFound, node, segment, "approach is not under manual control")
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

// IsApproachError checks if an error is an ApproachError
func IsApproachError(err error) bool {
	_, ok := err.(*ApproachError)
	return ok
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	switch e := err.(type) {
	case *ApproachError:
		return e.Code
	case *ConfigurationError:
		return ErrCodeInvalidConfiguration
	default:
		return ErrCodeNone
	}
}
