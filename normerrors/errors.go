package normerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrShapeMismatch indicates two values could not be merged because they
	// are not objects with the same key sequence.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// ParseError represents a failure to decode a document into a value tree.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Format is the source format being decoded ("json" or "yaml")
	Format string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Offset is the byte offset where the error occurred (0 if unknown)
	Offset int64
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Format != "" {
		msg = e.Format + " " + msg
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	switch {
	case e.Line > 0:
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	case e.Offset > 0:
		msg += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ResourceLimitError represents a resource exhaustion condition.
// This occurs when an input exceeds a configured limit.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "nesting_depth", "input_size"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Unwrap returns nil as ResourceLimitError has no underlying cause.
func (e *ResourceLimitError) Unwrap() error {
	return nil
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// MergeError reports that two values could not be merged field by field.
type MergeError struct {
	// LeftKind and RightKind are the kinds of the operands ("object", "array", ...)
	LeftKind  string
	RightKind string
	// LeftKeys and RightKeys are the key sequences when both operands are objects
	LeftKeys  []string
	RightKeys []string
}

// Error returns a human-readable error message.
func (e *MergeError) Error() string {
	if e.LeftKind != "object" || e.RightKind != "object" {
		return fmt.Sprintf("shape mismatch: cannot merge %s with %s", e.LeftKind, e.RightKind)
	}
	return fmt.Sprintf("shape mismatch: keys [%s] differ from [%s]",
		strings.Join(e.LeftKeys, ", "), strings.Join(e.RightKeys, ", "))
}

// Is reports whether target matches this error type.
func (e *MergeError) Is(target error) bool {
	return target == ErrShapeMismatch
}
