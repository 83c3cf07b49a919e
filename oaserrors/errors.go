package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates the document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrUnsupportedDialect indicates the document is not OpenAPI 3.x.
	ErrUnsupportedDialect = errors.New("unsupported dialect")

	// ErrValidation indicates a specification validation failure.
	ErrValidation = errors.New("validation error")

	// ErrGeneration indicates a snippet renderer failed.
	ErrGeneration = errors.New("generation error")

	// ErrSplice indicates an internal-consistency failure while splicing.
	ErrSplice = errors.New("splice error")

	// ErrWrite indicates the output could not be written.
	ErrWrite = errors.New("write error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode an OpenAPI document.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
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

// DialectError reports a document whose dialect cannot be annotated.
// Only OpenAPI 3.x documents are supported; Swagger 2.0 is rejected before
// any generation work begins.
type DialectError struct {
	// Path is the file path or source identifier
	Path string
	// Dialect is the detected dialect ("swagger" or "openapi")
	Dialect string
	// Version is the declared version string (e.g., "2.0")
	Version string
}

// Error returns a human-readable error message.
func (e *DialectError) Error() string {
	msg := "unsupported dialect"
	if e.Dialect != "" {
		msg += ": " + e.Dialect
		if e.Version != "" {
			msg += " " + e.Version
		}
	}
	if e.Path != "" {
		msg += " in " + e.Path
	}
	return msg + " (OpenAPI 3.0 or later is required)"
}

// Is reports whether target matches this error type.
func (e *DialectError) Is(target error) bool {
	return target == ErrUnsupportedDialect
}

// ValidationError represents an OpenAPI specification violation.
type ValidationError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the validation failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Path != "" {
		msg += " in " + e.Path
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
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// GenerationError reports a renderer failure for a single operation and language.
// A renderer that merely declines (returns no source) does not produce an error.
type GenerationError struct {
	// Path is the operation's path template (e.g., "/pets/{id}")
	Path string
	// Method is the lower-case HTTP method
	Method string
	// Language is the requested language target
	Language string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *GenerationError) Error() string {
	msg := "generation error"
	if e.Method != "" || e.Path != "" {
		msg += fmt.Sprintf(" for %s %s", e.Method, e.Path)
	}
	if e.Language != "" {
		msg += fmt.Sprintf(" (%s)", e.Language)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGeneration
}

// SpliceError reports a snippet directory entry that has no matching operation
// in the document being spliced.
type SpliceError struct {
	// Path is the path key from the snippet directory
	Path string
	// Method is the method key from the snippet directory
	Method string
	// MissingPath is true when the path itself is absent, false when only the
	// method is absent from an existing path item
	MissingPath bool
	// SharedWith is set when the operation node is the one an earlier
	// directory path already resolved to, e.g. through a path item $ref
	SharedWith string
}

// Error returns a human-readable error message.
func (e *SpliceError) Error() string {
	if e.SharedWith != "" {
		return fmt.Sprintf("splice error: operation %s %q is the same node as %s %q", e.Method, e.Path, e.Method, e.SharedWith)
	}
	if e.MissingPath {
		return fmt.Sprintf("splice error: path %q not found in document (snippets for %s)", e.Path, e.Method)
	}
	return fmt.Sprintf("splice error: operation %s %q not found in document", e.Method, e.Path)
}

// Is reports whether target matches this error type.
func (e *SpliceError) Is(target error) bool {
	return target == ErrSplice
}

// WriteError reports a failure to serialize or write the output document.
type WriteError struct {
	// Destination is the output path or writer description
	Destination string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *WriteError) Error() string {
	msg := "write error"
	if e.Destination != "" {
		msg += " for " + e.Destination
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
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
