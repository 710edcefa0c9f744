// Package errors provides custom error types for the regionmap system.
// These errors enable programmatic error checking and better messages
// when atlas synthesis aborts.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Aliases for the standard library functions, so callers need one import.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the regionmap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrExhausted indicates that a fixed-size fallback list ran out
	ErrExhausted = errors.New("exhausted")

	// ErrCollision indicates that two regions share an identity
	ErrCollision = errors.New("collision")

	// ErrChecksum indicates that a downloaded file failed verification
	ErrChecksum = errors.New("checksum mismatch")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ShapeError reports input that does not match the fixed structure the
// dataset is known to have: a missing column, a wrong segment count, an
// ancestry index nested too deep.
type ShapeError struct {
	Source  string // "hierarchy", "annotation", ...
	Line    int    // 1-based source line, 0 when not applicable
	Field   string
	Message string
}

// Error implements the error interface
func (e *ShapeError) Error() string {
	var b strings.Builder
	b.WriteString("unexpected ")
	b.WriteString(e.Source)
	b.WriteString(" shape")
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %s)", e.Field)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Is implements errors.Is support
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewShapeError creates a new ShapeError
func NewShapeError(source string, line int, field, message string) *ShapeError {
	return &ShapeError{Source: source, Line: line, Field: field, Message: message}
}

// ExhaustionError signals that a fixed-size list (colour palette, filler
// acronyms, synthetic id band) is too short for the current dataset.
type ExhaustionError struct {
	Resource string // "palette", "filler acronyms", "depth 2 id band"
	Capacity int
	Needed   int
}

// Error implements the error interface
func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("%s exhausted: capacity %d, needed at least %d", e.Resource, e.Capacity, e.Needed)
}

// Is implements errors.Is support
func (e *ExhaustionError) Is(target error) bool {
	return target == ErrExhausted
}

// NewExhaustionError creates a new ExhaustionError
func NewExhaustionError(resource string, capacity, needed int) *ExhaustionError {
	return &ExhaustionError{Resource: resource, Capacity: capacity, Needed: needed}
}

// CollisionError reports regions that ended up sharing a value that must
// be unique across the output set.
type CollisionError struct {
	Field  string   // "id" or "acronym"
	Value  string   // the shared value
	Owners []string // names of the regions that share it
}

// Error implements the error interface
func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s %s shared by regions: %s", e.Field, e.Value, strings.Join(e.Owners, ", "))
}

// Is implements errors.Is support
func (e *CollisionError) Is(target error) bool {
	return target == ErrCollision
}

// NewCollisionError creates a new CollisionError
func NewCollisionError(field, value string, owners []string) *CollisionError {
	return &CollisionError{Field: field, Value: value, Owners: owners}
}

// AncestryError reports a region whose parent cannot be resolved.
type AncestryError struct {
	Region  string
	Index   string
	Message string
}

// Error implements the error interface
func (e *AncestryError) Error() string {
	return fmt.Sprintf("cannot resolve ancestry of %q (index %s): %s", e.Region, e.Index, e.Message)
}

// Is implements errors.Is support
func (e *AncestryError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewAncestryError creates a new AncestryError
func NewAncestryError(region, index, message string) *AncestryError {
	return &AncestryError{Region: region, Index: index, Message: message}
}

// ChecksumError represents a downloaded file whose hash does not match.
type ChecksumError struct {
	Path     string
	Expected string
	Actual   string
}

// Error implements the error interface
func (e *ChecksumError) Error() string {
	return fmt.Sprintf("sha256 of %s is %s, expected %s", e.Path, e.Actual, e.Expected)
}

// Is implements errors.Is support
func (e *ChecksumError) Is(target error) bool {
	return target == ErrChecksum
}

// DownloadError represents a failed HTTP retrieval.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download of %s failed (status %d)", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("download of %s failed: %v", e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "csv", "nrrd", "yaml", ...
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error at line %d: %s", e.Format, e.Line, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidInput checks if an error was caused by malformed input
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsShapeError checks if an error is an input-shape error
func IsShapeError(err error) bool {
	var shape *ShapeError
	return errors.As(err, &shape)
}

// IsExhausted checks if an error is an exhaustion error
func IsExhausted(err error) bool {
	return errors.Is(err, ErrExhausted)
}

// IsCollision checks if an error is an identity collision
func IsCollision(err error) bool {
	return errors.Is(err, ErrCollision)
}

// IsChecksum checks if an error is a checksum mismatch
func IsChecksum(err error) bool {
	return errors.Is(err, ErrChecksum)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Message: err.Error(), Err: err}
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
