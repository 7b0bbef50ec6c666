// Package typedboard holds the error taxonomy shared by the schema builder,
// the artifact publisher, the request generator and the transport client.
//
// The four categories mirror the lifecycle of the type-flow pipeline:
//
//	SchemaError    - schema construction, fatal at startup
//	PublishError   - artifact I/O, fatal to the build step
//	GenerateError  - typed-request generation, fatal to the generate step
//	TransportError - wire-level failure at request time
//
// The first three must never be caught and retried: they indicate a broken
// build-time contract.
package typedboard

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for the pipeline stages.
var (
	// ErrInvalidSchema indicates an entity or schema definition error.
	ErrInvalidSchema = errors.New("typedboard: invalid schema")

	// ErrPublish indicates a failure writing the schema artifact.
	ErrPublish = errors.New("typedboard: publish failed")

	// ErrGenerate indicates a failure generating typed request code.
	ErrGenerate = errors.New("typedboard: generation failed")

	// ErrTransport indicates a wire-level failure executing a request.
	ErrTransport = errors.New("typedboard: transport failed")

	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("typedboard: entity not found")
)

// SchemaError represents an entity or schema definition error.
type SchemaError struct {
	Type    string // Public type name
	Field   string // Field name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("typedboard: schema error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, fieldName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// IsSchemaError returns true if the error is a SchemaError.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidSchema)
}

// PublishError represents a failure writing the schema artifact.
type PublishError struct {
	Path  string // Target artifact path
	Cause error
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	return fmt.Sprintf("typedboard: publish %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying error.
func (e *PublishError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for PublishError.
func (e *PublishError) Is(target error) bool {
	return target == ErrPublish
}

// NewPublishError creates a new PublishError.
func NewPublishError(path string, cause error) *PublishError {
	return &PublishError{Path: path, Cause: cause}
}

// IsPublishError returns true if the error is a PublishError.
func IsPublishError(err error) bool {
	if err == nil {
		return false
	}
	var e *PublishError
	return errors.As(err, &e) || errors.Is(err, ErrPublish)
}

// GenerateError represents a typed-request generation failure.
type GenerateError struct {
	Operation string // Operation name (if known)
	Message   string
	Cause     error
}

// Error implements the error interface.
func (e *GenerateError) Error() string {
	var b strings.Builder
	b.WriteString("typedboard: generate")
	if e.Operation != "" {
		b.WriteString(" operation ")
		b.WriteString(e.Operation)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerateError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerateError.
func (e *GenerateError) Is(target error) bool {
	return target == ErrGenerate
}

// NewGenerateError creates a new GenerateError.
func NewGenerateError(operation, message string, cause error) *GenerateError {
	return &GenerateError{Operation: operation, Message: message, Cause: cause}
}

// IsGenerateError returns true if the error is a GenerateError.
func IsGenerateError(err error) bool {
	if err == nil {
		return false
	}
	var e *GenerateError
	return errors.As(err, &e) || errors.Is(err, ErrGenerate)
}

// TransportError represents a wire-level failure: the request never produced
// a usable GraphQL response. Unlike GraphQL execution errors, a transport
// failure is a candidate for retrying by the caller.
type TransportError struct {
	Status int // HTTP status code, 0 if the request never completed
	Cause  error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("typedboard: transport: status %d: %v", e.Status, e.Cause)
	}
	return fmt.Sprintf("typedboard: transport: %v", e.Cause)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for TransportError.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// NewTransportError creates a new TransportError.
func NewTransportError(status int, cause error) *TransportError {
	return &TransportError{Status: status, Cause: cause}
}

// IsTransportError returns true if the error is a TransportError.
func IsTransportError(err error) bool {
	if err == nil {
		return false
	}
	var e *TransportError
	return errors.As(err, &e) || errors.Is(err, ErrTransport)
}

// NotFoundError represents an error when an entity is not found.
type NotFoundError struct {
	label string
	id    any
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("typedboard: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("typedboard: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the entity label.
func (e *NotFoundError) Label() string {
	return e.label
}

// NewNotFoundError returns a new NotFoundError for the given entity type.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// NewNotFoundErrorWithID returns a new NotFoundError with the ID that was searched for.
func NewNotFoundErrorWithID(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}
