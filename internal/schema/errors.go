package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the three failure families of schema extraction.
var (
	// ErrParse indicates a declaration that could not be turned into an entity.
	ErrParse = errors.New("modelgen: parse error")
	// ErrUnresolvedReference indicates a link to an entity nobody declared.
	ErrUnresolvedReference = errors.New("modelgen: unresolved reference")
	// ErrValidation indicates a schema constraint violation.
	ErrValidation = errors.New("modelgen: schema validation failed")
)

// ParseErrorKind classifies a ParseError
type ParseErrorKind string

const (
	KindUnknownType         ParseErrorKind = "unknownType"
	KindUnknownAnnotation   ParseErrorKind = "unknownAnnotation"
	KindNestedList          ParseErrorKind = "nestedList"
	KindUnsupportedIndex    ParseErrorKind = "unsupportedIndex"
	KindDuplicatePrimaryKey ParseErrorKind = "duplicatePrimaryKey"
	KindDuplicateProperty   ParseErrorKind = "duplicateProperty"
	KindInvalidName         ParseErrorKind = "invalidName"
)

// ParseError is a field-level failure. It aborts the parse of its entity.
type ParseError struct {
	Kind    ParseErrorKind
	Entity  string
	Field   string
	Token   string
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("parse error")
	if e.Entity != "" {
		b.WriteString(" in entity ")
		b.WriteString(e.Entity)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	fmt.Fprintf(&b, ": %s", e.Kind)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Token != "" {
		fmt.Fprintf(&b, " (%q)", e.Token)
	}
	return b.String()
}

// Is reports whether the target matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// UnresolvedReferenceError is a link whose target entity has no declaration
type UnresolvedReferenceError struct {
	Entity   string
	Property string
	Target   string
}

// Error implements the error interface.
func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference in entity %s property %s: no entity named %q", e.Entity, e.Property, e.Target)
}

// Is reports whether the target matches ErrUnresolvedReference.
func (e *UnresolvedReferenceError) Is(target error) bool {
	return target == ErrUnresolvedReference
}

// ValidationKind classifies a ValidationError
type ValidationKind string

const (
	KindDuplicateEntity     ValidationKind = "duplicateEntity"
	KindEmbeddedPrimaryKey  ValidationKind = "embeddedPrimaryKey"
	KindPrimaryKeyType      ValidationKind = "primaryKeyType"
	KindMultiplePrimaryKeys ValidationKind = "multiplePrimaryKeys"
	KindPrimaryKeyMismatch  ValidationKind = "primaryKeyMismatch"
	KindPrimaryKeyNullable  ValidationKind = "primaryKeyNullable"
	KindNullableLinkElement ValidationKind = "nullableLinkElement"
	KindIllegalIndex        ValidationKind = "unsupportedIndex"
	KindIllegalType         ValidationKind = "illegalType"
)

// ValidationError is a schema constraint violation found by the Builder
type ValidationError struct {
	Kind     ValidationKind
	Entity   string
	Property string
	Message  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "validation error (%s) in entity %s", e.Kind, e.Entity)
	if e.Property != "" {
		b.WriteString(" property ")
		b.WriteString(e.Property)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Errors is a collected list of failures. The Builder and the pipeline
// report every error they found rather than the first.
type Errors []error

// Error implements the error interface.
func (e Errors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:", len(e))
	for _, err := range e {
		b.WriteString("\n  - ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e Errors) Unwrap() []error {
	return e
}

// errorOrNil returns nil for an empty list so callers can compare with nil
func (e Errors) errorOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func validationf(kind ValidationKind, entity, property, format string, args ...any) *ValidationError {
	return &ValidationError{Kind: kind, Entity: entity, Property: property, Message: fmt.Sprintf(format, args...)}
}
