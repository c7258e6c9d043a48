package metadata

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/vvka-141/jcagen/pkg/jcagen"
)

// Parse error kinds. A *ParseError unwraps to exactly one of these and to
// jcagen.ErrInvalidMetadata, so callers can test with errors.Is.
var (
	ErrUnexpectedElement   = errors.New("unexpected element")
	ErrUnexpectedEndTag    = errors.New("unexpected end tag")
	ErrUnexpectedAttribute = errors.New("unexpected attribute")
	ErrUnexpectedText      = errors.New("unexpected text")
	ErrUnexpectedEOF       = errors.New("unexpected end of document")
	ErrMalformedXML        = errors.New("malformed XML")
	ErrInvalidValue        = errors.New("invalid value")
	ErrMissingRequired     = errors.New("missing required value")
	ErrMultiplePools       = errors.New("multiple pools")
)

// Validation error kinds raised by the New* constructors.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNegativeValue = errors.New("negative value")
	ErrInconsistent  = errors.New("inconsistent configuration")
)

// ParseError describes a descriptor that could not be read. It carries the
// file path and position reported by the XML decoder plus an optional hint.
type ParseError struct {
	Kind     error  // One of the Err* parse kinds
	FilePath string // Path of the document, may be empty for in-memory input
	Line     int    // Line number (0 if unknown)
	Column   int    // Column number (0 if unknown)
	Element  string // Local name of the element being read, if known
	Message  string // Primary error message
	Hint     string // Actionable suggestion for fixing
}

// Error implements the error interface with rich formatting.
func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error in %s: %s", e.location(), e.Message)
	if e.Element != "" {
		msg = fmt.Sprintf("parse error in %s [element: %s]: %s", e.location(), e.Element, e.Message)
	}
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

func (e *ParseError) location() string {
	path := e.FilePath
	if path == "" {
		path = "<input>"
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("%s (line %d, col %d)", path, e.Line, e.Column)
	case e.Line > 0:
		return fmt.Sprintf("%s (line %d)", path, e.Line)
	}
	return path
}

// Unwrap exposes the kind and the generic metadata sentinel.
func (e *ParseError) Unwrap() []error {
	if e.Kind == nil {
		return []error{jcagen.ErrInvalidMetadata}
	}
	return []error{e.Kind, jcagen.ErrInvalidMetadata}
}

// ValidateError is returned by the New* constructors when an object would
// violate one of its invariants. Invalid objects are never returned.
type ValidateError struct {
	Kind     error  // ErrNegativeValue, ErrInconsistent, ErrMissingRequired, ErrMultiplePools or ErrInvalidValue
	Type     string // Element the object represents, e.g. "pool"
	Field    string // Offending field, e.g. "max-pool-size"
	Message  string
	FilePath string // Filled in by the parser
	Line     int    // Filled in by the parser
}

func (e *ValidateError) Error() string {
	var b strings.Builder
	b.WriteString("validation error")
	if e.FilePath != "" {
		b.WriteString(" in ")
		b.WriteString(e.FilePath)
		if e.Line > 0 {
			fmt.Fprintf(&b, " (line %d)", e.Line)
		}
	}
	if e.Type != "" {
		fmt.Fprintf(&b, " [%s", e.Type)
		if e.Field != "" {
			fmt.Fprintf(&b, ".%s", e.Field)
		}
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

// Unwrap exposes the kind, ErrValidation and the generic metadata sentinel.
func (e *ValidateError) Unwrap() []error {
	errs := []error{ErrValidation, jcagen.ErrInvalidMetadata}
	if e.Kind != nil {
		errs = append([]error{e.Kind}, errs...)
	}
	return errs
}

func validationErr(kind error, typ, field, format string, args ...interface{}) *ValidateError {
	return &ValidateError{
		Kind:    kind,
		Type:    typ,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// wrapXMLError converts decoder errors into ParseErrors with line numbers.
func wrapXMLError(err error, filePath string) error {
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		if syntaxErr.Msg == "unexpected EOF" {
			return &ParseError{
				Kind:     ErrUnexpectedEOF,
				FilePath: filePath,
				Line:     syntaxErr.Line,
				Message:  "unexpected end of document",
				Hint:     "The document ends before all elements are closed.",
			}
		}
		return &ParseError{
			Kind:     ErrMalformedXML,
			FilePath: filePath,
			Line:     syntaxErr.Line,
			Message:  syntaxErr.Msg,
			Hint:     "Check that all XML tags are properly closed and attributes are quoted.",
		}
	}
	return &ParseError{
		Kind:     ErrMalformedXML,
		FilePath: filePath,
		Message:  err.Error(),
	}
}
