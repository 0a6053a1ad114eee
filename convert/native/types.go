package native

import (
	"errors"
	"fmt"
)

// Property is a single converted style property. Value is either float64 or
// string.
type Property struct {
	Name  string
	Value any
}

var (
	// ErrUnsupportedProperty is returned for CSS properties without native equivalent.
	ErrUnsupportedProperty = errors.New("unsupported property")
	// ErrUnsupportedUnit is returned for lengths in units the target cannot express.
	ErrUnsupportedUnit = errors.New("unsupported unit")
	// ErrUnsupportedValue is returned for values the property does not accept.
	ErrUnsupportedValue = errors.New("unsupported value")
)

// ConversionError describes a declaration which could not be converted.
type ConversionError struct {
	Property string // CSS property name
	Value    string // raw CSS value
	Err      error  // wraps one of ErrUnsupported* sentinels
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("unable to convert \"%s: %s\": %v", e.Property, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
