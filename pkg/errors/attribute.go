package errors

import "fmt"

// AttributeError describes a missing or invalid element attribute.
// It carries the element kind and attribute name so callers can report
// exactly which part of the input tree was rejected.
//
// AttributeError unwraps to an *Error with code INVALID_ATTRIBUTE, so
// Is(err, ErrCodeInvalidAttribute) works on the wrapped form too.
type AttributeError struct {
	Element   string // element tag, e.g. "rect"
	Attribute string // attribute name, e.g. "width"
	Expected  string // what was expected, e.g. "a positive number"
	Value     any    // offending value (nil when the attribute was absent)
}

// NewAttributeError creates an AttributeError for a missing or invalid
// attribute on the given element kind.
func NewAttributeError(element, attribute, expected string, value any) *AttributeError {
	return &AttributeError{
		Element:   element,
		Attribute: attribute,
		Expected:  expected,
		Value:     value,
	}
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s attribute %q: expected %s, got %v",
			ErrCodeInvalidAttribute, e.Element, e.Attribute, e.Expected, e.Value)
	}
	return fmt.Sprintf("%s: %s attribute %q: expected %s, attribute missing",
		ErrCodeInvalidAttribute, e.Element, e.Attribute, e.Expected)
}

// Unwrap exposes the structured code so Is/GetCode see INVALID_ATTRIBUTE.
func (e *AttributeError) Unwrap() error {
	return &Error{Code: ErrCodeInvalidAttribute, Message: e.Error()}
}
