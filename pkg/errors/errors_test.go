package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownElement, "unknown element tag: %s", "blob")

	if err.Code != ErrCodeUnknownElement {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeUnknownElement)
	}
	if err.Message != "unknown element tag: blob" {
		t.Errorf("Message = %s", err.Message)
	}
	if !strings.Contains(err.Error(), "UNKNOWN_ELEMENT") {
		t.Errorf("Error() should contain code, got %s", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("file not found")
	err := Wrap(ErrCodeResourceLoad, cause, "load %s", "logo.png")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause with errors.Is")
	}
	if !strings.Contains(err.Error(), "file not found") {
		t.Errorf("Error() should contain cause, got %s", err.Error())
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeStructural, "text element requires string content")

	if !Is(err, ErrCodeStructural) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeUnknownElement) {
		t.Error("Is should not match a different code")
	}
	if Is(stderrors.New("plain"), ErrCodeStructural) {
		t.Error("Is should not match plain errors")
	}

	// Codes survive wrapping with fmt.Errorf.
	wrapped := fmt.Errorf("render page 2: %w", err)
	if !Is(wrapped, ErrCodeStructural) {
		t.Error("Is should unwrap fmt.Errorf chains")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidColor, "bad token")); got != ErrCodeInvalidColor {
		t.Errorf("GetCode = %s, want %s", got, ErrCodeInvalidColor)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode on plain error = %s, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeUnsupportedTransform, "unknown transform op: skew")
	if got := UserMessage(err); got != "unknown transform op: skew" {
		t.Errorf("UserMessage = %s", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage on plain error = %s", got)
	}
}

func TestAttributeError(t *testing.T) {
	err := NewAttributeError("rect", "width", "a positive number", -5.0)

	msg := err.Error()
	for _, want := range []string{"rect", "width", "positive number", "-5"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}

	// The structured code is visible through the unwrap chain.
	if !Is(err, ErrCodeInvalidAttribute) {
		t.Error("AttributeError should report code INVALID_ATTRIBUTE")
	}

	// Missing attribute has no value context.
	missing := NewAttributeError("text", "font", "a font family name", nil)
	if !strings.Contains(missing.Error(), "attribute missing") {
		t.Errorf("Error() = %q, should mention missing attribute", missing.Error())
	}
}
