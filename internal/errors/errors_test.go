package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"no cause", New(ErrCodeInvalidInput, "bad item %d", 3), "INVALID_INPUT: bad item 3"},
		{"with cause", Wrap(ErrCodeInvalidFormat, fmt.Errorf("eof"), "parse %s", "a.json"), "INVALID_FORMAT: parse a.json: eof"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAndGetCode(t *testing.T) {
	base := New(ErrCodeDimensionMismatch, "3x2 vs 4x2")
	wrapped := fmt.Errorf("stack: %w", base)

	if !Is(wrapped, ErrCodeDimensionMismatch) {
		t.Error("Is should find the code through fmt wrapping")
	}
	if Is(wrapped, ErrCodeEmptyBounds) {
		t.Error("Is matched the wrong code")
	}
	if got := GetCode(wrapped); got != ErrCodeDimensionMismatch {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeDimensionMismatch)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk gone")
	err := Wrap(ErrCodeFileNotFound, cause, "open x")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the cause")
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeEmptyBounds, "no geometries")); got != "no geometries" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errors.New("raw")); got != "raw" {
		t.Errorf("UserMessage(raw) = %q", got)
	}
	wrapped := Wrap(ErrCodeInvalidInput, Wrap(ErrCodeInvalidFormat, errors.New("eof"), "read a.wkt"), "layer 0")
	if got := UserMessage(wrapped); got != "layer 0: read a.wkt: eof" {
		t.Errorf("UserMessage(wrapped) = %q", got)
	}
}
