package normerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/feeds/alienvault.json",
			Format:  "json",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "json parse error in /feeds/alienvault.json at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with offset only", func(t *testing.T) {
		err := &ParseError{Offset: 17}
		if err.Error() != "parse error at offset 17" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrParse", func(t *testing.T) {
		err := fmt.Errorf("codec: %w", &ParseError{Message: "bad"})
		if !errors.Is(err, ErrParse) {
			t.Error("wrapped ParseError should match ErrParse")
		}
		if errors.Is(err, ErrConfig) {
			t.Error("ParseError should not match ErrConfig")
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{
		ResourceType: "nesting_depth",
		Limit:        100,
		Actual:       101,
		Message:      "document too deep",
	}

	if got := err.Error(); got != "resource limit exceeded: nesting_depth (limit: 100, actual: 101): document too deep" {
		t.Errorf("unexpected error message: %s", got)
	}
	if err.Unwrap() != nil {
		t.Error("Unwrap should return nil")
	}
	if !errors.Is(err, ErrResourceLimit) {
		t.Error("should match ErrResourceLimit")
	}

	var target *ResourceLimitError
	if !errors.As(fmt.Errorf("wrapped: %w", err), &target) || target.Limit != 100 {
		t.Error("errors.As should extract ResourceLimitError")
	}
}

func TestConfigError(t *testing.T) {
	cause := errors.New("unknown step")
	err := &ConfigError{Option: "steps", Value: "sort", Message: "invalid step", Cause: cause}

	if got := err.Error(); got != "configuration error for steps (value: sort): invalid step: unknown step" {
		t.Errorf("unexpected error message: %s", got)
	}
	if !errors.Is(err, ErrConfig) {
		t.Error("should match ErrConfig")
	}
	if !errors.Is(err, cause) {
		t.Error("should unwrap to cause")
	}
}

func TestMergeError(t *testing.T) {
	t.Run("different kinds", func(t *testing.T) {
		err := &MergeError{LeftKind: "object", RightKind: "string"}
		if got := err.Error(); got != "shape mismatch: cannot merge object with string" {
			t.Errorf("unexpected error message: %s", got)
		}
	})

	t.Run("different keys", func(t *testing.T) {
		err := &MergeError{
			LeftKind:  "object",
			RightKind: "object",
			LeftKeys:  []string{"k1", "k2"},
			RightKeys: []string{"k2", "k1"},
		}
		if got := err.Error(); got != "shape mismatch: keys [k1, k2] differ from [k2, k1]" {
			t.Errorf("unexpected error message: %s", got)
		}
		if !errors.Is(err, ErrShapeMismatch) {
			t.Error("should match ErrShapeMismatch")
		}
	})
}
