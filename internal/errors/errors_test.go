package apperrors

import (
	"context"
	"errors"
	"testing"
)

func TestConfigError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		err         error
		expected    string
		checkTypeAs bool
	}{
		{
			name:     "Error returns message",
			err:      ConfigError{Message: "invalid flag value"},
			expected: "invalid flag value",
		},
		{
			name:     "NewConfigError creates formatted error",
			err:      NewConfigError("invalid value %d for flag %s", 42, "--workers"),
			expected: "invalid value 42 for flag --workers",
		},
		{
			name:        "ConfigError type assertion",
			err:         NewConfigError("test error"),
			expected:    "test error",
			checkTypeAs: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.err.Error())
			}
			if tt.checkTypeAs {
				var configErr ConfigError
				if !errors.As(tt.err, &configErr) {
					t.Error("expected error to be ConfigError type")
				}
			}
		})
	}
}

func TestDisposedError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		operation string
		expected  string
	}{
		{"report", "report", "cannot report: progress node disposed"},
		{"fork", "fork", "cannot fork: progress node disposed"},
		{"subscribe", "subscribe", "cannot subscribe: progress node disposed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = DisposedError{Operation: tt.operation}
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
			if !errors.Is(err, ErrDisposed) {
				t.Error("errors.Is should match ErrDisposed")
			}
			if errors.Is(err, ErrInvalidState) {
				t.Error("errors.Is should not match ErrInvalidState")
			}
			var disposedErr DisposedError
			if !errors.As(err, &disposedErr) || disposedErr.Operation != tt.operation {
				t.Errorf("errors.As should recover operation %q", tt.operation)
			}
		})
	}
}

func TestStateError(t *testing.T) {
	t.Parallel()
	err := StateError{Operation: "fork", Mode: "reporting"}

	expected := "cannot fork a node in reporting mode: invalid progress node state"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	if !errors.Is(err, ErrInvalidState) {
		t.Error("errors.Is should match ErrInvalidState")
	}
	if errors.Is(err, ErrDisposed) {
		t.Error("errors.Is should not match ErrDisposed")
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      ValidationError
		expected string
	}{
		{
			name:     "Error returns formatted message",
			err:      ValidationError{Field: "scale", Message: "must be non-negative"},
			expected: `validation error for "scale": must be non-negative`,
		},
		{
			name:     "Error with different field",
			err:      ValidationError{Field: "width", Message: "must be within [0, 1]"},
			expected: `validation error for "width": must be within [0, 1]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var err error = tt.err
			if err.Error() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, err.Error())
			}
			if !errors.Is(err, ErrInvalidArgument) {
				t.Error("errors.Is should match ErrInvalidArgument")
			}
			var validationErr ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatal("expected error to be ValidationError type")
			}
			if validationErr.Field != tt.err.Field {
				t.Errorf("expected Field %q, got %q", tt.err.Field, validationErr.Field)
			}
		})
	}
}

func TestSentinelsThroughWrapError(t *testing.T) {
	t.Parallel()

	t.Run("DisposedError wrapped with WrapError", func(t *testing.T) {
		t.Parallel()
		err := WrapError(DisposedError{Operation: "report"}, "worker %d", 3)
		if !errors.Is(err, ErrDisposed) {
			t.Error("errors.Is should find ErrDisposed through WrapError")
		}
	})

	t.Run("ValidationError wrapped with WrapError", func(t *testing.T) {
		t.Parallel()
		inner := ValidationError{Field: "scale", Message: "too small"}
		err := WrapError(inner, "fork failed")

		var validationErr ValidationError
		if !errors.As(err, &validationErr) {
			t.Error("errors.As should find ValidationError through WrapError")
		}
	})
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		original    error
		format      string
		args        []any
		expectedMsg string
		expectNil   bool
		checkIs     error
	}{
		{
			name:        "wraps error with context",
			original:    errors.New("file not found"),
			format:      "failed to write metrics",
			expectedMsg: "failed to write metrics: file not found",
		},
		{
			name:        "preserves error chain",
			original:    context.DeadlineExceeded,
			format:      "scenario timed out",
			expectedMsg: "scenario timed out: context deadline exceeded",
			checkIs:     context.DeadlineExceeded,
		},
		{
			name:      "returns nil for nil error",
			original:  nil,
			format:    "some context",
			expectNil: true,
		},
		{
			name:        "supports format arguments",
			original:    errors.New("broken pipe"),
			format:      "worker %d of %d",
			args:        []any{2, 8},
			expectedMsg: "worker 2 of 8: broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			wrapped := WrapError(tt.original, tt.format, tt.args...)

			if tt.expectNil {
				if wrapped != nil {
					t.Error("WrapError(nil, ...) should return nil")
				}
				return
			}

			if wrapped == nil {
				t.Fatal("wrapped error should not be nil")
			}

			if wrapped.Error() != tt.expectedMsg {
				t.Errorf("expected %q, got %q", tt.expectedMsg, wrapped.Error())
			}

			if tt.checkIs != nil && !errors.Is(wrapped, tt.checkIs) {
				t.Errorf("wrapped error should preserve %v in the chain", tt.checkIs)
			}
		})
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"context.Canceled", context.Canceled, true},
		{"context.DeadlineExceeded", context.DeadlineExceeded, true},
		{"wrapped context.Canceled", WrapError(context.Canceled, "operation canceled"), true},
		{"regular error", errors.New("some error"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := IsContextError(tt.err)
			if result != tt.expected {
				t.Errorf("IsContextError(%v) = %v, expected %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", WrapError(context.DeadlineExceeded, "run"), ExitErrorTimeout},
		{"canceled", context.Canceled, ExitErrorCanceled},
		{"config", NewConfigError("bad flag"), ExitErrorConfig},
		{"invalid argument", ValidationError{Field: "width", Message: "out of range"}, ExitErrorConfig},
		{"disposed", DisposedError{Operation: "report"}, ExitErrorGeneric},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.expected {
				t.Errorf("ExitCode(%v) = %d, expected %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"ExitSuccess":       ExitSuccess,
		"ExitErrorGeneric":  ExitErrorGeneric,
		"ExitErrorTimeout":  ExitErrorTimeout,
		"ExitErrorConfig":   ExitErrorConfig,
		"ExitErrorCanceled": ExitErrorCanceled,
	}

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess should be 0, got %d", ExitSuccess)
	}
	if ExitErrorCanceled != 130 {
		t.Errorf("ExitErrorCanceled should be 130 (SIGINT convention), got %d", ExitErrorCanceled)
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if existing, ok := seen[code]; ok {
			t.Errorf("duplicate exit code %d: %s and %s", code, existing, name)
		}
		seen[code] = name
	}
}
