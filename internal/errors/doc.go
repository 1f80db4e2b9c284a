// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// progress-tree misuse, etc.) and for carrying the offending context.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Typed errors match their sentinel through an Is method, so callers can use
// errors.Is(err, ErrDisposed) and still reach the details with errors.As.
package apperrors
