// Package errors provides structured error types for wast-encode.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending command tag, the field path inside the
// record, a detail message and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindUnknownAction).
//		Path("action", "type").
//		Tag("register").
//		Detail("cannot encode action").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownCommand("assert_exhaustion", raw)
//	err := errors.ReadFailed(cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
