// Package errors provides structured error types for the apigen generators.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the offending node as a dotted path, the C type involved,
// and an optional cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindFailValue).
//		Path("gl", "glFinish").
//		Type("void").
//		Detail("fail value given for void function").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.FailValueMismatch(path, "GLenum", "")
//	err := errors.MethodCollision(path, "IUnknown")
//
// Validation collects every problem before failing; Combine and Errors
// aggregate and split such results. All errors support errors.Is/As.
package errors
