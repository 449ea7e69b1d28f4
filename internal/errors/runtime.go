package errors

import (
	"fmt"

	"github.com/tudo-aqua/whilestar/internal/ir"
)

// RuntimeErrorKind enumerates concrete-execution faults (spec.md §7).
type RuntimeErrorKind string

const (
	RuntimeVarUndefined    RuntimeErrorKind = "VarUndefined"
	RuntimeInvalidAddress  RuntimeErrorKind = "InvalidAddress"
	RuntimeDivisionByZero  RuntimeErrorKind = "DivisionByZero"
	RuntimeAssertionFailed RuntimeErrorKind = "AssertionViolation"
	RuntimeHavocOutOfRange RuntimeErrorKind = "HavocOutOfRange"
	RuntimeExplicitFail    RuntimeErrorKind = "Fail"
)

// RuntimeError terminates the current execution path (spec.md §7); it is a
// distinct axis from CompilerError (static) and Result (verification).
type RuntimeError struct {
	Kind     RuntimeErrorKind
	Message  string
	Position ir.Position
	Cause    error
}

func (e *RuntimeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at %s: %s (%v)", e.Kind, e.Position, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Position, e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Cause }

// Code maps a RuntimeErrorKind to its E3xxx code.
func (k RuntimeErrorKind) Code() string {
	switch k {
	case RuntimeVarUndefined:
		return ErrorVarUndefined
	case RuntimeInvalidAddress:
		return ErrorInvalidAddress
	case RuntimeDivisionByZero:
		return ErrorDivisionByZero
	case RuntimeAssertionFailed:
		return ErrorAssertionFailed
	case RuntimeHavocOutOfRange:
		return ErrorHavocOutOfRange
	case RuntimeExplicitFail:
		return ErrorExplicitFail
	default:
		return ""
	}
}

// AsCompilerError renders a RuntimeError through the same diagnostic
// formatting used for static errors, so the CLI can print both uniformly.
func (e *RuntimeError) AsCompilerError() CompilerError {
	return NewError(e.Kind.Code(), e.Message, e.Position).Build()
}
