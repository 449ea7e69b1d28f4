package errors

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/tudo-aqua/whilestar/internal/ir"
)

// ErrorBuilder provides a fluent interface for creating structured errors
// with suggestions, following the teacher's SemanticErrorBuilder pattern.
type ErrorBuilder struct {
	err CompilerError
}

// NewError starts a fluent error builder at Error level.
func NewError(code, message string, pos ir.Position) *ErrorBuilder {
	return &ErrorBuilder{err: CompilerError{Level: Error, Code: code, Message: message, Position: pos, Length: 1}}
}

// NewWarning starts a fluent error builder at Warning level.
func NewWarning(code, message string, pos ir.Position) *ErrorBuilder {
	return &ErrorBuilder{err: CompilerError{Level: Warning, Code: code, Message: message, Position: pos, Length: 1}}
}

func (b *ErrorBuilder) WithLength(n int) *ErrorBuilder {
	b.err.Length = n
	return b
}

func (b *ErrorBuilder) WithSuggestion(msg string) *ErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: msg})
	return b
}

func (b *ErrorBuilder) WithNote(note string) *ErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

func (b *ErrorBuilder) WithHelp(help string) *ErrorBuilder {
	b.err.HelpText = help
	return b
}

func (b *ErrorBuilder) Build() CompilerError {
	return b.err
}

// UndefinedVariable reports a VarUndefined static fault (spec.md §4.1).
func UndefinedVariable(name string, pos ir.Position) CompilerError {
	return NewError(ErrorUndefinedVariable, fmt.Sprintf("undefined variable '%s'", name), pos).
		WithLength(len(name)).
		WithSuggestion("make sure the variable is declared in the vars: block before use").
		Build()
}

// TypeMismatch reports a type-checker incompatibility (spec.md §4.3).
func TypeMismatch(expected, actual string, pos ir.Position) CompilerError {
	return NewError(ErrorTypeMismatch, fmt.Sprintf("type mismatch: expected %s, found %s", expected, actual), pos).
		WithSuggestion("check operand types against the declared vars: block").
		Build()
}

// PointerDepthMismatch reports an Eq nesting-depth mismatch (spec.md §3).
func PointerDepthMismatch(expectedDepth, actualDepth int, pos ir.Position) CompilerError {
	return NewError(ErrorPointerDepth,
		fmt.Sprintf("pointer dereference depth mismatch: expected %d, found %d", expectedDepth, actualDepth), pos).
		WithNote("Eq requires both operands to have the same pointer nesting depth").
		Build()
}

// DuplicateDeclaration reports a variable declared twice in one scope.
func DuplicateDeclaration(name string, pos ir.Position) CompilerError {
	return NewError(ErrorDuplicateDeclaration, fmt.Sprintf("duplicate declaration: %s", name), pos).
		WithSuggestion(fmt.Sprintf("rename one of the declarations of '%s'", name)).
		Build()
}

// NotAnLvalue reports an assignment/swap/extern target that isn't a plain
// variable, matching the WPC proof system's restriction (spec.md §4.4).
func NotAnLvalue(construct string, pos ir.Position) CompilerError {
	return NewError(ErrorNotAnLvalue, fmt.Sprintf("%s requires a plain variable on its left-hand side", construct), pos).
		WithHelp("the WPC proof system only supports substitution through a named variable").
		Build()
}

// WPCUnsupportedLHS reports an assignment, swap, or extern target the proof
// system cannot substitute through because it is not a plain variable
// (spec.md §4.4: "unsupported otherwise").
func WPCUnsupportedLHS(construct string, pos ir.Position) CompilerError {
	return NewError(ErrorWPCUnsupportedLHS,
		fmt.Sprintf("wpc cannot backward-propagate through %s: left-hand side is not a plain variable", construct), pos).
		WithHelp("the proof system only supports substitution through a named variable").
		Build()
}

// WPCVarAddressInPostcondition reports VarAddress appearing where the WPC
// transformer cannot substitute through it (spec.md §4.4): "a fatal
// VC-generation error, not a runtime failure".
func WPCVarAddressInPostcondition(pos ir.Position) CompilerError {
	return NewError(ErrorWPCVarAddressInPost, "VarAddress is not supported by the proof system in this position", pos).
		WithNote("wpc cannot substitute through an address-of expression").
		Build()
}

// SuggestFlagName normalizes a CLI flag typo into the closest known long
// flag name, using strcase the way the teacher normalizes its own
// import-typo suggestions.
func SuggestFlagName(typo string, known []string) (string, bool) {
	target := strcase.ToSnake(strings.TrimLeft(typo, "-"))
	for _, k := range known {
		if strcase.ToSnake(k) == target {
			return k, true
		}
	}
	return "", false
}
