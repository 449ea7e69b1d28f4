package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tudo-aqua/whilestar/internal/errors"
	"github.com/tudo-aqua/whilestar/internal/ir"
)

func TestUndefinedVariableCarriesCodeAndSuggestion(t *testing.T) {
	err := errors.UndefinedVariable("foo", ir.Position{Line: 3, Column: 5})
	assert.Equal(t, errors.ErrorUndefinedVariable, err.Code)
	assert.Equal(t, len("foo"), err.Length)
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Error(), errors.ErrorUndefinedVariable)
	assert.Contains(t, err.Error(), "foo")
}

func TestTypeMismatchMessageNamesBothTypes(t *testing.T) {
	err := errors.TypeMismatch("int", "bool", ir.Position{})
	assert.Contains(t, err.Message, "int")
	assert.Contains(t, err.Message, "bool")
	assert.Equal(t, errors.ErrorTypeMismatch, err.Code)
}

func TestNotAnLvalueCarriesHelpText(t *testing.T) {
	err := errors.NotAnLvalue("assignment", ir.Position{})
	assert.NotEmpty(t, err.HelpText)
	assert.Contains(t, err.Message, "assignment")
}

func TestErrorBuilderAccumulatesSuggestionsAndNotes(t *testing.T) {
	built := errors.NewWarning("E9999", "something suspicious", ir.Position{Line: 1, Column: 1}).
		WithLength(4).
		WithSuggestion("try this").
		WithSuggestion("or that").
		WithNote("for context").
		WithHelp("see docs").
		Build()

	assert.Equal(t, errors.Warning, built.Level)
	assert.Equal(t, 4, built.Length)
	assert.Equal(t, []string{"for context"}, built.Notes)
	assert.Equal(t, "see docs", built.HelpText)
	assert.Len(t, built.Suggestions, 2)
}

func TestSuggestFlagNameMatchesKnownTypo(t *testing.T) {
	known := []string{"bmc", "kind-bmc", "reachingdefinitions"}
	got, found := errors.SuggestFlagName("kind_bmc", known)
	assert.True(t, found)
	assert.Equal(t, "kind-bmc", got)
}

func TestSuggestFlagNameReportsNoMatch(t *testing.T) {
	_, found := errors.SuggestFlagName("totally-unknown-flag", []string{"bmc", "kind"})
	assert.False(t, found)
}
