package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/tudo-aqua/whilestar/internal/ir"
)

// ErrorLevel represents the severity of an error
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// CompilerError represents a structured error with suggestions and context.
// Per spec.md §7, this taxonomy covers static errors: type-check failure
// and WPC-generator refusal.
type CompilerError struct {
	Level       ErrorLevel
	Code        string       // Error code like E1001
	Message     string       // Primary error message
	Position    ir.Position  // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

// Error satisfies the error interface so a CompilerError can be returned
// and wrapped like any other Go error, in addition to being rendered
// through FormatError for the CLI's diagnostic output.
func (e CompilerError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Level, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string      // Description of the suggestion
	Replacement string      // Suggested replacement text (optional)
	Position    ir.Position // Position to apply the fix (optional)
	Length      int         // Length of text to replace (optional)
}

// ErrorReporter renders CompilerErrors against one source file, in the
// caret-pointing style spec.md §7 calls for.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a new error reporter for a file
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{filename: filename, lines: strings.Split(source, "\n")}
}

// levelStyle bundles the accent color a severity renders with; the header,
// the gutter bold/dim split, and the caret marker all key off the same
// table instead of each re-deriving it from a parallel level switch.
var levelStyle = map[ErrorLevel]*color.Color{
	Error:   color.New(color.FgRed, color.Bold),
	Warning: color.New(color.FgYellow, color.Bold),
	Note:    color.New(color.FgBlue, color.Bold),
	Help:    color.New(color.FgGreen, color.Bold),
}

func accentFor(level ErrorLevel) *color.Color {
	if c, ok := levelStyle[level]; ok {
		return c
	}
	return levelStyle[Error]
}

// gutterWidth picks a column width wide enough for every line number this
// report will print (the error line plus one line of context on either
// side), with a floor of 3 columns so single- and double-digit files still
// line up under a three-digit one.
func gutterWidth(centerLine int) int {
	w := len(strconv.Itoa(centerLine + 1))
	if w < 3 {
		w = 3
	}
	return w
}

// FormatError renders err as a multi-line, colorized diagnostic: a header,
// a `-->` location line, up to three lines of source centered on the
// error with a caret marker under it, then suggestions/notes/help.
func (er *ErrorReporter) FormatError(err CompilerError) string {
	dim := color.New(color.Faint).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	accent := accentFor(err.Level)

	gutter := gutterWidth(err.Position.Line)
	pad := strings.Repeat(" ", gutter)

	var out []string
	out = append(out, er.header(accent, err), "")
	out = append(out, fmt.Sprintf("%s%s %s:%d:%d", pad, dim("-->"), er.filename, err.Position.Line, err.Position.Column))
	out = append(out, pad+" "+dim("│"))
	out = append(out, er.sourceWindow(err, gutter, bold, dim)...)

	if len(err.Suggestions) > 0 {
		out = append(out, pad+" "+dim("│"))
		out = append(out, er.renderSuggestions(err.Suggestions, pad)...)
	}
	for _, note := range err.Notes {
		out = append(out, er.annotate(pad, dim, color.New(color.FgBlue), "note", note))
	}
	if err.HelpText != "" {
		out = append(out, er.annotate(pad, dim, color.New(color.FgGreen), "help", err.HelpText))
	}
	out = append(out, "")
	return strings.Join(out, "\n") + "\n"
}

func (er *ErrorReporter) header(accent *color.Color, err CompilerError) string {
	if err.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", accent.Sprint(string(err.Level)), err.Code, err.Message)
	}
	return fmt.Sprintf("%s: %s", accent.Sprint(string(err.Level)), err.Message)
}

// gutteredLine renders one numbered source line against the shared gutter
// width; numberColor styles the line number for the offending line and leaves dim
// rendering for context lines above/below it.
func (er *ErrorReporter) gutteredLine(n int, content string, gutter int, numberColor func(...interface{}) string, dim func(...interface{}) string) string {
	return fmt.Sprintf("%s %s %s", numberColor(fmt.Sprintf("%*d", gutter, n)), dim("│"), content)
}

// sourceWindow returns the [errLine-1, errLine, errLine+1] window (clipped
// to the file's bounds) with the caret marker inserted after the error
// line, one entry per output line.
func (er *ErrorReporter) sourceWindow(err CompilerError, gutter int, bold, dim func(...interface{}) string) []string {
	var lines []string
	if err.Position.Line > 1 && err.Position.Line-1 <= len(er.lines) {
		lines = append(lines, er.gutteredLine(err.Position.Line-1, er.lines[err.Position.Line-2], gutter, dim, dim))
	}
	if err.Position.Line < 1 || err.Position.Line > len(er.lines) {
		return lines
	}
	lines = append(lines, er.gutteredLine(err.Position.Line, er.lines[err.Position.Line-1], gutter, bold, dim))
	pad := strings.Repeat(" ", gutter)
	lines = append(lines, fmt.Sprintf("%s %s %s", pad, dim("│"), er.marker(err.Position.Column, err.Length, err.Level)))
	if err.Position.Line < len(er.lines) {
		lines = append(lines, er.gutteredLine(err.Position.Line+1, er.lines[err.Position.Line], gutter, dim, dim))
	}
	return lines
}

// marker draws the caret underline starting at column, colored by level.
func (er *ErrorReporter) marker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	lead := strings.Repeat(" ", maxInt(0, column-1))
	return lead + accentFor(level).Sprint(strings.Repeat("^", length))
}

// renderSuggestions lists each fix under a "help: try ..." header, with
// the first suggestion carrying the "help try" prefix and any replacement
// text reflowed so every line it spans still sits under the gutter bar.
func (er *ErrorReporter) renderSuggestions(suggestions []Suggestion, pad string) []string {
	cyan := color.New(color.FgCyan)
	var out []string
	for i, s := range suggestions {
		if i == 0 {
			out = append(out, fmt.Sprintf("%s %s %s: %s", pad, cyan.Sprint("help"), cyan.Sprint("try"), s.Message))
		} else {
			out = append(out, fmt.Sprintf("%s %s %s", pad, cyan.Sprint("    "), s.Message))
		}
		if s.Replacement == "" {
			continue
		}
		gutterBar := fmt.Sprintf("\n%s %s ", pad, color.New(color.Faint).Sprint("│"))
		out = append(out, fmt.Sprintf("%s %s", pad, color.New(color.Faint).Sprint("│")))
		out = append(out, fmt.Sprintf("%s %s %s", pad, cyan.Sprint("│"), cyan.Sprint(strings.ReplaceAll(s.Replacement, "\n", gutterBar))))
	}
	return out
}

// annotate renders a single "note:"/"help:" trailer line under the gutter
// bar, in tag's color.
func (er *ErrorReporter) annotate(pad string, dim func(...interface{}) string, tagColor *color.Color, tag, message string) string {
	return fmt.Sprintf("%s %s %s %s", pad, dim("│"), tagColor.Sprint(tag+":"), message)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
