// Package ioout implements the print/println output collaborator the
// executor's exec.Output interface is satisfied by: a small buffered
// sink that the CLI can either stream straight to stdout or capture for
// the --verbose / benchmark-harness report (SPEC_FULL.md's ambient
// output-handling section, grounded on the teacher's fatih/color-based
// CLI banners in cmd/kanso-cli).
package ioout

import (
	"fmt"
	"io"
	"strings"
)

// Buffer accumulates every printed line in order, in addition to (when
// Mirror is set) writing it straight through — the same "accumulate and
// optionally mirror" shape the teacher's LSP diagnostics collector uses
// for publishing while still returning the full batch to its caller.
type Buffer struct {
	Mirror io.Writer // optional; nil disables passthrough

	lines []string
}

// NewBuffer returns a Buffer that also mirrors every line to w (pass nil
// to only accumulate).
func NewBuffer(w io.Writer) *Buffer {
	return &Buffer{Mirror: w}
}

// Print satisfies exec.Output: it records s verbatim as one line.
func (b *Buffer) Print(s string) {
	b.lines = append(b.lines, s)
	if b.Mirror != nil {
		fmt.Fprintln(b.Mirror, s)
	}
}

// Lines returns every printed line, in order.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len reports how many lines have been printed.
func (b *Buffer) Len() int { return len(b.lines) }

// String joins every printed line, newline-separated, for a single-shot
// dump (e.g. into a benchmark report row).
func (b *Buffer) String() string {
	return strings.Join(b.lines, "\n")
}

// Reset discards every recorded line without touching Mirror.
func (b *Buffer) Reset() {
	b.lines = nil
}
