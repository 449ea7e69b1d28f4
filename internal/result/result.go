// Package result defines the verification-result sum type shared by every
// checker and the benchmark harness (spec.md §7, component C11 expanded in
// SPEC_FULL.md §C16).
package result

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// Kind tags which variant of Result is populated.
type Kind string

const (
	KindProof          Kind = "Proof"
	KindCounterexample Kind = "Counterexample"
	KindNoResult       Kind = "NoResult"
	KindCrash          Kind = "Crash"
)

// Result is the distinct verification-result axis spec.md §7 names: never
// thrown, always returned.
type Result struct {
	Kind  Kind
	Model string // populated for Counterexample
	Text  string // populated for NoResult/Crash
}

func Proof() Result                     { return Result{Kind: KindProof} }
func Counterexample(model string) Result { return Result{Kind: KindCounterexample, Model: model} }
func NoResult(text string) Result       { return Result{Kind: KindNoResult, Text: text} }
func Crash(text string) Result          { return Result{Kind: KindCrash, Text: text} }

func (r Result) String() string {
	switch r.Kind {
	case KindCounterexample:
		return fmt.Sprintf("Counterexample(%s)", r.Model)
	case KindNoResult:
		return fmt.Sprintf("NoResult(%s)", r.Text)
	case KindCrash:
		return fmt.Sprintf("Crash(%s)", r.Text)
	default:
		return string(r.Kind)
	}
}

// Classification buckets a Result for reporting/benchmarking purposes.
type Classification string

const (
	ClassSafe      Classification = "safe"
	ClassUnsafe    Classification = "unsafe"
	ClassUnknown   Classification = "unknown"
	ClassFailure   Classification = "failure"
)

func Classify(r Result) Classification {
	switch r.Kind {
	case KindProof:
		return ClassSafe
	case KindCounterexample:
		return ClassUnsafe
	case KindNoResult:
		return ClassUnknown
	default:
		return ClassFailure
	}
}

// BenchRow is one row of the benchmark harness's CSV output (SPEC_FULL.md
// §4.13): approach name, program identifier, the result, wall-clock
// duration in milliseconds, bytes allocated during the run (growth of
// runtime.MemStats.TotalAlloc), and solver-call counters at the time the
// approach finished.
type BenchRow struct {
	Approach    string
	Program     string
	Result      Result
	DurationMS  int64
	MemoryBytes int64
	SolveCalls  int
}

// Approach is the narrow contract an external benchmark harness drives
// (SPEC_FULL.md §4.13): one named verification strategy — WPC proof, BMC,
// k-induction, or k-induction+BMC — run to completion against a single
// program. check.BMCApproach, check.KInductionApproach,
// check.KInductionBMCApproach, and wpc.ProofApproach are its
// implementations; ctx carries cancellation for a harness that imposes a
// per-approach timeout, not anything these checkers consult themselves.
type Approach interface {
	Name() string
	Run(ctx context.Context) Result
}

// RunApproach drives a, timing the call and measuring the bytes allocated
// across it, and assembles program's BenchRow. SolveCalls is left zero: Approach
// exposes no solver of its own, so a harness that wants that counter reads
// it off the *smt.Facade it handed the Approach and sets BenchRow.SolveCalls
// itself.
func RunApproach(ctx context.Context, a Approach, program string) BenchRow {
	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)

	start := time.Now()
	res := a.Run(ctx)
	elapsed := time.Since(start)

	runtime.ReadMemStats(&after)
	var grown int64
	if after.TotalAlloc > before.TotalAlloc {
		grown = int64(after.TotalAlloc - before.TotalAlloc)
	}

	return BenchRow{
		Approach:    a.Name(),
		Program:     program,
		Result:      res,
		DurationMS:  elapsed.Milliseconds(),
		MemoryBytes: grown,
	}
}
