package exec

import (
	"math/big"

	"github.com/tudo-aqua/whilestar/internal/ir"
	"github.com/tudo-aqua/whilestar/internal/errors"
)

// Transition bundles one small-step execution record: the source
// configuration, any output produced, any input consumed, the destination
// configuration, the semantic rule that produced it, and the contributing
// path constraint (spec.md §3 "Execution tree").
type Transition struct {
	Source         Configuration
	Output         *string
	ConsumedInput  *big.Int
	Destination    Configuration
	Rule           string
	PathConstraint ir.Bool
	// Fault is set when Destination.ErrorFlag is true, carrying the
	// runtime-error taxonomy (spec.md §7) the execution tree retains at
	// the failing node.
	Fault *errors.RuntimeError
}
