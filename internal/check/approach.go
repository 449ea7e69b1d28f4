package check

import (
	"context"

	"github.com/tudo-aqua/whilestar/internal/result"
	"github.com/tudo-aqua/whilestar/internal/smt"
	"github.com/tudo-aqua/whilestar/internal/tsys"
)

var (
	_ result.Approach = BMCApproach{}
	_ result.Approach = KInductionApproach{}
	_ result.Approach = KInductionBMCApproach{}
)

// BMCApproach adapts BMC into the result.Approach benchmark-harness
// contract (SPEC_FULL.md §4.13).
type BMCApproach struct {
	Facade *smt.Facade
	System tsys.System
	Bound  int
}

func (a BMCApproach) Name() string { return "bmc" }

func (a BMCApproach) Run(context.Context) result.Result {
	return BMC(a.Facade, a.System, a.Bound)
}

// KInductionApproach adapts KInduction into the result.Approach contract.
type KInductionApproach struct {
	Facade *smt.Facade
	System tsys.System
	KBound int
}

func (a KInductionApproach) Name() string { return "k-induction" }

func (a KInductionApproach) Run(context.Context) result.Result {
	return KInduction(a.Facade, a.System, a.KBound)
}

// KInductionBMCApproach adapts KInductionBMC into the result.Approach
// contract.
type KInductionBMCApproach struct {
	Facade *smt.Facade
	System tsys.System
	KBound int
}

func (a KInductionBMCApproach) Name() string { return "k-induction+bmc" }

func (a KInductionBMCApproach) Run(context.Context) result.Result {
	return KInductionBMC(a.Facade, a.System, a.KBound)
}
