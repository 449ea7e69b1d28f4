package errors

// Error codes for the whilestar verification engine.
//
// Error code ranges (generalized from the teacher's E00xx scheme,
// spec.md §4.9):
// E1xxx: static / type-check errors
// E2xxx: WPC generation errors
// E3xxx: runtime (concrete execution) errors
// E4xxx: transition-system encoder errors
// E5xxx: SMT / solver errors

const (
	// Static / type errors
	ErrorUndefinedVariable    = "E1001"
	ErrorTypeMismatch         = "E1002"
	ErrorPointerDepth         = "E1003"
	ErrorDuplicateDeclaration = "E1004"
	ErrorArrayBoundsStatic    = "E1005"
	ErrorNotAnLvalue          = "E1006"

	// WPC generation errors (spec.md §4.4)
	ErrorWPCUnsupportedLHS   = "E2001"
	ErrorWPCVarAddressInPost = "E2002"

	// Runtime (concrete execution) errors (spec.md §4.1/§4.2)
	ErrorVarUndefined    = "E3001"
	ErrorInvalidAddress  = "E3002"
	ErrorDivisionByZero  = "E3003"
	ErrorAssertionFailed = "E3004"
	ErrorHavocOutOfRange = "E3005"
	ErrorExplicitFail    = "E3006"

	// Encoder errors (spec.md §4.5)
	ErrorEncoderMissingInvariant = "E4001"

	// Solver errors (spec.md §4.7/§7)
	ErrorSolverUnavailable = "E5001"
	ErrorSolverUnknown     = "E5002"
)
