package ir

// Node is the common interface satisfied by every IR construct (address,
// arithmetic, boolean, array expressions and statements). Dispatch over the
// closed sums is by type switch rather than a method-per-variant interface,
// matching the "fold over the sum" style spec.md §9 calls out as the
// alternative to one-interface-method-per-variant.
type Node interface {
	NodePos() Position
	isNode()
}
