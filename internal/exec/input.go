package exec

import (
	"fmt"
	"math/big"
	"math/rand"
)

// InputSource supplies concrete values for extern/havoc statements. Per
// spec.md §9, reproducibility is not required for the random source, but
// the test suite must be able to supply an explicit, deterministic source.
type InputSource interface {
	// Next returns a value for an extern draw in [lower, upper] inclusive.
	Next(lower, upper *big.Int) (*big.Int, error)
}

// RandomInput draws uniformly from [lower, upper] using the supplied
// random source. Not reproducible unless the caller seeds rnd themselves.
type RandomInput struct {
	Rnd *rand.Rand
}

func NewRandomInput(seed int64) *RandomInput {
	return &RandomInput{Rnd: rand.New(rand.NewSource(seed))}
}

func (r *RandomInput) Next(lower, upper *big.Int) (*big.Int, error) {
	if lower.Cmp(upper) > 0 {
		return nil, fmt.Errorf("empty extern range [%s..%s]", lower, upper)
	}
	span := new(big.Int).Sub(upper, lower)
	span.Add(span, big.NewInt(1))
	if !span.IsInt64() {
		return nil, fmt.Errorf("extern range too large to sample uniformly")
	}
	offset := r.Rnd.Int63n(span.Int64())
	return new(big.Int).Add(lower, big.NewInt(offset)), nil
}

// FixedInput replays a deterministic queue of values supplied up front —
// the explicit input source seed scenarios and tests rely on for
// reproducible concrete runs.
type FixedInput struct {
	values []*big.Int
	pos    int
}

func NewFixedInput(values ...*big.Int) *FixedInput {
	return &FixedInput{values: values}
}

func NewFixedInputInts(values ...int64) *FixedInput {
	vs := make([]*big.Int, len(values))
	for i, v := range values {
		vs[i] = big.NewInt(v)
	}
	return &FixedInput{values: vs}
}

func (f *FixedInput) Next(lower, upper *big.Int) (*big.Int, error) {
	if f.pos >= len(f.values) {
		return nil, fmt.Errorf("input source exhausted")
	}
	v := f.values[f.pos]
	f.pos++
	return v, nil
}
