package plan

import "math/rand"

// Sample returns a uniform random sample of n items drawn without replacement
// from items, using rng. The same seeded rng and inputs always yield the same
// subset in the same order, which keeps test and demo batches reproducible.
//
// When n is non-positive or at least len(items), the full population is
// returned in original order.
func Sample[T any](items []T, n int, rng *rand.Rand) []T {
	if n <= 0 || n >= len(items) {
		return items
	}
	out := make([]T, 0, n)
	for _, idx := range rng.Perm(len(items))[:n] {
		out = append(out, items[idx])
	}
	return out
}
