package loot

import (
	"fmt"
	"math/rand"
	"sort"
)

// PickWeighted draws one key from the map with probability proportional to
// its weight relative to the sum of all weights. Keys are walked in sorted
// order so a seeded source reproduces the same pick.
//
// Returns ErrEmptyPopulation for an empty map and ErrDegenerateWeights when
// every weight is zero; a zero-weight population is treated as a
// misconfiguration rather than silently falling back to uniform selection.
func PickWeighted(rng *rand.Rand, weights map[string]int) (string, error) {
	if len(weights) == 0 {
		return "", ErrEmptyPopulation
	}

	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return "", fmt.Errorf("%w: %d entries", ErrDegenerateWeights, len(weights))
	}

	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	roll := rng.Intn(total)
	for _, k := range keys {
		roll -= weights[k]
		if roll < 0 {
			return k, nil
		}
	}

	// Unreachable: the roll always lands within the summed weights.
	return keys[len(keys)-1], nil
}

// pickUniform draws one entry from a non-empty slice with equal probability.
func pickUniform[T any](rng *rand.Rand, entries []T) T {
	return entries[rng.Intn(len(entries))]
}
