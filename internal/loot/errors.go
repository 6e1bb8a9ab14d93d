// Package loot implements the procedural loot generation engine: a weighted
// configuration model of qualities, item types, subtypes, names, attributes
// and affixes, and the generation sessions that roll items against it.
package loot

import "errors"

// Engine errors. Configuration and generation failures are reported
// synchronously and matched with errors.Is; none of them are transient,
// so the engine never retries.
var (
	// ErrInvalidConfig reports a malformed configuration value at setup
	// time: an empty name, a negative weight, or attribute min > max.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyPopulation reports a weighted draw over an empty collection,
	// e.g. generating against a model with no qualities or no item types.
	ErrEmptyPopulation = errors.New("no entries to select from")

	// ErrDegenerateWeights reports a weighted draw where every weight is
	// zero, leaving no entry with a nonzero selection probability.
	ErrDegenerateWeights = errors.New("all selection weights are zero")

	// ErrNoSubtypes reports an item type with no configured subtypes.
	ErrNoSubtypes = errors.New("item type has no subtypes")

	// ErrNoNames reports a type/subtype with no configured name pool.
	ErrNoNames = errors.New("no item names configured")

	// ErrInvalidLevel reports a negative or non-finite generation level.
	ErrInvalidLevel = errors.New("invalid item level")

	// ErrInvalidOptions reports malformed generation options or an
	// override that references an unconfigured entry.
	ErrInvalidOptions = errors.New("invalid generation options")
)
