package loot

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/EddieDover/Praeda/internal/items"
)

// requirementMarker tags attributes that track the item's level instead of
// scaling with it, e.g. "level_requirement" on equipment gating.
const requirementMarker = "_requirement"

// rollAttribute resolves one attribute definition against a generation
// level, reporting whether the attribute is present on the item at all.
//
// Presence: required attributes are always included; optional ones are
// included with probability attr.Chance (a fresh draw per item), so a
// chance of 0 means never and 1 means always.
//
// Value: requirement attributes pin to the level. Otherwise the initial
// value grows with level in one of two modes:
//
//	linear:    value = initial + (level-1) * attrScaling * scalingFactor
//	nonlinear: value = initial * (scalingFactor * attrScaling)^(level-1)
//
// The result is always clamped into the attribute's [Min, Max] range.
func rollAttribute(rng *rand.Rand, attr items.Attribute, level float64, linear bool, scalingFactor float64) (items.RolledAttribute, bool, error) {
	if level < 0 || math.IsNaN(level) || math.IsInf(level, 0) {
		return items.RolledAttribute{}, false, fmt.Errorf("%w: %g", ErrInvalidLevel, level)
	}

	if !attr.Required && rng.Float64() >= attr.Chance {
		return items.RolledAttribute{}, false, nil
	}

	var value float64
	switch {
	case strings.Contains(attr.Name, requirementMarker):
		value = level
	case linear:
		value = attr.InitialValue + (level-1)*attr.ScalingFactor*scalingFactor
	default:
		value = attr.InitialValue * math.Pow(scalingFactor*attr.ScalingFactor, level-1)
	}

	// A negative scaling product under a fractional exponent makes Pow
	// return NaN; collapse it to Min so the roll stays in range.
	if math.IsNaN(value) {
		value = attr.Min
	}

	// A zero/zero range means the definition carries no bounds; the rolled
	// value becomes its own bound so the range invariant still holds.
	min, max := attr.Min, attr.Max
	if min == 0 && max == 0 {
		min, max = value, value
	} else {
		value = attr.Clamp(value)
	}

	return items.RolledAttribute{
		Name:     attr.Name,
		Value:    value,
		Min:      min,
		Max:      max,
		Required: attr.Required,
	}, true, nil
}
