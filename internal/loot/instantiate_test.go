package loot

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EddieDover/Praeda/internal/items"
)

func TestRollAttributeLinearScaling(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	attr := items.NewAttribute("damage", 5.0, 0.0, 1000.0, true)
	attr.ScalingFactor = 2.0

	// value = 5 + (10-1) * 2 * 1.5 = 32
	rolled, present, err := rollAttribute(rng, attr, 10.0, true, 1.5)
	require.NoError(t, err)
	require.True(t, present)
	assert.InDelta(t, 32.0, rolled.Value, 1e-9)

	// Level 1 keeps the initial value in both modes
	rolled, _, err = rollAttribute(rng, attr, 1.0, true, 1.5)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, rolled.Value, 1e-9)
}

func TestRollAttributeExponentialScaling(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	attr := items.NewAttribute("damage", 5.0, 0.0, 1000.0, true)

	// value = 5 * (1.2 * 1.0)^(3-1) = 7.2
	rolled, present, err := rollAttribute(rng, attr, 3.0, false, 1.2)
	require.NoError(t, err)
	require.True(t, present)
	assert.InDelta(t, 5.0*math.Pow(1.2, 2), rolled.Value, 1e-9)

	rolled, _, err = rollAttribute(rng, attr, 1.0, false, 1.2)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, rolled.Value, 1e-9)
}

func TestRollAttributeModesDiffer(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	attr := items.NewAttribute("damage", 5.0, 0.0, 1000.0, true)

	linear, _, err := rollAttribute(rng, attr, 10.0, true, 1.5)
	require.NoError(t, err)
	exponential, _, err := rollAttribute(rng, attr, 10.0, false, 1.5)
	require.NoError(t, err)

	assert.NotEqual(t, linear.Value, exponential.Value)
}

func TestRollAttributeClamping(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))

	// Scaled value far above max
	attr := items.NewAttribute("damage", 5.0, 1.0, 10.0, true)
	rolled, _, err := rollAttribute(rng, attr, 100.0, true, 10.0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, rolled.Value)

	// Initial value below min clamps up even without scaling
	attr = items.NewAttribute("armor", 0.5, 2.0, 10.0, true)
	rolled, _, err = rollAttribute(rng, attr, 1.0, true, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, rolled.Value)

	// Negative growth clamps to min
	attr = items.NewAttribute("weight", 5.0, 1.0, 10.0, true)
	attr.ScalingFactor = -3.0
	rolled, _, err = rollAttribute(rng, attr, 50.0, true, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rolled.Value)
}

func TestRollAttributeNegativeScalingExponential(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))

	// Pow with a negative base and fractional exponent yields NaN; the roll
	// must still land on a bound instead of leaking NaN onto the item.
	attr := items.NewAttribute("weight", 5.0, 1.0, 10.0, true)
	attr.ScalingFactor = -3.0

	rolled, present, err := rollAttribute(rng, attr, 2.5, false, 1.0)
	require.NoError(t, err)
	require.True(t, present)
	assert.False(t, math.IsNaN(rolled.Value))
	assert.Equal(t, 1.0, rolled.Value)

	// Same degenerate roll with an unbounded definition stays finite too.
	unbounded := items.Attribute{Name: "score", InitialValue: 5.0, ScalingFactor: -3.0, Required: true}
	rolled, _, err = rollAttribute(rng, unbounded, 2.5, false, 1.0)
	require.NoError(t, err)
	assert.False(t, math.IsNaN(rolled.Value))
	assert.GreaterOrEqual(t, rolled.Value, rolled.Min)
	assert.LessOrEqual(t, rolled.Value, rolled.Max)
}

func TestRollAttributePresence(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	const trials = 1000

	required := items.NewAttribute("damage", 5.0, 1.0, 10.0, true)
	never := items.NewAttribute("ghost", 1.0, 0.0, 5.0, false) // chance 0
	always := items.NewAttribute("shine", 1.0, 0.0, 5.0, false)
	always.Chance = 1.0

	for i := 0; i < trials; i++ {
		_, present, err := rollAttribute(rng, required, 5.0, true, 1.0)
		require.NoError(t, err)
		assert.True(t, present, "required attribute must always be present")

		_, present, err = rollAttribute(rng, never, 5.0, true, 1.0)
		require.NoError(t, err)
		assert.False(t, present, "chance-0 optional attribute must never be present")

		_, present, err = rollAttribute(rng, always, 5.0, true, 1.0)
		require.NoError(t, err)
		assert.True(t, present, "chance-1 attribute must always be present")
	}
}

func TestRollAttributePresenceFrequency(t *testing.T) {
	rng := rand.New(rand.NewSource(777))
	attr := items.NewAttribute("gleam", 1.0, 0.0, 5.0, false)
	attr.Chance = 0.3

	const trials = 50000
	hits := 0
	for i := 0; i < trials; i++ {
		_, present, err := rollAttribute(rng, attr, 5.0, true, 1.0)
		require.NoError(t, err)
		if present {
			hits++
		}
	}
	assert.InDelta(t, 0.3, float64(hits)/float64(trials), 0.01)
}

func TestRollAttributeRequirementPinsToLevel(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	attr := items.Attribute{Name: "level_requirement", Required: true, ScalingFactor: 1.0}

	rolled, present, err := rollAttribute(rng, attr, 37.5, true, 10.0)
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, 37.5, rolled.Value, "requirement attributes track the item level, not scaling")
}

func TestRollAttributeUnboundedDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	attr := items.Attribute{Name: "score", InitialValue: 4.0, ScalingFactor: 1.0, Required: true}

	rolled, _, err := rollAttribute(rng, attr, 3.0, true, 1.0)
	require.NoError(t, err)
	// value = 4 + 2 = 6; a zero/zero range adopts the rolled value as bounds
	assert.Equal(t, 6.0, rolled.Value)
	assert.Equal(t, rolled.Value, rolled.Min)
	assert.Equal(t, rolled.Value, rolled.Max)
}

func TestRollAttributeInvalidLevel(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	attr := items.NewAttribute("damage", 5.0, 1.0, 10.0, true)

	for _, level := range []float64{-1.0, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, _, err := rollAttribute(rng, attr, level, true, 1.0)
		assert.ErrorIs(t, err, ErrInvalidLevel, "level %g", level)
	}
}
