package items

import "math"

// Attribute defines a numeric property that can be attached to a type/subtype
// or to an affix. During generation the definition is rolled into a concrete
// RolledAttribute: scaled by item level and clamped into [Min, Max].
type Attribute struct {
	// Name identifies the attribute (e.g., "damage", "armor")
	Name string `yaml:"name" json:"name"`

	// InitialValue is the base value before level scaling
	InitialValue float64 `yaml:"initial_value" json:"initial_value"`

	// Min and Max bound the final rolled value
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`

	// Required attributes appear on every generated item; optional ones
	// appear with probability Chance
	Required bool `yaml:"required,omitempty" json:"required"`

	// ScalingFactor is the per-attribute growth multiplier (default 1.0)
	ScalingFactor float64 `yaml:"scaling_factor,omitempty" json:"scaling_factor"`

	// Chance is the inclusion probability for optional attributes (0.0-1.0)
	Chance float64 `yaml:"chance,omitempty" json:"chance"`
}

// NewAttribute creates an attribute definition with the default scaling factor.
func NewAttribute(name string, initialValue, min, max float64, required bool) Attribute {
	return Attribute{
		Name:          name,
		InitialValue:  initialValue,
		Min:           min,
		Max:           max,
		Required:      required,
		ScalingFactor: 1.0,
	}
}

// Clamp bounds a value into the attribute's [Min, Max] range. NaN collapses
// to Min so the result always lands inside the range.
func (a Attribute) Clamp(value float64) float64 {
	if math.IsNaN(value) || value < a.Min {
		return a.Min
	}
	if value > a.Max {
		return a.Max
	}
	return value
}

// RolledAttribute is a concrete attribute on a generated item: the rolled
// value plus the static bounds and flags it was rolled from.
type RolledAttribute struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Required bool    `json:"required"`
}
