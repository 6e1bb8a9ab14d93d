package items

import (
	"math"
	"testing"
)

func TestNewAttributeDefaults(t *testing.T) {
	attr := NewAttribute("damage", 5.0, 1.0, 10.0, true)

	if attr.Name != "damage" {
		t.Errorf("expected name 'damage', got %q", attr.Name)
	}
	if attr.ScalingFactor != 1.0 {
		t.Errorf("expected default scaling factor 1.0, got %g", attr.ScalingFactor)
	}
	if attr.Chance != 0 {
		t.Errorf("expected default chance 0, got %g", attr.Chance)
	}
	if !attr.Required {
		t.Error("expected attribute to be required")
	}
}

func TestClamp(t *testing.T) {
	attr := NewAttribute("damage", 5.0, 1.0, 10.0, true)

	if got := attr.Clamp(0.5); got != 1.0 {
		t.Errorf("expected clamp below min to return 1.0, got %g", got)
	}
	if got := attr.Clamp(15.0); got != 10.0 {
		t.Errorf("expected clamp above max to return 10.0, got %g", got)
	}
	if got := attr.Clamp(7.5); got != 7.5 {
		t.Errorf("expected in-range value to pass through, got %g", got)
	}
	if got := attr.Clamp(1.0); got != 1.0 {
		t.Errorf("expected min boundary to pass through, got %g", got)
	}
	if got := attr.Clamp(10.0); got != 10.0 {
		t.Errorf("expected max boundary to pass through, got %g", got)
	}
	if got := attr.Clamp(math.NaN()); got != 1.0 {
		t.Errorf("expected NaN to collapse to min, got %g", got)
	}
}
