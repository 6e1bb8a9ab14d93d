package items

// Affix defines a prefix or suffix modifier (e.g., "Flaming", "of Strength")
// carrying an ordered set of attribute definitions. When an affix is selected
// for a generated item, each of its attributes is rolled like a normal item
// attribute.
type Affix struct {
	Name       string      `yaml:"name" json:"name"`
	Attributes []Attribute `yaml:"attributes" json:"attributes"`
}

// NewAffix creates an affix with the given attribute definitions.
func NewAffix(name string, attributes ...Attribute) Affix {
	return Affix{Name: name, Attributes: attributes}
}

// SetAttribute adds an attribute definition, replacing any existing
// definition with the same name while preserving its position.
func (a *Affix) SetAttribute(attr Attribute) {
	for i, existing := range a.Attributes {
		if existing.Name == attr.Name {
			a.Attributes[i] = attr
			return
		}
	}
	a.Attributes = append(a.Attributes, attr)
}

// Attribute returns the definition with the given name.
func (a *Affix) Attribute(name string) (Attribute, bool) {
	for _, attr := range a.Attributes {
		if attr.Name == name {
			return attr, true
		}
	}
	return Attribute{}, false
}

// RolledAffix is an affix instance on a generated item with its attribute
// values resolved.
type RolledAffix struct {
	Name       string            `json:"name"`
	Attributes []RolledAttribute `json:"attributes"`
}

func (r *RolledAffix) clone() *RolledAffix {
	return &RolledAffix{
		Name:       r.Name,
		Attributes: append([]RolledAttribute(nil), r.Attributes...),
	}
}
