package items

import (
	"fmt"

	"github.com/google/uuid"
)

// Item is one generated piece of loot: a named instance of a quality, type
// and subtype, with rolled attributes and optional prefix/suffix affixes.
type Item struct {
	ID         string                     `json:"id"`
	Name       string                     `json:"name"`
	Quality    string                     `json:"quality"`
	Type       string                     `json:"type"`
	Subtype    string                     `json:"subtype"`
	Level      float64                    `json:"level"`
	Prefix     *RolledAffix               `json:"prefix,omitempty"`
	Suffix     *RolledAffix               `json:"suffix,omitempty"`
	Attributes map[string]RolledAttribute `json:"attributes"`
	Metadata   map[string]any             `json:"metadata,omitempty"`
}

// NewItem creates an item with a fresh instance ID and an empty attribute map.
func NewItem(name, quality, itemType, subtype string, level float64) *Item {
	return &Item{
		ID:         uuid.NewString(),
		Name:       name,
		Quality:    quality,
		Type:       itemType,
		Subtype:    subtype,
		Level:      level,
		Attributes: make(map[string]RolledAttribute),
	}
}

// Clone returns a deep copy of the item; mutating the copy never touches
// the original.
func (i *Item) Clone() *Item {
	clone := *i
	clone.Attributes = make(map[string]RolledAttribute, len(i.Attributes))
	for k, v := range i.Attributes {
		clone.Attributes[k] = v
	}
	if i.Metadata != nil {
		clone.Metadata = make(map[string]any, len(i.Metadata))
		for k, v := range i.Metadata {
			clone.Metadata[k] = v
		}
	}
	if i.Prefix != nil {
		clone.Prefix = i.Prefix.clone()
	}
	if i.Suffix != nil {
		clone.Suffix = i.Suffix.clone()
	}
	return &clone
}

// DisplayName composes the full item name including affix names,
// e.g. "Flaming Longsword of Strength".
func (i *Item) DisplayName() string {
	name := i.Name
	if i.Prefix != nil && i.Prefix.Name != "" {
		name = fmt.Sprintf("%s %s", i.Prefix.Name, name)
	}
	if i.Suffix != nil && i.Suffix.Name != "" {
		name = fmt.Sprintf("%s %s", name, i.Suffix.Name)
	}
	return name
}

// SetAttribute stores a rolled attribute, replacing any previous roll of the
// same name.
func (i *Item) SetAttribute(attr RolledAttribute) {
	i.Attributes[attr.Name] = attr
}

// Attribute returns the rolled attribute with the given name.
func (i *Item) Attribute(name string) (RolledAttribute, bool) {
	attr, ok := i.Attributes[name]
	return attr, ok
}

// HasAttribute checks whether the item carries an attribute.
func (i *Item) HasAttribute(name string) bool {
	_, ok := i.Attributes[name]
	return ok
}

// SetMetadata attaches an application-specific metadata value.
func (i *Item) SetMetadata(key string, value any) {
	if i.Metadata == nil {
		i.Metadata = make(map[string]any)
	}
	i.Metadata[key] = value
}

// MetadataValue returns a metadata value by key.
func (i *Item) MetadataValue(key string) (any, bool) {
	v, ok := i.Metadata[key]
	return v, ok
}
