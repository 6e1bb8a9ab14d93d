package loot

import (
	"fmt"
	"math"
	"sort"

	"github.com/EddieDover/Praeda/internal/items"
)

// scopeKey addresses configuration attached to a type/subtype pair. An empty
// Subtype addresses the type-wide scope.
type scopeKey struct {
	Type    string
	Subtype string
}

// nameKey addresses per-item-name configuration.
type nameKey struct {
	Type    string
	Subtype string
	Name    string
}

type itemTypeEntry struct {
	weight   int
	subtypes map[string]int
}

// Config is the in-memory configuration model the generator draws from:
// quality weights, the item type/subtype taxonomy, name pools, attribute
// sets and affix slots. It is built up front via the setters (or a bulk
// YAML load) and treated as read-only during generation. Concurrent
// generation against a shared Config is safe as long as no setter runs
// at the same time; the caller serializes mutation.
type Config struct {
	qualities   map[string]int
	types       map[string]*itemTypeEntry
	names       map[scopeKey][]string
	attributes  map[scopeKey][]items.Attribute
	prefixes    map[scopeKey][]items.Affix
	suffixes    map[scopeKey][]items.Affix
	subtypeMeta map[scopeKey]map[string]any
	nameMeta    map[nameKey]map[string]any
}

// NewConfig creates an empty configuration model.
func NewConfig() *Config {
	return &Config{
		qualities:   make(map[string]int),
		types:       make(map[string]*itemTypeEntry),
		names:       make(map[scopeKey][]string),
		attributes:  make(map[scopeKey][]items.Attribute),
		prefixes:    make(map[scopeKey][]items.Affix),
		suffixes:    make(map[scopeKey][]items.Affix),
		subtypeMeta: make(map[scopeKey]map[string]any),
		nameMeta:    make(map[nameKey]map[string]any),
	}
}

func validateEntry(kind, name string, weight int) error {
	if name == "" {
		return fmt.Errorf("%w: %s name must not be empty", ErrInvalidConfig, kind)
	}
	if weight < 0 {
		return fmt.Errorf("%w: %s %q weight must be >= 0, got %d", ErrInvalidConfig, kind, name, weight)
	}
	return nil
}

func validateAttribute(attr items.Attribute) error {
	if attr.Name == "" {
		return fmt.Errorf("%w: attribute name must not be empty", ErrInvalidConfig)
	}
	if !isFinite(attr.InitialValue) || !isFinite(attr.Min) || !isFinite(attr.Max) || !isFinite(attr.ScalingFactor) {
		return fmt.Errorf("%w: attribute %q has a non-finite value", ErrInvalidConfig, attr.Name)
	}
	if attr.Min > attr.Max {
		return fmt.Errorf("%w: attribute %q min (%g) must be <= max (%g)",
			ErrInvalidConfig, attr.Name, attr.Min, attr.Max)
	}
	if math.IsNaN(attr.Chance) || attr.Chance < 0 || attr.Chance > 1 {
		return fmt.Errorf("%w: attribute %q chance must be in [0,1], got %g",
			ErrInvalidConfig, attr.Name, attr.Chance)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SetQuality adds or updates a quality tier with a relative selection
// weight. Setting an existing quality overwrites its weight.
func (c *Config) SetQuality(name string, weight int) error {
	if err := validateEntry("quality", name, weight); err != nil {
		return err
	}
	c.qualities[name] = weight
	return nil
}

// HasQuality reports whether a quality tier has been configured, regardless
// of its weight.
func (c *Config) HasQuality(name string) bool {
	_, ok := c.qualities[name]
	return ok
}

// QualityNames returns the configured quality tiers in sorted order.
func (c *Config) QualityNames() []string {
	return sortedKeys(c.qualities)
}

// SetItemType adds or updates an item type with a relative selection weight.
func (c *Config) SetItemType(name string, weight int) error {
	if err := validateEntry("item type", name, weight); err != nil {
		return err
	}
	if entry, ok := c.types[name]; ok {
		entry.weight = weight
		return nil
	}
	c.types[name] = &itemTypeEntry{weight: weight, subtypes: make(map[string]int)}
	return nil
}

// SetItemSubtype adds or updates a subtype under an item type. An unknown
// type is created with weight 0 and stays unselectable until SetItemType
// gives it a weight.
func (c *Config) SetItemSubtype(typeName, subtype string, weight int) error {
	if typeName == "" {
		return fmt.Errorf("%w: item type name must not be empty", ErrInvalidConfig)
	}
	if err := validateEntry("subtype", subtype, weight); err != nil {
		return err
	}
	entry, ok := c.types[typeName]
	if !ok {
		entry = &itemTypeEntry{subtypes: make(map[string]int)}
		c.types[typeName] = entry
	}
	entry.subtypes[subtype] = weight
	return nil
}

// HasItemType reports whether an item type has been configured.
func (c *Config) HasItemType(name string) bool {
	_, ok := c.types[name]
	return ok
}

// HasItemSubtype reports whether a subtype exists under the given type.
func (c *Config) HasItemSubtype(typeName, subtype string) bool {
	entry, ok := c.types[typeName]
	if !ok {
		return false
	}
	_, ok = entry.subtypes[subtype]
	return ok
}

// ItemTypeNames returns the configured item types in sorted order.
func (c *Config) ItemTypeNames() []string {
	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SubtypesForType returns the subtypes configured under a type, sorted.
func (c *Config) SubtypesForType(typeName string) []string {
	entry, ok := c.types[typeName]
	if !ok {
		return nil
	}
	return sortedKeys(entry.subtypes)
}

// SetItemNames replaces the name pool for a type/subtype. One of these
// names is selected uniformly for every generated item of that subtype.
func (c *Config) SetItemNames(typeName, subtype string, names []string) error {
	if typeName == "" || subtype == "" {
		return fmt.Errorf("%w: item names need a type and subtype", ErrInvalidConfig)
	}
	for _, n := range names {
		if n == "" {
			return fmt.Errorf("%w: item name must not be empty", ErrInvalidConfig)
		}
	}
	c.names[scopeKey{typeName, subtype}] = append([]string(nil), names...)
	return nil
}

// ItemNames returns the name pool for a type/subtype.
func (c *Config) ItemNames(typeName, subtype string) []string {
	return append([]string(nil), c.names[scopeKey{typeName, subtype}]...)
}

// SetAttribute adds or updates an attribute definition for a scope. An
// empty subtype attaches the attribute at type scope, applying to every
// subtype of the type; a subtype-scoped definition with the same name
// overrides the type-scoped one at generation time.
func (c *Config) SetAttribute(typeName, subtype string, attr items.Attribute) error {
	if typeName == "" {
		return fmt.Errorf("%w: attribute scope needs an item type", ErrInvalidConfig)
	}
	if err := validateAttribute(attr); err != nil {
		return err
	}
	key := scopeKey{typeName, subtype}
	c.attributes[key] = upsertAttribute(c.attributes[key], attr)
	return nil
}

// Attributes returns the attribute definitions configured at a scope.
func (c *Config) Attributes(typeName, subtype string) []items.Attribute {
	return append([]items.Attribute(nil), c.attributes[scopeKey{typeName, subtype}]...)
}

// HasAttribute reports whether a scope defines the named attribute.
func (c *Config) HasAttribute(typeName, subtype, attrName string) bool {
	for _, attr := range c.attributes[scopeKey{typeName, subtype}] {
		if attr.Name == attrName {
			return true
		}
	}
	return false
}

// SetPrefixAttribute adds an attribute to a named prefix affix for a
// type/subtype, creating the affix if needed. Repeated calls with the same
// affix name build up its attribute set; an attribute name collision within
// the affix overwrites.
func (c *Config) SetPrefixAttribute(typeName, subtype, affixName string, attr items.Attribute) error {
	return c.setAffixAttribute(c.prefixes, typeName, subtype, affixName, attr)
}

// SetSuffixAttribute is the suffix-slot counterpart of SetPrefixAttribute.
func (c *Config) SetSuffixAttribute(typeName, subtype, affixName string, attr items.Attribute) error {
	return c.setAffixAttribute(c.suffixes, typeName, subtype, affixName, attr)
}

func (c *Config) setAffixAttribute(slot map[scopeKey][]items.Affix, typeName, subtype, affixName string, attr items.Attribute) error {
	if typeName == "" || subtype == "" {
		return fmt.Errorf("%w: affixes need a type and subtype", ErrInvalidConfig)
	}
	if affixName == "" {
		return fmt.Errorf("%w: affix name must not be empty", ErrInvalidConfig)
	}
	if err := validateAttribute(attr); err != nil {
		return err
	}
	key := scopeKey{typeName, subtype}
	for i := range slot[key] {
		if slot[key][i].Name == affixName {
			slot[key][i].SetAttribute(attr)
			return nil
		}
	}
	slot[key] = append(slot[key], items.NewAffix(affixName, attr))
	return nil
}

// Prefixes returns the prefix affixes configured for a type/subtype.
func (c *Config) Prefixes(typeName, subtype string) []items.Affix {
	return append([]items.Affix(nil), c.prefixes[scopeKey{typeName, subtype}]...)
}

// Suffixes returns the suffix affixes configured for a type/subtype.
func (c *Config) Suffixes(typeName, subtype string) []items.Affix {
	return append([]items.Affix(nil), c.suffixes[scopeKey{typeName, subtype}]...)
}

// SetSubtypeMetadata attaches an application-specific metadata value to a
// type/subtype; it is copied onto every item generated for that subtype.
func (c *Config) SetSubtypeMetadata(typeName, subtype, key string, value any) error {
	if typeName == "" || subtype == "" || key == "" {
		return fmt.Errorf("%w: subtype metadata needs a type, subtype and key", ErrInvalidConfig)
	}
	sk := scopeKey{typeName, subtype}
	if c.subtypeMeta[sk] == nil {
		c.subtypeMeta[sk] = make(map[string]any)
	}
	c.subtypeMeta[sk][key] = value
	return nil
}

// SubtypeMetadata returns a subtype metadata value.
func (c *Config) SubtypeMetadata(typeName, subtype, key string) (any, bool) {
	v, ok := c.subtypeMeta[scopeKey{typeName, subtype}][key]
	return v, ok
}

// SetItemNameMetadata attaches metadata to one specific item name; it
// overrides subtype metadata of the same key on generated items.
func (c *Config) SetItemNameMetadata(typeName, subtype, itemName, key string, value any) error {
	if typeName == "" || subtype == "" || itemName == "" || key == "" {
		return fmt.Errorf("%w: item metadata needs a type, subtype, item name and key", ErrInvalidConfig)
	}
	nk := nameKey{typeName, subtype, itemName}
	if c.nameMeta[nk] == nil {
		c.nameMeta[nk] = make(map[string]any)
	}
	c.nameMeta[nk][key] = value
	return nil
}

// ItemNameMetadata returns a per-item-name metadata value.
func (c *Config) ItemNameMetadata(typeName, subtype, itemName, key string) (any, bool) {
	v, ok := c.nameMeta[nameKey{typeName, subtype, itemName}][key]
	return v, ok
}

// typeWeights builds the selection map for the item type draw.
func (c *Config) typeWeights() map[string]int {
	weights := make(map[string]int, len(c.types))
	for name, entry := range c.types {
		weights[name] = entry.weight
	}
	return weights
}

func upsertAttribute(attrs []items.Attribute, attr items.Attribute) []items.Attribute {
	for i, existing := range attrs {
		if existing.Name == attr.Name {
			attrs[i] = attr
			return attrs
		}
	}
	return append(attrs, attr)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
