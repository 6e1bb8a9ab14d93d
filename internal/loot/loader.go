package loot

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/EddieDover/Praeda/internal/items"
	"github.com/EddieDover/Praeda/internal/logger"
)

// rawAttribute mirrors an attribute definition in the YAML schema. The
// scaling factor is a pointer so an omitted field can default to 1.0.
type rawAttribute struct {
	Name          string   `yaml:"name"`
	InitialValue  float64  `yaml:"initial_value"`
	Min           float64  `yaml:"min"`
	Max           float64  `yaml:"max"`
	Required      bool     `yaml:"required"`
	ScalingFactor *float64 `yaml:"scaling_factor"`
	Chance        float64  `yaml:"chance"`
}

func (r rawAttribute) toAttribute() items.Attribute {
	scaling := 1.0
	if r.ScalingFactor != nil {
		scaling = *r.ScalingFactor
	}
	return items.Attribute{
		Name:          r.Name,
		InitialValue:  r.InitialValue,
		Min:           r.Min,
		Max:           r.Max,
		Required:      r.Required,
		ScalingFactor: scaling,
		Chance:        r.Chance,
	}
}

type rawItemType struct {
	Type     string         `yaml:"type"`
	Weight   int            `yaml:"weight"`
	Subtypes map[string]int `yaml:"subtypes"`
}

type rawItemNames struct {
	Type     string                    `yaml:"type"`
	Subtype  string                    `yaml:"subtype"`
	Names    []string                  `yaml:"names"`
	Metadata map[string]map[string]any `yaml:"metadata"` // item name -> metadata
}

type rawAttributeSet struct {
	Type       string         `yaml:"type"`
	Subtype    string         `yaml:"subtype"` // empty = type scope
	Attributes []rawAttribute `yaml:"attributes"`
}

type rawAffix struct {
	Name       string         `yaml:"name"`
	Attributes []rawAttribute `yaml:"attributes"`
}

type rawAffixSet struct {
	Type     string         `yaml:"type"`
	Subtype  string         `yaml:"subtype"`
	Prefixes []rawAffix     `yaml:"prefixes"`
	Suffixes []rawAffix     `yaml:"suffixes"`
	Metadata map[string]any `yaml:"metadata"` // subtype metadata
}

// rawConfig is the top-level YAML configuration document.
type rawConfig struct {
	Qualities  map[string]int    `yaml:"qualities"`
	ItemTypes  []rawItemType     `yaml:"item_types"`
	ItemNames  []rawItemNames    `yaml:"item_names"`
	Attributes []rawAttributeSet `yaml:"attributes"`
	Affixes    []rawAffixSet     `yaml:"affixes"`
}

// LoadConfig parses a YAML configuration document into a fresh Config.
func LoadConfig(data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse loot YAML: %w", err)
	}
	return buildConfig(raw)
}

// LoadFile reads and parses a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read loot config file: %w", err)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded loot configuration",
		"path", path,
		"qualities", len(cfg.qualities),
		"item_types", len(cfg.types))
	return cfg, nil
}

// LoadYAML parses a YAML configuration document and replaces the receiver's
// contents with it. Loading is all-or-nothing: the document is staged into a
// fresh model first, so a malformed or semantically invalid document leaves
// the previous configuration untouched.
func (c *Config) LoadYAML(data []byte) error {
	staged, err := LoadConfig(data)
	if err != nil {
		return err
	}
	*c = *staged
	return nil
}

// buildConfig replays a raw document through the Config setters so that all
// semantic validation lives in one place, then cross-checks references
// against the declared taxonomy.
func buildConfig(raw rawConfig) (*Config, error) {
	cfg := NewConfig()

	for name, weight := range raw.Qualities {
		if err := cfg.SetQuality(name, weight); err != nil {
			return nil, err
		}
	}

	for _, t := range raw.ItemTypes {
		if err := cfg.SetItemType(t.Type, t.Weight); err != nil {
			return nil, err
		}
		for subtype, weight := range t.Subtypes {
			if err := cfg.SetItemSubtype(t.Type, subtype, weight); err != nil {
				return nil, err
			}
		}
	}

	for _, entry := range raw.ItemNames {
		if err := checkScope(cfg, "item_names", entry.Type, entry.Subtype); err != nil {
			return nil, err
		}
		if err := cfg.SetItemNames(entry.Type, entry.Subtype, entry.Names); err != nil {
			return nil, err
		}
		for itemName, meta := range entry.Metadata {
			for key, value := range meta {
				if err := cfg.SetItemNameMetadata(entry.Type, entry.Subtype, itemName, key, value); err != nil {
					return nil, err
				}
			}
		}
	}

	for _, set := range raw.Attributes {
		if err := checkScope(cfg, "attributes", set.Type, set.Subtype); err != nil {
			return nil, err
		}
		for _, attr := range set.Attributes {
			if err := cfg.SetAttribute(set.Type, set.Subtype, attr.toAttribute()); err != nil {
				return nil, err
			}
		}
	}

	for _, set := range raw.Affixes {
		if err := checkScope(cfg, "affixes", set.Type, set.Subtype); err != nil {
			return nil, err
		}
		if err := loadAffixes(cfg.SetPrefixAttribute, set, set.Prefixes); err != nil {
			return nil, err
		}
		if err := loadAffixes(cfg.SetSuffixAttribute, set, set.Suffixes); err != nil {
			return nil, err
		}
		for key, value := range set.Metadata {
			if err := cfg.SetSubtypeMetadata(set.Type, set.Subtype, key, value); err != nil {
				return nil, err
			}
		}
	}

	return cfg, nil
}

func loadAffixes(set func(string, string, string, items.Attribute) error, scope rawAffixSet, affixes []rawAffix) error {
	for _, affix := range affixes {
		if len(affix.Attributes) == 0 {
			return fmt.Errorf("%w: affix %q for %s/%s has no attributes",
				ErrInvalidConfig, affix.Name, scope.Type, scope.Subtype)
		}
		for _, attr := range affix.Attributes {
			if err := set(scope.Type, scope.Subtype, affix.Name, attr.toAttribute()); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkScope verifies that a section entry references a declared type and,
// when a subtype is given, a declared subtype of that type.
func checkScope(cfg *Config, section, typeName, subtype string) error {
	if typeName == "" {
		return fmt.Errorf("%w: %s entry is missing an item type", ErrInvalidConfig, section)
	}
	if !cfg.HasItemType(typeName) {
		return fmt.Errorf("%w: %s entry references unknown item type %q", ErrInvalidConfig, section, typeName)
	}
	if subtype != "" && !cfg.HasItemSubtype(typeName, subtype) {
		return fmt.Errorf("%w: %s entry references unknown subtype %q of type %q",
			ErrInvalidConfig, section, subtype, typeName)
	}
	return nil
}
