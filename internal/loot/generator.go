package loot

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/EddieDover/Praeda/internal/items"
)

// maxItemsPerRequest caps a single generation request. Generation is linear
// in the item count, so the cap only guards against nonsensical requests.
const maxItemsPerRequest = 1_000_000

// minItemLevel is the floor applied to the rolled generation level so that
// level scaling stays meaningful even with a large variance.
const minItemLevel = 1.0

// Options control one generation request.
type Options struct {
	// NumberOfItems is how many items to generate (0 is valid)
	NumberOfItems int `yaml:"number_of_items" json:"number_of_items"`

	// BaseLevel is the center of the item level range
	BaseLevel float64 `yaml:"base_level" json:"base_level"`

	// LevelVariance widens the level range to base +/- variance
	LevelVariance float64 `yaml:"level_variance" json:"level_variance"`

	// AffixChance is the independent per-slot probability (0.0-1.0) that a
	// generated item gains a prefix or suffix
	AffixChance float64 `yaml:"affix_chance" json:"affix_chance"`

	// Linear selects additive level scaling; false selects exponential
	Linear bool `yaml:"linear" json:"linear"`

	// ScalingFactor is the global growth multiplier applied on top of each
	// attribute's own scaling factor
	ScalingFactor float64 `yaml:"scaling_factor" json:"scaling_factor"`
}

// DefaultOptions returns the options used when a caller has no preference:
// one item around level 1 with a 25% affix chance and linear scaling.
func DefaultOptions() Options {
	return Options{
		NumberOfItems: 1,
		BaseLevel:     1.0,
		LevelVariance: 1.0,
		AffixChance:   0.25,
		Linear:        true,
		ScalingFactor: 1.0,
	}
}

func (o Options) validate() error {
	if o.NumberOfItems < 0 {
		return fmt.Errorf("%w: number of items must be >= 0, got %d", ErrInvalidOptions, o.NumberOfItems)
	}
	if o.NumberOfItems > maxItemsPerRequest {
		return fmt.Errorf("%w: number of items must be <= %d, got %d", ErrInvalidOptions, maxItemsPerRequest, o.NumberOfItems)
	}
	if o.LevelVariance < 0 || !isFinite(o.LevelVariance) {
		return fmt.Errorf("%w: level variance must be finite and >= 0, got %g", ErrInvalidOptions, o.LevelVariance)
	}
	if math.IsNaN(o.AffixChance) || o.AffixChance < 0 || o.AffixChance > 1 {
		return fmt.Errorf("%w: affix chance must be in [0,1], got %g", ErrInvalidOptions, o.AffixChance)
	}
	if math.IsNaN(o.BaseLevel) || math.IsInf(o.BaseLevel, 0) {
		return fmt.Errorf("%w: base level must be finite", ErrInvalidOptions)
	}
	if math.IsNaN(o.ScalingFactor) || math.IsInf(o.ScalingFactor, 0) {
		return fmt.Errorf("%w: scaling factor must be finite", ErrInvalidOptions)
	}
	return nil
}

// Overrides force specific item properties for a generation request instead
// of random selection. Empty fields keep the random draw. A subtype
// override is only meaningful relative to a type, so it requires a type
// override as well.
type Overrides struct {
	Quality string `yaml:"quality,omitempty" json:"quality,omitempty"`
	Type    string `yaml:"type,omitempty" json:"type,omitempty"`
	Subtype string `yaml:"subtype,omitempty" json:"subtype,omitempty"`
}

// Generator produces randomized items from a Config. The Config is never
// mutated by generation, so one Generator may serve concurrent Generate
// calls; only the named loot stash is engine-owned mutable state and it is
// guarded internally.
type Generator struct {
	cfg *Config

	mu    sync.RWMutex
	stash map[string][]*items.Item
}

// NewGenerator creates a generator over a configuration model.
func NewGenerator(cfg *Config) *Generator {
	return &Generator{
		cfg:   cfg,
		stash: make(map[string][]*items.Item),
	}
}

// Config returns the generator's configuration model.
func (g *Generator) Config() *Config {
	return g.cfg
}

// Generate produces exactly opts.NumberOfItems items. Each item is rolled
// independently; the first failure aborts the whole request and returns no
// partial result, since generation failures indicate a configuration defect
// that would recur for every remaining item.
//
// rng may be nil, in which case a time-seeded source is used. Pass a seeded
// source for reproducible output.
func (g *Generator) Generate(opts Options, ov Overrides, rng *rand.Rand) ([]*items.Item, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if err := g.validateOverrides(ov); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	generated := make([]*items.Item, 0, opts.NumberOfItems)
	for i := 0; i < opts.NumberOfItems; i++ {
		item, err := g.generateItem(opts, ov, rng)
		if err != nil {
			return nil, err
		}
		generated = append(generated, item)
	}
	return generated, nil
}

// GenerateLoot generates items and stores the result under a caller key for
// later retrieval with Loot. The stash keeps its own copies, so mutating the
// returned items never changes what Loot yields later.
func (g *Generator) GenerateLoot(key string, opts Options, ov Overrides, rng *rand.Rand) ([]*items.Item, error) {
	generated, err := g.Generate(opts, ov, rng)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	g.stash[key] = cloneItems(generated)
	g.mu.Unlock()
	return generated, nil
}

// Loot returns deep copies of the items previously stored under a key, or
// nil. Callers may mutate the result freely.
func (g *Generator) Loot(key string) []*items.Item {
	g.mu.RLock()
	defer g.mu.RUnlock()
	stored, ok := g.stash[key]
	if !ok {
		return nil
	}
	return cloneItems(stored)
}

func cloneItems(generated []*items.Item) []*items.Item {
	clones := make([]*items.Item, len(generated))
	for i, item := range generated {
		clones[i] = item.Clone()
	}
	return clones
}

// GenerateLootJSON generates and stores items like GenerateLoot, returning
// the item list in its JSON transport form.
func (g *Generator) GenerateLootJSON(key string, opts Options, ov Overrides, rng *rand.Rand) (string, error) {
	generated, err := g.GenerateLoot(key, opts, ov, rng)
	if err != nil {
		return "", err
	}
	return marshalItems(generated)
}

// LootJSON returns previously stored items in their JSON transport form.
func (g *Generator) LootJSON(key string) (string, error) {
	return marshalItems(g.Loot(key))
}

func marshalItems(generated []*items.Item) (string, error) {
	if generated == nil {
		generated = []*items.Item{}
	}
	data, err := json.Marshal(generated)
	if err != nil {
		return "", fmt.Errorf("failed to encode items: %w", err)
	}
	return string(data), nil
}

func (g *Generator) validateOverrides(ov Overrides) error {
	if ov.Quality != "" && !g.cfg.HasQuality(ov.Quality) {
		return fmt.Errorf("%w: quality override %q is not configured", ErrInvalidOptions, ov.Quality)
	}
	if ov.Type != "" && !g.cfg.HasItemType(ov.Type) {
		return fmt.Errorf("%w: type override %q is not configured", ErrInvalidOptions, ov.Type)
	}
	if ov.Subtype != "" {
		if ov.Type == "" {
			return fmt.Errorf("%w: subtype override %q requires a type override", ErrInvalidOptions, ov.Subtype)
		}
		if !g.cfg.HasItemSubtype(ov.Type, ov.Subtype) {
			return fmt.Errorf("%w: subtype override %q is not configured under type %q", ErrInvalidOptions, ov.Subtype, ov.Type)
		}
	}
	return nil
}

// generateItem assembles one item: quality, type, subtype and name
// selection, level roll, attribute rolls and affix slots.
func (g *Generator) generateItem(opts Options, ov Overrides, rng *rand.Rand) (*items.Item, error) {
	quality := ov.Quality
	if quality == "" {
		picked, err := PickWeighted(rng, g.cfg.qualities)
		if err != nil {
			return nil, fmt.Errorf("selecting quality: %w", err)
		}
		quality = picked
	}

	itemType := ov.Type
	if itemType == "" {
		picked, err := PickWeighted(rng, g.cfg.typeWeights())
		if err != nil {
			return nil, fmt.Errorf("selecting item type: %w", err)
		}
		itemType = picked
	}

	subtype := ov.Subtype
	if subtype == "" {
		entry := g.cfg.types[itemType]
		if entry == nil || len(entry.subtypes) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrNoSubtypes, itemType)
		}
		picked, err := PickWeighted(rng, entry.subtypes)
		if err != nil {
			return nil, fmt.Errorf("selecting subtype of %q: %w", itemType, err)
		}
		subtype = picked
	}

	pool := g.cfg.names[scopeKey{itemType, subtype}]
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNoNames, itemType, subtype)
	}
	name := pickUniform(rng, pool)

	level := resolveLevel(rng, opts)
	item := items.NewItem(name, quality, itemType, subtype, level)

	// Type-scoped attributes first, then subtype-scoped ones so a subtype
	// definition overrides a type definition of the same name.
	for _, attr := range mergeAttributes(g.cfg.attributes[scopeKey{itemType, ""}], g.cfg.attributes[scopeKey{itemType, subtype}]) {
		rolled, present, err := rollAttribute(rng, attr, level, opts.Linear, opts.ScalingFactor)
		if err != nil {
			return nil, err
		}
		if present {
			item.SetAttribute(rolled)
		}
	}

	key := scopeKey{itemType, subtype}

	// Prefix and suffix slots are independent Bernoulli draws.
	if rng.Float64() < opts.AffixChance {
		prefix, err := rollAffix(rng, g.cfg.prefixes[key], opts, level)
		if err != nil {
			return nil, err
		}
		item.Prefix = prefix
	}
	if rng.Float64() < opts.AffixChance {
		suffix, err := rollAffix(rng, g.cfg.suffixes[key], opts, level)
		if err != nil {
			return nil, err
		}
		item.Suffix = suffix
	}

	for k, v := range g.cfg.subtypeMeta[key] {
		item.SetMetadata(k, v)
	}
	// Per-name metadata wins over subtype metadata on key collision.
	for k, v := range g.cfg.nameMeta[nameKey{itemType, subtype, name}] {
		item.SetMetadata(k, v)
	}

	return item, nil
}

// rollAffix selects one affix from the slot and resolves its attributes.
// An empty slot yields no affix even when the affix chance fired. Multiple
// affixes under one slot are selected with uniform weights.
func rollAffix(rng *rand.Rand, affixes []items.Affix, opts Options, level float64) (*items.RolledAffix, error) {
	if len(affixes) == 0 {
		return nil, nil
	}

	chosen := affixes[0]
	if len(affixes) > 1 {
		uniform := make(map[string]int, len(affixes))
		for _, affix := range affixes {
			uniform[affix.Name] = 1
		}
		picked, err := PickWeighted(rng, uniform)
		if err != nil {
			return nil, fmt.Errorf("selecting affix: %w", err)
		}
		for _, affix := range affixes {
			if affix.Name == picked {
				chosen = affix
				break
			}
		}
	}

	rolled := &items.RolledAffix{Name: chosen.Name}
	for _, attr := range chosen.Attributes {
		attrRolled, present, err := rollAttribute(rng, attr, level, opts.Linear, opts.ScalingFactor)
		if err != nil {
			return nil, err
		}
		if present {
			rolled.Attributes = append(rolled.Attributes, attrRolled)
		}
	}
	return rolled, nil
}

// resolveLevel rolls the item level uniformly in
// [base-variance, base+variance], floored at the minimum level.
func resolveLevel(rng *rand.Rand, opts Options) float64 {
	level := opts.BaseLevel
	if opts.LevelVariance > 0 {
		level += (rng.Float64()*2 - 1) * opts.LevelVariance
	}
	if level < minItemLevel {
		level = minItemLevel
	}
	return level
}

// mergeAttributes overlays subtype-scoped definitions onto type-scoped
// ones, with subtype winning on name collision.
func mergeAttributes(typeScoped, subtypeScoped []items.Attribute) []items.Attribute {
	merged := append([]items.Attribute(nil), typeScoped...)
	for _, attr := range subtypeScoped {
		merged = upsertAttribute(merged, attr)
	}
	return merged
}
