package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/EddieDover/Praeda/internal/config"
	"github.com/EddieDover/Praeda/internal/logger"
	"github.com/EddieDover/Praeda/internal/loot"
)

func main() {
	// The app config supplies flag defaults; flags override per invocation.
	appConfigPath := os.Getenv("LOOTGEN_CONFIG")
	if appConfigPath == "" {
		appConfigPath = "data/lootgen.yaml"
	}
	appConfig, err := config.LoadConfig(appConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load app config %s: %v\n", appConfigPath, err)
		os.Exit(1)
	}

	configFile := flag.String("config", appConfig.Data.LootPath, "Path to loot configuration YAML file")
	loggingConfig := flag.String("logging", appConfig.Data.LoggingPath, "Path to logging config YAML file")
	count := flag.Int("count", appConfig.Generation.Count, "Number of items to generate")
	level := flag.Float64("level", appConfig.Generation.BaseLevel, "Base item level")
	variance := flag.Float64("variance", appConfig.Generation.LevelVariance, "Level variance (level +/- variance)")
	affixChance := flag.Float64("affix-chance", appConfig.Generation.AffixChance, "Chance (0.0-1.0) for each affix slot")
	scaling := flag.Float64("scaling", appConfig.Generation.ScalingFactor, "Global attribute scaling factor")
	exponential := flag.Bool("exponential", appConfig.Generation.Exponential, "Use exponential attribute scaling instead of linear")
	seed := flag.Int64("seed", 0, "Random seed (default: random based on current time)")
	quality := flag.String("quality", "", "Force a specific quality (default: weighted random)")
	itemType := flag.String("type", "", "Force a specific item type (default: weighted random)")
	subtype := flag.String("subtype", "", "Force a specific subtype (requires -type)")
	showVersion := flag.Bool("version", false, "Print library version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(loot.Info())
		return
	}

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	if err := logger.Initialize(logConfig); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loot.LoadFile(*configFile)
	if err != nil {
		logger.Error("failed to load loot configuration", "path", *configFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded loot configuration", "path", *configFile)

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))
	logger.Debug("seeded random source", "seed", *seed)

	opts := loot.Options{
		NumberOfItems: *count,
		BaseLevel:     *level,
		LevelVariance: *variance,
		AffixChance:   *affixChance,
		Linear:        !*exponential,
		ScalingFactor: *scaling,
	}
	overrides := loot.Overrides{
		Quality: *quality,
		Type:    *itemType,
		Subtype: *subtype,
	}

	gen := loot.NewGenerator(cfg)
	out, err := gen.GenerateLootJSON("lootgen", opts, overrides, rng)
	if err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}

	fmt.Println(out)
}
