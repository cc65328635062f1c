// Package config loads run configuration from JSON files, merged with CLI
// flag overrides, using the same untyped map plus type-coercion-helper
// idiom the teacher uses for its run configs.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"keyopt/internal/model"
)

// RunConfig bundles everything an optimize_keyboard_layout invocation needs
// beyond the layout and corpus: GA parameters, effort weights, and the
// named presets selecting geometry and rule penalties.
type RunConfig struct {
	Params         model.GAParams
	Weights        model.Weights
	GeometryPreset string
	RulesProfile   string
	StoreKind      string
	DBPath         string
}

// DefaultRunConfig returns the defaults named in the external interfaces.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Params:         model.DefaultGAParams(),
		Weights:        model.DefaultWeights(),
		GeometryPreset: "ansi30",
		RulesProfile:   "none",
		StoreKind:      "memory",
		DBPath:         "keyopt.db",
	}
}

// Load reads a JSON run-configuration file and merges it onto the defaults.
// Fields absent from the file keep their default value.
func Load(path string) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return RunConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if v, ok := asInt(raw["population_size"]); ok {
		cfg.Params.PopulationSize = v
	}
	if v, ok := asInt(raw["generations"]); ok {
		cfg.Params.Generations = v
	}
	if v, ok := asFloat64(raw["mutation_rate"]); ok {
		cfg.Params.MutationRate = v
	}
	if v, ok := asFloat64(raw["crossover_rate"]); ok {
		cfg.Params.CrossoverRate = v
	}
	if v, ok := asInt(raw["tournament_size"]); ok {
		cfg.Params.TournamentSize = v
	}
	if v, ok := asInt(raw["elite_count"]); ok {
		cfg.Params.EliteCount = v
	}
	if v, ok := asInt(raw["workers"]); ok {
		cfg.Params.Workers = v
	}
	if v, ok := asInt64(raw["seed"]); ok {
		cfg.Params.Seed = v
	}

	if weightsMap, ok := raw["weights"].(map[string]any); ok {
		if v, ok := asFloat64(weightsMap["base"]); ok {
			cfg.Weights.Base = v
		}
		if v, ok := asFloat64(weightsMap["same_finger"]); ok {
			cfg.Weights.SameFinger = v
		}
		if v, ok := asFloat64(weightsMap["same_hand"]); ok {
			cfg.Weights.SameHand = v
		}
		if v, ok := asFloat64(weightsMap["row_change"]); ok {
			cfg.Weights.RowChange = v
		}
		if v, ok := asFloat64(weightsMap["trigram"]); ok {
			cfg.Weights.Trigram = v
		}
	}

	if v, ok := asString(raw["geometry_preset"]); ok {
		cfg.GeometryPreset = v
	}
	if v, ok := asString(raw["rules_profile"]); ok {
		cfg.RulesProfile = v
	}
	if v, ok := asString(raw["store"]); ok {
		cfg.StoreKind = v
	}
	if v, ok := asString(raw["db_path"]); ok {
		cfg.DBPath = v
	}

	return cfg, nil
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case float64:
		return int(x), true
	default:
		return 0, false
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case int:
		return int64(x), true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}
