package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMergesFileOntoDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_config.json")
	payload := map[string]any{
		"population_size": 40,
		"generations":     150,
		"seed":            99,
		"geometry_preset": "ortholinear30",
		"rules_profile":   "balanced-hands",
		"weights": map[string]any{
			"same_finger": 4.5,
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Params.PopulationSize != 40 || cfg.Params.Generations != 150 || cfg.Params.Seed != 99 {
		t.Fatalf("unexpected params: %+v", cfg.Params)
	}
	if cfg.GeometryPreset != "ortholinear30" || cfg.RulesProfile != "balanced-hands" {
		t.Fatalf("unexpected presets: geometry=%s rules=%s", cfg.GeometryPreset, cfg.RulesProfile)
	}
	if cfg.Weights.SameFinger != 4.5 {
		t.Fatalf("unexpected weight override: %+v", cfg.Weights)
	}
	// Fields not present in the file keep the defaults.
	if cfg.Params.MutationRate != DefaultRunConfig().Params.MutationRate {
		t.Fatalf("expected default mutation rate to survive merge, got %f", cfg.Params.MutationRate)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg != DefaultRunConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
