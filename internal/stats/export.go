package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"keyopt/internal/model"
)

// ExportBundle is the on-disk shape written by ExportRun: one JSON file per
// run, combining the run record with its generation history and top
// layouts so the bundle is self-contained.
type ExportBundle struct {
	Run        model.OptimizationRun         `json:"run"`
	History    []model.GenerationDiagnostics `json:"history"`
	TopLayouts []model.TopLayoutRecord       `json:"top_layouts"`
}

// ExportRun writes one run's bundle to <outDir>/<run_id>.json, creating
// outDir if needed, and returns the written path.
func ExportRun(outDir string, bundle ExportBundle) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("stats: create export dir: %w", err)
	}
	path := filepath.Join(outDir, bundle.Run.RunID+".json")

	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return "", fmt.Errorf("stats: marshal export bundle: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("stats: write export file: %w", err)
	}
	return path, nil
}
