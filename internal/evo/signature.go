package evo

import "keyopt/internal/model"

// LayoutFingerprint returns a deterministic identity for a layout, used to
// count distinct layouts in a population for GenerationDiagnostics'
// population-diversity figure.
func LayoutFingerprint(layout model.Layout) string {
	return layout.String()
}

// PopulationDiversity counts the number of distinct layouts, by
// fingerprint, across a scored population.
func PopulationDiversity(scored []ScoredLayout) int {
	seen := make(map[string]struct{}, len(scored))
	for _, s := range scored {
		seen[LayoutFingerprint(s.Layout)] = struct{}{}
	}
	return len(seen)
}
