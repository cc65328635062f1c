package evo

import (
	"keyopt/internal/geometry"
	"keyopt/internal/model"
	"keyopt/internal/rules"
)

// EffortPostprocessor adjusts raw effort scores after evaluation and before
// ranking/selection. This is where the optional soft-constraint penalties
// of spec.md §4.6 attach to the base effort score, keeping the pure effort
// model itself free of that concern.
type EffortPostprocessor interface {
	Name() string
	Process(scored []ScoredLayout) []ScoredLayout
}

// NoopEffortPostprocessor leaves every score unchanged.
type NoopEffortPostprocessor struct{}

func (NoopEffortPostprocessor) Name() string { return "none" }

func (NoopEffortPostprocessor) Process(scored []ScoredLayout) []ScoredLayout {
	return cloneScored(scored)
}

// RulesPostprocessor adds the configured rule penalties to each layout's
// raw effort, implementing "total effort with rules = base effort + sum of
// enabled rule penalties" (spec.md §4.6).
type RulesPostprocessor struct {
	Geometry geometry.Index
	Freq     model.CharFrequency
	Rules    rules.Config
}

func (RulesPostprocessor) Name() string { return "rules" }

func (p RulesPostprocessor) Process(scored []ScoredLayout) []ScoredLayout {
	out := cloneScored(scored)
	for i := range out {
		out[i].Effort += rules.Penalty(p.Geometry, out[i].Layout, p.Freq, p.Rules)
	}
	return out
}

func cloneScored(scored []ScoredLayout) []ScoredLayout {
	out := make([]ScoredLayout, len(scored))
	copy(out, scored)
	return out
}
