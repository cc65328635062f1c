// Package stats renders convergence and effort-breakdown reports for the
// CLI: a textual sparkline of history_best, a run summary table, and the
// ten-field effort_breakdown table, generalized from the teacher's
// benchmarker report and plot helpers from a fitness-per-topology-species
// axis to an effort-per-generation axis.
package stats

import (
	"fmt"
	"strings"

	"keyopt/internal/model"
)

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders a series of values as a single line of block
// characters, scaled between the series' own min and max. A series of one
// value, or all-equal values, renders as a flat line at the middle block.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	spread := max - min
	out := make([]rune, len(values))
	for i, v := range values {
		if spread == 0 {
			out[i] = sparkBlocks[len(sparkBlocks)/2]
			continue
		}
		frac := (v - min) / spread
		idx := int(frac * float64(len(sparkBlocks)-1))
		out[i] = sparkBlocks[idx]
	}
	return string(out)
}

// DownsamplePlot thins a series to at most n points, evenly spaced, for
// terse plotting of long runs. It always keeps the first and last point.
func DownsamplePlot(values []float64, n int) []float64 {
	if n <= 0 || len(values) <= n {
		return values
	}
	out := make([]float64, n)
	step := float64(len(values)-1) / float64(n-1)
	for i := 0; i < n; i++ {
		out[i] = values[int(float64(i)*step+0.5)]
	}
	return out
}

// SummaryTable renders a run's headline statistics as an aligned text
// table, in the teacher's fmt.Sprintf-per-row report style.
func SummaryTable(run model.OptimizationRun) string {
	var b strings.Builder
	fmt.Fprintf(&b, "run_id          %s\n", run.RunID)
	fmt.Fprintf(&b, "created_at_utc  %s\n", run.CreatedAtUTC)
	fmt.Fprintf(&b, "population_size %d\n", run.Params.PopulationSize)
	fmt.Fprintf(&b, "generations     %d\n", run.Params.Generations)
	fmt.Fprintf(&b, "seed            %d\n", run.Params.Seed)
	fmt.Fprintf(&b, "best_layout     %s\n", run.BestLayout)
	fmt.Fprintf(&b, "best_effort     %.6f\n", run.BestEffort)
	if len(run.HistoryBest) > 0 {
		fmt.Fprintf(&b, "convergence     %s\n", Sparkline(run.HistoryBest))
	}
	return b.String()
}

// BreakdownTable renders the ten effort_breakdown fields as an aligned text
// table, matching the C++ effort_breakdown export's field set.
func BreakdownTable(b model.EffortBreakdown) string {
	var out strings.Builder
	fmt.Fprintf(&out, "base_effort         %.6f\n", b.BaseEffort)
	fmt.Fprintf(&out, "same_finger_effort  %.6f\n", b.SameFingerEffort)
	fmt.Fprintf(&out, "same_hand_effort    %.6f\n", b.SameHandEffort)
	fmt.Fprintf(&out, "row_change_effort   %.6f\n", b.RowChangeEffort)
	fmt.Fprintf(&out, "trigram_effort      %.6f\n", b.TrigramEffort)
	fmt.Fprintf(&out, "total_effort        %.6f\n", b.TotalEffort)
	fmt.Fprintf(&out, "same_finger_bigrams %d\n", b.SameFingerBigrams)
	fmt.Fprintf(&out, "same_hand_bigrams   %d\n", b.SameHandBigrams)
	fmt.Fprintf(&out, "hand_alternations   %d\n", b.HandAlternations)
	fmt.Fprintf(&out, "same_hand_trigrams  %d\n", b.SameHandTrigrams)
	return out.String()
}

// DiagnosticsTable renders one row per recorded generation.
func DiagnosticsTable(rows []model.GenerationDiagnostics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-10s %-12s %-12s %-12s %s\n", "generation", "best", "mean", "min", "diversity")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-10d %-12.6f %-12.6f %-12.6f %d\n", r.Generation, r.BestFitness, r.MeanFitness, r.MinFitness, r.PopulationDiversity)
	}
	return b.String()
}

// TopLayoutsTable renders the distinct best layouts of a final population.
func TopLayoutsTable(rows []model.TopLayoutRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %s\n", "effort", "layout")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-12.6f %s\n", r.Effort, r.Layout)
	}
	return b.String()
}
