package stats

import (
	"strings"
	"testing"

	"keyopt/internal/model"
)

func TestSparklineLengthMatchesInput(t *testing.T) {
	values := []float64{50, 45, 40, 38, 31}
	line := Sparkline(values)
	if len([]rune(line)) != len(values) {
		t.Fatalf("len(line) = %d, want %d", len([]rune(line)), len(values))
	}
}

func TestSparklineFlatSeriesIsUniform(t *testing.T) {
	values := []float64{10, 10, 10, 10}
	line := Sparkline(values)
	runes := []rune(line)
	for _, r := range runes[1:] {
		if r != runes[0] {
			t.Fatalf("expected flat sparkline, got %q", line)
		}
	}
}

func TestSparklineEmptyInput(t *testing.T) {
	if Sparkline(nil) != "" {
		t.Fatal("expected empty sparkline for empty input")
	}
}

func TestDownsamplePlotKeepsEndpoints(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}
	out := DownsamplePlot(values, 10)
	if len(out) != 10 {
		t.Fatalf("len(out) = %d, want 10", len(out))
	}
	if out[0] != values[0] || out[len(out)-1] != values[len(values)-1] {
		t.Fatalf("expected endpoints preserved, got first=%f last=%f", out[0], out[len(out)-1])
	}
}

func TestDownsamplePlotPassesThroughShortSeries(t *testing.T) {
	values := []float64{1, 2, 3}
	out := DownsamplePlot(values, 10)
	if len(out) != len(values) {
		t.Fatalf("expected series shorter than n to pass through unchanged")
	}
}

func TestSummaryTableContainsRunFields(t *testing.T) {
	run := model.OptimizationRun{
		RunID:        "run-1",
		CreatedAtUTC: "2026-08-06T00:00:00Z",
		Params:       model.DefaultGAParams(),
		BestLayout:   "qwertyuiopasdfghjkl;zxcvbnm,./",
		BestEffort:   31.5,
		HistoryBest:  []float64{40, 35, 31.5},
	}
	table := SummaryTable(run)
	for _, want := range []string{"run-1", "31.500000", "qwertyuiopasdfghjkl;zxcvbnm,./"} {
		if !strings.Contains(table, want) {
			t.Fatalf("expected summary table to contain %q, got:\n%s", want, table)
		}
	}
}

func TestBreakdownTableContainsAllTenFields(t *testing.T) {
	b := model.EffortBreakdown{
		BaseEffort: 1, SameFingerEffort: 2, SameHandEffort: 3, RowChangeEffort: 4, TrigramEffort: 5,
		TotalEffort: 6, SameFingerBigrams: 7, SameHandBigrams: 8, HandAlternations: 9, SameHandTrigrams: 10,
	}
	table := BreakdownTable(b)
	for _, field := range []string{
		"base_effort", "same_finger_effort", "same_hand_effort", "row_change_effort",
		"trigram_effort", "total_effort", "same_finger_bigrams", "same_hand_bigrams",
		"hand_alternations", "same_hand_trigrams",
	} {
		if !strings.Contains(table, field) {
			t.Fatalf("expected breakdown table to contain field %q", field)
		}
	}
}

func TestDiagnosticsTableRendersOneRowPerGeneration(t *testing.T) {
	rows := []model.GenerationDiagnostics{
		{Generation: 1, BestFitness: 40, MeanFitness: 45, MinFitness: 40, PopulationDiversity: 18},
		{Generation: 2, BestFitness: 35, MeanFitness: 41, MinFitness: 35, PopulationDiversity: 16},
	}
	table := DiagnosticsTable(rows)
	if got := strings.Count(table, "\n"); got != 3 {
		t.Fatalf("expected header + 2 rows (3 newlines), got %d", got)
	}
}

func TestTopLayoutsTableRendersOneRowPerLayout(t *testing.T) {
	rows := []model.TopLayoutRecord{
		{Layout: "qwertyuiopasdfghjkl;zxcvbnm,./", Effort: 31},
		{Layout: "qwfpgjluyarstdhneiozxcvbkm,./;", Effort: 28},
	}
	table := TopLayoutsTable(rows)
	if got := strings.Count(table, "\n"); got != 3 {
		t.Fatalf("expected header + 2 rows (3 newlines), got %d", got)
	}
}
