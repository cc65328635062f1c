package evo

import (
	"math/rand"
	"testing"

	"keyopt/internal/model"
)

func scoredLayouts() []ScoredLayout {
	return []ScoredLayout{
		{Layout: model.Layout([]rune("a")), Effort: 10},
		{Layout: model.Layout([]rune("b")), Effort: 5},
		{Layout: model.Layout([]rune("c")), Effort: 1},
		{Layout: model.Layout([]rune("d")), Effort: 20},
	}
}

func TestEliteSelectorOnlyPicksFromTopN(t *testing.T) {
	ranked := scoredLayouts() // not pre-sorted on purpose; caller is expected to sort before selection
	sorted := []ScoredLayout{ranked[2], ranked[1], ranked[0], ranked[3]} // c(1), b(5), a(10), d(20)
	selector := EliteSelector{EliteCount: 2}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 20; i++ {
		picked, err := selector.PickParent(rng, sorted)
		if err != nil {
			t.Fatalf("PickParent: %v", err)
		}
		s := string(picked)
		if s != "c" && s != "b" {
			t.Fatalf("EliteSelector picked outside the top 2: %q", s)
		}
	}
}

func TestEliteSelectorRejectsInvalidCount(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	selector := EliteSelector{EliteCount: 0}
	if _, err := selector.PickParent(rng, scoredLayouts()); err == nil {
		t.Fatal("expected an error for a zero elite count")
	}
}

func TestTournamentSelectorPrefersLowerEffort(t *testing.T) {
	sorted := []ScoredLayout{
		{Layout: model.Layout([]rune("best")), Effort: 1},
		{Layout: model.Layout([]rune("mid")), Effort: 10},
		{Layout: model.Layout([]rune("worst")), Effort: 100},
	}
	selector := TournamentSelector{TournamentSize: 3}
	rng := rand.New(rand.NewSource(2))
	// A twin stream replays the candidate draws PickParent makes, so each
	// pick can be checked against the lowest-effort sampled candidate.
	replay := rand.New(rand.NewSource(2))

	counts := map[string]int{}
	for i := 0; i < 200; i++ {
		picked, err := selector.PickParent(rng, sorted)
		if err != nil {
			t.Fatalf("PickParent: %v", err)
		}
		want := sorted[replay.Intn(len(sorted))]
		for k := 1; k < selector.TournamentSize; k++ {
			if c := sorted[replay.Intn(len(sorted))]; c.Effort < want.Effort {
				want = c
			}
		}
		if string(picked) != string(want.Layout) {
			t.Fatalf("pick %d = %q, want lowest-effort sampled candidate %q", i, picked, want.Layout)
		}
		counts[string(picked)]++
	}
	// Candidates are sampled with replacement, so even a tournament as large
	// as the population can miss the best individual; it still wins most
	// often, and lower effort is always picked more often than higher.
	if counts["best"] <= counts["mid"] || counts["mid"] <= counts["worst"] {
		t.Fatalf("expected picks to favour lower effort, got %v", counts)
	}
}

func TestTournamentSelectorDefaultSize(t *testing.T) {
	sorted := scoredLayouts()
	selector := TournamentSelector{}
	rng := rand.New(rand.NewSource(3))
	if _, err := selector.PickParent(rng, sorted); err != nil {
		t.Fatalf("PickParent with default tournament size: %v", err)
	}
}

func TestTournamentSelectorRejectsEmptyPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	selector := TournamentSelector{TournamentSize: 5}
	if _, err := selector.PickParent(rng, nil); err == nil {
		t.Fatal("expected an error for an empty population")
	}
}
