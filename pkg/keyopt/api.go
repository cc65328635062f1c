// Package keyopt exposes the external interfaces of the effort model and
// the evolutionary optimizer as plain functions, plus a Client wrapping the
// persistence layer for callers that want past runs recorded and queried.
package keyopt

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"keyopt/internal/effort"
	"keyopt/internal/evo"
	"keyopt/internal/geometry"
	"keyopt/internal/model"
	"keyopt/internal/rules"
	"keyopt/internal/storage"
)

const defaultDBPath = "keyopt.db"

// Options configures a Client's persistence backend.
type Options struct {
	StoreKind string
	DBPath    string
}

// Client wraps the persistence layer so repeated calls can record and later
// retrieve optimization runs. The zero-value Options select the in-memory
// store, matching the teacher's pkg/protogonos Client shape.
type Client struct {
	store storage.Store
}

// New opens the configured store. Callers must call Init before using the
// client and Close when done.
func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Init(ctx context.Context) error {
	return c.store.Init(ctx)
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

// Reset re-initializes the backing store, discarding any persisted runs a
// memory-backed store held; a sqlite-backed store keeps its schema and
// simply drops nothing it didn't already own, matching Init's semantics.
func (c *Client) Reset(ctx context.Context) error {
	return c.store.Init(ctx)
}

// LayoutEffort is the layout_effort external operation: the weighted total
// effort of one layout over a corpus.
func LayoutEffort(geo geometry.Index, textSamples []string, freq model.CharFrequency, layout model.Layout, weights model.Weights) (float64, error) {
	ev, err := effort.New(geo, textSamples, freq)
	if err != nil {
		return 0, err
	}
	return ev.Evaluate(layout, weights)
}

// EffortBreakdown is the effort_breakdown external operation: the itemized,
// unweighted effort components and their counts for one layout.
func EffortBreakdown(geo geometry.Index, textSamples []string, freq model.CharFrequency, layout model.Layout) (model.EffortBreakdown, error) {
	ev, err := effort.New(geo, textSamples, freq)
	if err != nil {
		return model.EffortBreakdown{}, err
	}
	return ev.Breakdown(layout)
}

// RandomLayout is the random_layout auxiliary operation: a uniformly random
// permutation of the given alphabet.
func RandomLayout(rng *rand.Rand, alphabet []rune) model.Layout {
	out := make(model.Layout, len(alphabet))
	copy(out, alphabet)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// OptimizeRequest bundles the inputs to one optimize_keyboard_layout call.
type OptimizeRequest struct {
	RunID            string
	InitialLayout    model.Layout
	Geometry         geometry.Index
	TextSamples      []string
	CharFreq         model.CharFrequency
	Weights          model.Weights
	Params           model.GAParams
	Rules            rules.Config
	CrossoverProfile string
}

// OptimizeResult is the optimize_keyboard_layout return record.
type OptimizeResult struct {
	RunID          string
	Layout         model.Layout
	Effort         float64
	HistoryBest    []float64
	HistoryMean    []float64
	Generations    int
	PopulationSize int
}

// OptimizeKeyboardLayout is the optimize_keyboard_layout external
// operation. When store is non-nil the run, its per-generation diagnostics,
// and its top distinct final-population layouts are persisted under a
// generated or caller-supplied run ID; a nil store keeps this a pure
// library call, per spec.md §6.
func OptimizeKeyboardLayout(ctx context.Context, store storage.Store, req OptimizeRequest) (OptimizeResult, error) {
	ev, err := effort.New(req.Geometry, req.TextSamples, req.CharFreq)
	if err != nil {
		return OptimizeResult{}, err
	}

	var postprocessor evo.EffortPostprocessor = evo.NoopEffortPostprocessor{}
	if !isZeroRulesConfig(req.Rules) {
		postprocessor = evo.RulesPostprocessor{Geometry: req.Geometry, Freq: req.CharFreq, Rules: req.Rules}
	}

	var crossover evo.Crossover
	if req.CrossoverProfile != "" {
		crossover, err = evo.ResolveCrossover(req.CrossoverProfile)
		if err != nil {
			return OptimizeResult{}, err
		}
	}

	loop, err := evo.NewLoop(evo.LoopConfig{
		Evaluator:     ev,
		Weights:       req.Weights,
		Postprocessor: postprocessor,
		Crossover:     crossover,
		Params:        req.Params,
	})
	if err != nil {
		return OptimizeResult{}, err
	}

	result, err := loop.Run(ctx, req.InitialLayout)
	if err != nil {
		return OptimizeResult{}, err
	}

	out := OptimizeResult{
		RunID:          req.RunID,
		Layout:         result.BestLayout,
		Effort:         result.BestEffort,
		HistoryBest:    result.HistoryBest,
		HistoryMean:    result.HistoryMean,
		Generations:    result.Generations,
		PopulationSize: result.PopulationSize,
	}

	if store == nil {
		return out, nil
	}
	if out.RunID == "" {
		out.RunID = uuid.NewString()
	}

	run := model.OptimizationRun{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		RunID:        out.RunID,
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339),
		Params:       req.Params,
		BestLayout:   out.Layout.String(),
		BestEffort:   out.Effort,
		HistoryBest:  out.HistoryBest,
		HistoryMean:  out.HistoryMean,
	}
	if err := store.SaveRun(ctx, run); err != nil {
		return out, fmt.Errorf("keyopt: persist run: %w", err)
	}
	if err := store.SaveGenerationDiagnostics(ctx, out.RunID, result.Diagnostics); err != nil {
		return out, fmt.Errorf("keyopt: persist diagnostics: %w", err)
	}
	if err := store.SaveTopLayouts(ctx, out.RunID, topDistinctLayouts(result.FinalPopulation, 10)); err != nil {
		return out, fmt.Errorf("keyopt: persist top layouts: %w", err)
	}
	return out, nil
}

// OptimizeKeyboardLayout runs an optimization using the client's store.
func (c *Client) OptimizeKeyboardLayout(ctx context.Context, req OptimizeRequest) (OptimizeResult, error) {
	return OptimizeKeyboardLayout(ctx, c.store, req)
}

func (c *Client) ListRuns(ctx context.Context) ([]model.OptimizationRun, error) {
	return c.store.ListRuns(ctx)
}

func (c *Client) GetRun(ctx context.Context, runID string) (model.OptimizationRun, bool, error) {
	return c.store.GetRun(ctx, runID)
}

func (c *Client) GetHistory(ctx context.Context, runID string) ([]model.GenerationDiagnostics, bool, error) {
	return c.store.GetGenerationDiagnostics(ctx, runID)
}

func (c *Client) GetTopLayouts(ctx context.Context, runID string) ([]model.TopLayoutRecord, bool, error) {
	return c.store.GetTopLayouts(ctx, runID)
}

// LatestRunID returns the most recently created run's ID, for CLI flags
// that accept --latest in place of an explicit --run-id.
func (c *Client) LatestRunID(ctx context.Context) (string, bool, error) {
	runs, err := c.store.ListRuns(ctx)
	if err != nil {
		return "", false, err
	}
	if len(runs) == 0 {
		return "", false, nil
	}
	return runs[0].RunID, true, nil
}

func isZeroRulesConfig(cfg rules.Config) bool {
	return len(cfg.HandPreferences) == 0 && len(cfg.RowPreferences) == 0 && cfg.Balance.Weight == 0
}

// topDistinctLayouts returns up to limit of the best-scoring distinct
// layouts (by serialized key order) from a final population, ascending by
// effort.
func topDistinctLayouts(scored []evo.ScoredLayout, limit int) []model.TopLayoutRecord {
	seen := make(map[string]bool, len(scored))
	ordered := make([]evo.ScoredLayout, len(scored))
	copy(ordered, scored)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Effort < ordered[j].Effort })

	out := make([]model.TopLayoutRecord, 0, limit)
	for _, s := range ordered {
		key := s.Layout.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, model.TopLayoutRecord{Layout: key, Effort: s.Effort})
		if len(out) == limit {
			break
		}
	}
	return out
}
