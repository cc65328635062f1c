// Package model holds the plain data records shared across the effort
// model, the evolutionary loop, and persistence.
package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// KeyPosition is the physical location and row/column of one key, in the
// fixed input order the caller supplies.
type KeyPosition struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Row    int     `json:"row"`
	Column int     `json:"column"`
}

// Layout is a permutation: one character per key index. Its length always
// equals the number of key positions, and every character in the
// configured alphabet appears exactly once.
type Layout []rune

// Clone returns an independent copy of the layout.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// String renders the layout as a plain string, in key order.
func (l Layout) String() string {
	return string(l)
}

// CharFrequency is a parallel table of characters to their proportion of
// occurrence in the corpus used to fit a layout; it sums to approximately 1.
type CharFrequency struct {
	Chars []rune
	Freq  []float64
}

// Weights are the five effort-model term weights of the evaluator.
type Weights struct {
	Base       float64 `json:"w_base"`
	SameFinger float64 `json:"w_same_finger"`
	SameHand   float64 `json:"w_same_hand"`
	RowChange  float64 `json:"w_row_change"`
	Trigram    float64 `json:"w_trigram"`
}

// DefaultWeights returns the defaults named in the effort model.
func DefaultWeights() Weights {
	return Weights{
		Base:       1.0,
		SameFinger: 3.0,
		SameHand:   1.0,
		RowChange:  0.5,
		Trigram:    0.3,
	}
}

// EffortBreakdown is the itemized, unweighted effort over a corpus for one
// layout, plus the bigram/trigram counts observed while traversing it.
type EffortBreakdown struct {
	BaseEffort       float64 `json:"base_effort"`
	SameFingerEffort float64 `json:"same_finger_effort"`
	SameHandEffort   float64 `json:"same_hand_effort"`
	RowChangeEffort  float64 `json:"row_change_effort"`
	TrigramEffort    float64 `json:"trigram_effort"`
	TotalEffort      float64 `json:"total_effort"`

	SameFingerBigrams int `json:"same_finger_bigrams"`
	SameHandBigrams   int `json:"same_hand_bigrams"`
	HandAlternations  int `json:"hand_alternations"`
	SameHandTrigrams  int `json:"same_hand_trigrams"`
}

// GAParams configures one evolutionary-loop run.
type GAParams struct {
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	MutationRate   float64 `json:"mutation_rate"`
	CrossoverRate  float64 `json:"crossover_rate"`
	TournamentSize int     `json:"tournament_size"`
	EliteCount     int     `json:"elite_count"`
	Workers        int     `json:"workers"`
	Seed           int64   `json:"seed"`
}

// DefaultGAParams returns the defaults named in the external interfaces.
func DefaultGAParams() GAParams {
	return GAParams{
		PopulationSize: 100,
		Generations:    500,
		MutationRate:   0.1,
		CrossoverRate:  0.8,
		TournamentSize: 5,
		EliteCount:     2,
		Workers:        1,
		Seed:           0,
	}
}

// GenerationDiagnostics is one generation's recorded statistics from an
// evolutionary run, persisted alongside the plain history arrays.
type GenerationDiagnostics struct {
	Generation          int     `json:"generation"`
	BestFitness         float64 `json:"best_fitness"`
	MeanFitness         float64 `json:"mean_fitness"`
	MinFitness          float64 `json:"min_fitness"`
	PopulationDiversity int     `json:"population_diversity"`
}

// OptimizationRun is the persisted record of one optimize_keyboard_layout
// call.
type OptimizationRun struct {
	VersionedRecord
	RunID        string    `json:"run_id"`
	CreatedAtUTC string    `json:"created_at_utc"`
	Params       GAParams  `json:"params"`
	BestLayout   string    `json:"best_layout"`
	BestEffort   float64   `json:"best_effort"`
	HistoryBest  []float64 `json:"history_best"`
	HistoryMean  []float64 `json:"history_mean"`
}

// TopLayoutRecord is one of the best distinct layouts seen in a run's
// final population.
type TopLayoutRecord struct {
	Layout string  `json:"layout"`
	Effort float64 `json:"effort"`
}
