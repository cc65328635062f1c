package effort

import (
	"fmt"
	"strings"
	"unicode"

	"keyopt/internal/geometry"
	"keyopt/internal/model"
)

// Evaluator holds the inputs that stay fixed across many layout
// evaluations: the geometry, the case-folded corpus, and the frequency
// table. These fields are never mutated after New returns, so a single
// Evaluator may be shared and called concurrently from multiple
// goroutines — each call builds its own local position table.
type Evaluator struct {
	geo       geometry.Index
	corpus    string
	freq      model.CharFrequency
	corpusLen float64
}

// New builds an evaluator from raw text samples, joined with single spaces
// and case-folded, per the corpus data-model definition.
func New(geo geometry.Index, textSamples []string, freq model.CharFrequency) (*Evaluator, error) {
	if len(freq.Chars) != len(freq.Freq) {
		return nil, fmt.Errorf("effort: char_list and char_freq length mismatch: %d != %d", len(freq.Chars), len(freq.Freq))
	}
	for i, f := range freq.Freq {
		if f < 0 {
			return nil, fmt.Errorf("effort: char_freq[%d] is negative", i)
		}
	}
	corpus := strings.ToLower(strings.Join(textSamples, " "))
	return &Evaluator{
		geo:       geo,
		corpus:    corpus,
		freq:      freq,
		corpusLen: float64(len([]rune(corpus))),
	}, nil
}

// positionTable builds the character-to-position lookup table for a layout.
// Uppercase letters alias to their lowercase position, and vice versa.
// Rebuilt fresh on every call; spec.md §9 notes that reusing the table and
// updating only the swapped entries is a valid optimization but explicitly
// not part of the contract.
func (e *Evaluator) positionTable(layout model.Layout) (map[rune]int, error) {
	if len(layout) != len(e.geo.Keys) {
		return nil, fmt.Errorf("effort: layout length %d does not match geometry length %d", len(layout), len(e.geo.Keys))
	}
	posOf := make(map[rune]int, len(layout)*2)
	for i, c := range layout {
		if _, dup := posOf[c]; dup {
			return nil, fmt.Errorf("effort: layout contains duplicate character %q", c)
		}
		posOf[c] = i
		if lower := unicode.ToLower(c); lower != c {
			posOf[lower] = i
		} else if upper := unicode.ToUpper(c); upper != c {
			posOf[upper] = i
		}
	}
	return posOf, nil
}

func lookup(posOf map[rune]int, c rune) (int, bool) {
	if pos, ok := posOf[c]; ok {
		return pos, true
	}
	if lower := unicode.ToLower(c); lower != c {
		pos, ok := posOf[lower]
		return pos, ok
	}
	return 0, false
}

// Evaluate returns the weighted effort score for a layout: lower is better.
func (e *Evaluator) Evaluate(layout model.Layout, weights model.Weights) (float64, error) {
	b, err := e.breakdown(layout)
	if err != nil {
		return 0, err
	}
	return weightedTotal(b, weights), nil
}

func weightedTotal(b model.EffortBreakdown, w model.Weights) float64 {
	return w.Base*b.BaseEffort +
		w.SameFinger*b.SameFingerEffort +
		w.SameHand*b.SameHandEffort +
		w.RowChange*b.RowChangeEffort +
		w.Trigram*b.TrigramEffort
}

// Breakdown returns the itemized, unweighted effort components and their
// counts, plus a total_effort computed with the default weights, per the
// effort_breakdown external operation.
func (e *Evaluator) Breakdown(layout model.Layout) (model.EffortBreakdown, error) {
	return e.breakdown(layout)
}

func (e *Evaluator) breakdown(layout model.Layout) (model.EffortBreakdown, error) {
	posOf, err := e.positionTable(layout)
	if err != nil {
		return model.EffortBreakdown{}, err
	}

	var b model.EffortBreakdown

	for i, c := range e.freq.Chars {
		pos, ok := lookup(posOf, c)
		if !ok {
			continue
		}
		b.BaseEffort += BaseKey(e.geo.Keys[pos]) * e.freq.Freq[i] * e.corpusLen
	}

	prevPos, prevPrevPos := -1, -1
	for _, r := range e.corpus {
		currPos, ok := lookup(posOf, r)
		if !ok {
			prevPrevPos, prevPos = -1, -1
			continue
		}

		if prevPos >= 0 {
			prev := e.geo.Keys[prevPos]
			curr := e.geo.Keys[currPos]
			switch {
			case prev.Finger == curr.Finger:
				b.SameFingerBigrams++
				b.SameFingerEffort += SameFinger(prev, curr)
			case prev.Hand == curr.Hand:
				b.SameHandBigrams++
				b.SameHandEffort += SameHandRoll(prev, curr)
				b.RowChangeEffort += RowChange(prev, curr)
			default:
				b.HandAlternations++
			}
		}

		if prevPrevPos >= 0 && prevPos >= 0 {
			k0 := e.geo.Keys[prevPrevPos]
			k1 := e.geo.Keys[prevPos]
			k2 := e.geo.Keys[currPos]
			if k0.Hand == k1.Hand && k1.Hand == k2.Hand {
				b.SameHandTrigrams++
				b.TrigramEffort += SameHandTrigram(k0.Finger, k1.Finger, k2.Finger)
			}
		}

		prevPrevPos, prevPos = prevPos, currPos
	}

	b.TotalEffort = weightedTotal(b, model.DefaultWeights())
	return b, nil
}
