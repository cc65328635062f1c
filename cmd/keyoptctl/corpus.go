package main

import (
	"os"
	"strings"

	"keyopt/internal/model"
)

const defaultAlphabet = "qwertyuiopasdfghjkl;zxcvbnm,./"

func parseLayout(raw string) model.Layout {
	return model.Layout([]rune(raw))
}

// uniformFrequency builds a flat character-frequency table over an
// alphabet, for callers that have a corpus but no separate frequency
// table: every character is weighted equally, and Evaluate still derives
// its dynamic terms from the corpus's actual character order.
func uniformFrequency(alphabet string) model.CharFrequency {
	chars := []rune(alphabet)
	freq := make([]float64, len(chars))
	for i := range freq {
		freq[i] = 1.0 / float64(len(chars))
	}
	return model.CharFrequency{Chars: chars, Freq: freq}
}

// loadCorpus reads one or more corpus files, comma-separated in paths, and
// returns their contents as text samples. An empty paths argument falls
// back to a single built-in sample so the CLI is usable without a corpus
// file on hand.
func loadCorpus(paths string) ([]string, error) {
	if paths == "" {
		return []string{"the quick brown fox jumps over the lazy dog"}, nil
	}
	var samples []string
	for _, p := range strings.Split(paths, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		samples = append(samples, string(data))
	}
	return samples, nil
}
