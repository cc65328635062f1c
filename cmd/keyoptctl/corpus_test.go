package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUniformFrequencySumsToOne(t *testing.T) {
	freq := uniformFrequency("abcd")
	var sum float64
	for _, f := range freq.Freq {
		sum += f
	}
	if sum < 0.999 || sum > 1.001 {
		t.Fatalf("expected frequencies to sum to 1, got %f", sum)
	}
}

func TestLoadCorpusDefaultsToBuiltInSample(t *testing.T) {
	samples, err := loadCorpus("")
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	if len(samples) != 1 {
		t.Fatalf("expected one built-in sample, got %d", len(samples))
	}
}

func TestLoadCorpusReadsCommaSeparatedFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(a, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("world"), 0o644); err != nil {
		t.Fatal(err)
	}

	samples, err := loadCorpus(a + "," + b)
	if err != nil {
		t.Fatalf("load corpus: %v", err)
	}
	if len(samples) != 2 || samples[0] != "hello" || samples[1] != "world" {
		t.Fatalf("unexpected samples: %v", samples)
	}
}

func TestLoadCorpusMissingFileErrors(t *testing.T) {
	if _, err := loadCorpus(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatal("expected error for missing corpus file")
	}
}

func TestParseLayoutSplitsIntoRunes(t *testing.T) {
	l := parseLayout("abc")
	if len(l) != 3 {
		t.Fatalf("expected layout of length 3, got %d", len(l))
	}
}
