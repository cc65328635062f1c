package main

import (
	"context"
	"testing"
)

func TestRunOptimizeCommandWithMemoryStoreSucceeds(t *testing.T) {
	args := []string{
		"optimize",
		"--store", "memory",
		"--pop", "6",
		"--gens", "2",
		"--seed", "11",
		"--workers", "2",
	}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("optimize command: %v", err)
	}
}

func TestRunOptimizeCommandWithCrossoverProfile(t *testing.T) {
	args := []string{"optimize", "--no-store", "--pop", "6", "--gens", "2", "--seed", "5", "--crossover", "pmx"}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("optimize command: %v", err)
	}
}

func TestRunOptimizeCommandRejectsUnknownCrossoverProfile(t *testing.T) {
	args := []string{"optimize", "--no-store", "--pop", "6", "--gens", "2", "--crossover", "bogus"}
	if err := run(context.Background(), args); err == nil {
		t.Fatal("expected error for unknown crossover profile")
	}
}

func TestRunOptimizeCommandNoStoreSkipsPersistence(t *testing.T) {
	args := []string{"optimize", "--no-store", "--pop", "6", "--gens", "2", "--seed", "3"}
	if err := run(context.Background(), args); err != nil {
		t.Fatalf("optimize command: %v", err)
	}
}

func TestRunMissingCommandIsUsageError(t *testing.T) {
	if err := run(context.Background(), nil); err == nil {
		t.Fatal("expected usage error for missing command")
	}
}

func TestRunUnknownCommandIsUsageError(t *testing.T) {
	if err := run(context.Background(), []string{"bogus"}); err == nil {
		t.Fatal("expected usage error for unknown command")
	}
}

func TestRunTopRequiresRunIDOrLatest(t *testing.T) {
	if err := run(context.Background(), []string{"top", "--store", "memory"}); err == nil {
		t.Fatal("expected error when neither --run-id nor --latest is given")
	}
}

func TestRunExportLatestFailsAcrossMemoryStoreInstances(t *testing.T) {
	if err := run(context.Background(), []string{"optimize", "--store", "memory", "--pop", "6", "--gens", "2", "--seed", "7"}); err != nil {
		t.Fatalf("optimize command: %v", err)
	}
	if err := run(context.Background(), []string{"export", "--store", "memory", "--latest", "--out", t.TempDir()}); err == nil {
		t.Fatal("expected export to fail: memory store does not persist across separate client instances")
	}
}
