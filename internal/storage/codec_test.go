package storage

import (
	"errors"
	"reflect"
	"testing"

	"keyopt/internal/model"
)

func TestRunCodecRoundTrip(t *testing.T) {
	input := model.OptimizationRun{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion},
		RunID:           "run-1",
		CreatedAtUTC:    "2026-08-06T00:00:00Z",
		Params:          model.DefaultGAParams(),
		BestLayout:      "qwertyuiopasdfghjkl;zxcvbnm,./",
		BestEffort:      31.5,
		HistoryBest:     []float64{40, 35, 31.5},
		HistoryMean:     []float64{50, 45, 40},
	}

	encoded, err := EncodeRun(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeRun(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, input) {
		t.Fatalf("decoded run mismatch\ngot=%+v\nwant=%+v", decoded, input)
	}
}

func TestRunCodecVersionMismatch(t *testing.T) {
	input := model.OptimizationRun{
		VersionedRecord: model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion + 1},
		RunID:           "run-1",
	}
	encoded, err := EncodeRun(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, err = DecodeRun(encoded)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got: %v", err)
	}
}

func TestGenerationDiagnosticsCodecRoundTrip(t *testing.T) {
	input := []model.GenerationDiagnostics{
		{Generation: 1, BestFitness: 31.0, MeanFitness: 40.0, MinFitness: 31.0, PopulationDiversity: 20},
		{Generation: 2, BestFitness: 28.0, MeanFitness: 36.0, MinFitness: 28.0, PopulationDiversity: 18},
	}
	encoded, err := EncodeGenerationDiagnostics(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeGenerationDiagnostics(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, input) {
		t.Fatalf("decoded diagnostics mismatch: got=%+v want=%+v", decoded, input)
	}
}

func TestTopLayoutsCodecRoundTrip(t *testing.T) {
	input := []model.TopLayoutRecord{
		{Layout: "qwertyuiopasdfghjkl;zxcvbnm,./", Effort: 31.0},
		{Layout: "qwfpgjluyarstdhneiozxcvbkm,./;", Effort: 28.0},
	}
	encoded, err := EncodeTopLayouts(input)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	decoded, err := DecodeTopLayouts(encoded)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(decoded, input) {
		t.Fatalf("decoded top layouts mismatch: got=%+v want=%+v", decoded, input)
	}
}
