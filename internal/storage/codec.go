package storage

import (
	"encoding/json"
	"errors"

	"keyopt/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRun(r model.OptimizationRun) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.OptimizationRun, error) {
	var run model.OptimizationRun
	if err := json.Unmarshal(data, &run); err != nil {
		return model.OptimizationRun{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.OptimizationRun{}, err
	}
	return run, nil
}

func EncodeGenerationDiagnostics(diagnostics []model.GenerationDiagnostics) ([]byte, error) {
	return json.Marshal(diagnostics)
}

func DecodeGenerationDiagnostics(data []byte) ([]model.GenerationDiagnostics, error) {
	var diagnostics []model.GenerationDiagnostics
	if err := json.Unmarshal(data, &diagnostics); err != nil {
		return nil, err
	}
	return diagnostics, nil
}

func EncodeTopLayouts(top []model.TopLayoutRecord) ([]byte, error) {
	return json.Marshal(top)
}

func DecodeTopLayouts(data []byte) ([]model.TopLayoutRecord, error) {
	var top []model.TopLayoutRecord
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}
	return top, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
