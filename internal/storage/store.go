package storage

import (
	"context"

	"keyopt/internal/model"
)

// Store defines transaction-like persistence for optimization runs and the
// per-generation and per-layout records attached to them.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run model.OptimizationRun) error
	GetRun(ctx context.Context, runID string) (model.OptimizationRun, bool, error)
	ListRuns(ctx context.Context) ([]model.OptimizationRun, error)
	SaveGenerationDiagnostics(ctx context.Context, runID string, diagnostics []model.GenerationDiagnostics) error
	GetGenerationDiagnostics(ctx context.Context, runID string) ([]model.GenerationDiagnostics, bool, error)
	SaveTopLayouts(ctx context.Context, runID string, top []model.TopLayoutRecord) error
	GetTopLayouts(ctx context.Context, runID string) ([]model.TopLayoutRecord, bool, error)
}
