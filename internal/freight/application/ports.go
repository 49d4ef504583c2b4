package application

import (
	"context"

	"github.com/wyfcoding/freightroute/internal/freight/domain"
)

// GraphSource loads a full replacement transport graph from wherever the
// surrounding system keeps node/edge data (spec.md §6's remote graph data
// source). Implementations must build the graph completely before
// returning it; the engine never sees a partially-built graph.
type GraphSource interface {
	LoadGraph(ctx context.Context) (*domain.TransportGraph, error)
}

// ConstraintSource loads a full replacement constraint cache from wherever
// the surrounding system keeps constraint parameters (spec.md §6's
// constraint-parameter KV store).
type ConstraintSource interface {
	LoadConstraints(ctx context.Context) (*domain.ConstraintCache, error)
}

// AuditStore persists operational history for OptimizeRoutes calls
// (SPEC_FULL.md §4.11). Write failures are logged and swallowed by the
// engine; AuditStore implementations should not block the caller.
type AuditStore interface {
	RecordOptimization(ctx context.Context, rec OptimizationAudit) error
}

// OptimizationAudit is one row of audit history.
type OptimizationAudit struct {
	RequestID       string
	OriginCode      string
	DestinationCode string
	CandidateCount  int
	RouteCount      int
	ElapsedMillis   int64
}
