// Package application holds the state container that owns the transport
// graph and constraint cache and exposes the engine's four operations.
package application

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wyfcoding/freightroute/internal/freight/domain"
	"github.com/wyfcoding/freightroute/internal/platform/metrics"
	"github.com/wyfcoding/freightroute/internal/platform/tracing"
)

// Engine is the state container of spec.md §2/§5: it owns the current
// transport graph and constraint cache behind a sync.RWMutex and exposes
// OptimizeRoutes, EvaluateConstraints, GetGraphStatus and ReloadGraph.
// OptimizeRoutes and EvaluateConstraints take RLock only long enough to copy
// the current graph and cache pointers, then work on that snapshot, which is
// never mutated once published; GetGraphStatus holds RLock while it reads.
// ReloadGraph builds the replacement graph fully out-of-band and takes Lock
// only long enough to swap the pointers.
type Engine struct {
	mu         sync.RWMutex
	graph      *domain.TransportGraph
	cache      *domain.ConstraintCache

	graphSource      GraphSource
	constraintSource ConstraintSource
	audit            AuditStore

	logger  *slog.Logger
	metrics *metrics.Metrics

	materializeWorkers int
	defaultMaxRoutes   int
	defaultMaxSegments int
}

// NewEngine builds an Engine starting from an empty graph and cache — the
// first reload populates both, and the engine is usable (returning empty
// results) before that completes, per spec.md §7's startup semantics.
func NewEngine(graphSource GraphSource, constraintSource ConstraintSource, audit AuditStore, logger *slog.Logger, m *metrics.Metrics, materializeWorkers, defaultMaxRoutes, defaultMaxSegments int) *Engine {
	return &Engine{
		graph:              domain.NewTransportGraph(),
		cache:              domain.NewConstraintCache(),
		graphSource:        graphSource,
		constraintSource:   constraintSource,
		audit:              audit,
		logger:             logger,
		metrics:            m,
		materializeWorkers: materializeWorkers,
		defaultMaxRoutes:   defaultMaxRoutes,
		defaultMaxSegments: defaultMaxSegments,
	}
}

// applyDefaults fills unset MaxRoutes/MaxSegments with the engine's
// configured defaults, so callers (HTTP DTOs in particular) need not.
func (e *Engine) applyDefaults(req *domain.OptimizeRequest) {
	if req.MaxRoutes <= 0 {
		req.MaxRoutes = e.defaultMaxRoutes
	}
	if req.MaxSegments <= 0 {
		req.MaxSegments = e.defaultMaxSegments
	}
}

// OptimizeResult is the outcome of one OptimizeRoutes call: the ranked,
// truncated route list plus the observability fields spec.md §6 op 1
// requires callers to be able to surface (candidates_evaluated,
// optimization_time_ms).
type OptimizeResult struct {
	Routes                 []*domain.CandidateRoute
	CandidatesEvaluated    int
	OptimizationTimeMillis int64
}

// OptimizeRoutes runs the full search → materialize → constrain → rank
// pipeline of spec.md §4 on the graph snapshot taken under a read lock,
// returning the final ordered, truncated candidate list alongside the
// candidate count and elapsed time.
func (e *Engine) OptimizeRoutes(ctx context.Context, req *domain.OptimizeRequest) (*OptimizeResult, error) {
	if err := domain.ValidateRequest(req); err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "Engine.OptimizeRoutes")
	defer span.End()

	start := time.Now()
	requestID := uuid.NewString()

	e.mu.RLock()
	graph := e.graph
	cache := e.cache
	e.mu.RUnlock()

	// Before the first successful reload the graph is empty: the request
	// runs through and succeeds with no routes instead of an unknown-code error.
	if graph.NodeCount() > 0 {
		if _, ok := graph.GetNode(req.OriginCode); !ok {
			return nil, domain.ErrUnknownOrigin
		}
		if _, ok := graph.GetNode(req.DestinationCode); !ok {
			return nil, domain.ErrUnknownDestination
		}
	}

	e.applyDefaults(req)

	weightKg := decimal.NewFromFloat(req.WeightKg)
	paths := domain.FindKShortestPaths(graph, req, weightKg)

	workers := e.materializeWorkers
	if workers <= 0 {
		workers = DefaultMaterializeWorkers()
	}
	routes := domain.MaterializePaths(ctx, paths, req.OriginCode, req, cache, graph, workers)

	engine := domain.NewConstraintEngine(cache)
	var admissible []*domain.CandidateRoute
	for _, r := range routes {
		r.ConstraintResults = engine.Evaluate(r, req, graph)
		if r.Admissible() {
			admissible = append(admissible, r)
		}
	}

	domain.AssignParetoRanks(admissible)
	domain.AssignWeightedScores(admissible, req)
	result := domain.SortAndTruncate(admissible, req.MaxRoutes)

	elapsed := time.Since(start)
	if e.metrics != nil {
		e.metrics.SearchDuration.Observe(elapsed.Seconds())
		e.metrics.CandidatesEvaluated.Observe(float64(len(routes)))
	}

	if e.audit != nil {
		go func() {
			auditCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := e.audit.RecordOptimization(auditCtx, OptimizationAudit{
				RequestID:       requestID,
				OriginCode:      req.OriginCode,
				DestinationCode: req.DestinationCode,
				CandidateCount:  len(routes),
				RouteCount:      len(result),
				ElapsedMillis:   elapsed.Milliseconds(),
			}); err != nil {
				e.logger.Warn("audit write failed", "error", err, "request_id", requestID)
			}
		}()
	}

	e.logger.Info("optimized route",
		"request_id", requestID,
		"origin", req.OriginCode,
		"destination", req.DestinationCode,
		"candidates", len(routes),
		"admissible", len(admissible),
		"returned", len(result),
		"elapsed_ms", elapsed.Milliseconds(),
	)

	return &OptimizeResult{
		Routes:                 result,
		CandidatesEvaluated:    len(routes),
		OptimizationTimeMillis: elapsed.Milliseconds(),
	}, nil
}

// EvaluateConstraints re-scores a single already-materialized route against
// a request, without re-running the search. Used to let a caller probe
// constraint outcomes for a route it already has in hand.
func (e *Engine) EvaluateConstraints(ctx context.Context, route *domain.CandidateRoute, req *domain.OptimizeRequest) []domain.ConstraintResult {
	_, span := tracing.StartSpan(ctx, "Engine.EvaluateConstraints")
	defer span.End()

	e.mu.RLock()
	graph := e.graph
	cache := e.cache
	e.mu.RUnlock()

	engine := domain.NewConstraintEngine(cache)
	return engine.Evaluate(route, req, graph)
}

// GraphStatus is the read-only snapshot returned by GetGraphStatus.
type GraphStatus struct {
	NodeCount       int
	EdgeCount       int
	EdgeCountByMode map[domain.TransportMode]int
	LoadedAt        time.Time
	LoadTimeMillis  int64
}

// GetGraphStatus reports the currently-loaded graph's size and freshness.
func (e *Engine) GetGraphStatus() GraphStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return GraphStatus{
		NodeCount:       e.graph.NodeCount(),
		EdgeCount:       e.graph.EdgeCount(),
		EdgeCountByMode: e.graph.EdgeCountByMode(),
		LoadedAt:        e.graph.LoadedAt(),
		LoadTimeMillis:  e.graph.LoadTimeMillis(),
	}
}

// ReloadGraph fetches a full replacement graph and constraint cache from
// the configured collaborators and swaps them in atomically. On source
// failure it logs and keeps the current graph/cache untouched.
func (e *Engine) ReloadGraph(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "Engine.ReloadGraph")
	defer span.End()

	start := time.Now()

	newGraph, err := e.graphSource.LoadGraph(ctx)
	if err != nil {
		e.recordReload(start, false)
		e.logger.Error("graph reload failed", "error", err)
		return err
	}
	newGraph.SetLoadStats(start, time.Since(start))

	newCache, err := e.constraintSource.LoadConstraints(ctx)
	if err != nil {
		e.recordReload(start, false)
		e.logger.Error("constraint reload failed", "error", err)
		return err
	}

	e.mu.Lock()
	e.graph = newGraph
	e.cache = newCache
	e.mu.Unlock()

	e.recordReload(start, true)
	e.logger.Info("graph reloaded", "nodes", newGraph.NodeCount(), "edges", newGraph.EdgeCount())
	return nil
}

func (e *Engine) recordReload(start time.Time, success bool) {
	if e.metrics == nil {
		return
	}
	e.metrics.ReloadDuration.Observe(time.Since(start).Seconds())
	if success {
		e.metrics.ReloadSuccess.Inc()
	} else {
		e.metrics.ReloadFailure.Inc()
	}
}

// DefaultMaterializeWorkers mirrors runtime.GOMAXPROCS(0) for callers that
// want the same default the engine applies when configured with 0.
func DefaultMaterializeWorkers() int {
	return runtime.GOMAXPROCS(0)
}
