package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/freightroute/internal/freight/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeGraphSource struct {
	graph *domain.TransportGraph
	err   error
}

func (f *fakeGraphSource) LoadGraph(ctx context.Context) (*domain.TransportGraph, error) {
	return f.graph, f.err
}

type fakeConstraintSource struct {
	cache *domain.ConstraintCache
	err   error
}

func (f *fakeConstraintSource) LoadConstraints(ctx context.Context) (*domain.ConstraintCache, error) {
	return f.cache, f.err
}

func singleEdgeGraph() *domain.TransportGraph {
	g := domain.NewTransportGraph()
	g.AddNode(&domain.TransportNode{Code: "CNSHA", Country: "CN"})
	g.AddNode(&domain.TransportNode{Code: "NLRTM", Country: "NL"})
	g.AddEdge(&domain.TransportEdge{
		Code: "E1", From: "CNSHA", To: "NLRTM", Mode: domain.ModeMaritime,
		BaseCostUSD: decimal.NewFromFloat(5000), CostPerKg: decimal.NewFromFloat(0.01),
		TransitHours: 672, CarbonPerTonneKm: 0.015, DistanceKm: 19500,
		WageCentsHourly: 1500, SafetyRating: 4, Active: true,
	})
	return g
}

func TestEngineReloadThenOptimize(t *testing.T) {
	source := &fakeGraphSource{graph: singleEdgeGraph()}
	constraints := &fakeConstraintSource{cache: domain.NewConstraintCache()}
	engine := NewEngine(source, constraints, nil, testLogger(), nil, 2, 5, 4)

	require.NoError(t, engine.ReloadGraph(context.Background()))

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := &domain.OptimizeRequest{
		OriginCode: "CNSHA", DestinationCode: "NLRTM", WeightKg: 10000,
		PickupAfter: pickup, DeliverBy: pickup.Add(1000 * time.Hour),
		CostWeight: 1, TimeWeight: 1, CarbonWeight: 1, LaborWeight: 1,
	}

	result, err := engine.OptimizeRoutes(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Routes, 1)
	assert.True(t, decimal.NewFromFloat(5100).Equal(result.Routes[0].TotalCostUSD))
	assert.Equal(t, 1, result.CandidatesEvaluated)
	assert.GreaterOrEqual(t, result.OptimizationTimeMillis, int64(0))
}

func TestEngineOptimizeUnknownOrigin(t *testing.T) {
	source := &fakeGraphSource{graph: singleEdgeGraph()}
	constraints := &fakeConstraintSource{cache: domain.NewConstraintCache()}
	engine := NewEngine(source, constraints, nil, testLogger(), nil, 1, 5, 4)
	require.NoError(t, engine.ReloadGraph(context.Background()))

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := &domain.OptimizeRequest{
		OriginCode: "MISSING", DestinationCode: "NLRTM", WeightKg: 1,
		PickupAfter: pickup, DeliverBy: pickup.Add(time.Hour),
	}

	_, err := engine.OptimizeRoutes(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnknownOrigin)
}

func TestEngineOptimizeInvertedWindowIsRejected(t *testing.T) {
	source := &fakeGraphSource{graph: singleEdgeGraph()}
	constraints := &fakeConstraintSource{cache: domain.NewConstraintCache()}
	engine := NewEngine(source, constraints, nil, testLogger(), nil, 1, 5, 4)
	require.NoError(t, engine.ReloadGraph(context.Background()))

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := &domain.OptimizeRequest{
		OriginCode: "CNSHA", DestinationCode: "NLRTM", WeightKg: 1,
		PickupAfter: pickup, DeliverBy: pickup.Add(-time.Hour),
	}

	_, err := engine.OptimizeRoutes(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvertedWindow)
}

func TestEngineReloadKeepsPriorGraphOnFailure(t *testing.T) {
	source := &fakeGraphSource{graph: singleEdgeGraph()}
	constraints := &fakeConstraintSource{cache: domain.NewConstraintCache()}
	engine := NewEngine(source, constraints, nil, testLogger(), nil, 1, 5, 4)
	require.NoError(t, engine.ReloadGraph(context.Background()))

	status := engine.GetGraphStatus()
	require.Equal(t, 2, status.NodeCount)

	source.err = errors.New("source unavailable")
	err := engine.ReloadGraph(context.Background())
	assert.Error(t, err)

	status = engine.GetGraphStatus()
	assert.Equal(t, 2, status.NodeCount, "graph must be untouched after a failed reload")
}

func TestEngineStartsWithEmptyGraph(t *testing.T) {
	source := &fakeGraphSource{graph: singleEdgeGraph()}
	constraints := &fakeConstraintSource{cache: domain.NewConstraintCache()}
	engine := NewEngine(source, constraints, nil, testLogger(), nil, 1, 5, 4)

	status := engine.GetGraphStatus()
	assert.Equal(t, 0, status.NodeCount)
	assert.Equal(t, 0, status.EdgeCount)
}
