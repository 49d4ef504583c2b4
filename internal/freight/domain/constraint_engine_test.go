package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstraintEngineSanctionHardFail(t *testing.T) {
	cache := NewConstraintCache()
	cache.SanctionedCarriers["BADCO"] = true
	engine := NewConstraintEngine(cache)

	route := &CandidateRoute{
		Segments: []RouteSegment{{CarrierCode: "BADCO", ToCode: "NLRTM"}},
	}
	graph := NewTransportGraph()
	graph.AddNode(&TransportNode{Code: "NLRTM", Country: "NL"})

	req := &OptimizeRequest{PickupAfter: time.Now(), DeliverBy: time.Now().Add(time.Hour)}
	results := engine.Evaluate(route, req, graph)

	var sanction *ConstraintResult
	for i := range results {
		if results[i].ID == "sanction" {
			sanction = &results[i]
		}
	}
	require.NotNil(t, sanction)
	assert.False(t, sanction.Passed)
	assert.True(t, sanction.IsHard)
}

func TestConstraintEngineWageKeysOnDestinationCountry(t *testing.T) {
	cache := NewConstraintCache()
	cache.MinWageCentsByCountry["NL"] = 2000
	engine := NewConstraintEngine(cache)

	graph := NewTransportGraph()
	graph.AddNode(&TransportNode{Code: "NLRTM", Country: "NL"})

	route := &CandidateRoute{
		Segments: []RouteSegment{{CarrierCode: "C1", ToCode: "NLRTM", CarrierWageCents: 1000}},
	}
	req := &OptimizeRequest{PickupAfter: time.Now(), DeliverBy: time.Now().Add(time.Hour)}
	results := engine.Evaluate(route, req, graph)

	var wage *ConstraintResult
	for i := range results {
		if results[i].ID == "wage" {
			wage = &results[i]
		}
	}
	require.NotNil(t, wage)
	assert.False(t, wage.Passed, "wage 1000 < min 2000 for NL should fail")
}

func TestConstraintEngineTimeWindow(t *testing.T) {
	cache := NewConstraintCache()
	engine := NewConstraintEngine(cache)
	graph := NewTransportGraph()

	pickup := time.Now()
	req := &OptimizeRequest{PickupAfter: pickup, DeliverBy: pickup.Add(10 * time.Hour)}
	route := &CandidateRoute{TotalTimeHours: 20}

	results := engine.Evaluate(route, req, graph)
	for _, r := range results {
		if r.ID == "time_window" {
			assert.False(t, r.Passed)
		}
	}
}

// S6: cost is a SOFT constraint — a route whose cost exceeds the threshold
// is still admissible, with passed=false on the cost result only.
func TestConstraintEngineCostIsSoft(t *testing.T) {
	cache := NewConstraintCache()
	engine := NewConstraintEngine(cache)
	graph := NewTransportGraph()

	maxCost := decimal.NewFromFloat(100)
	req := &OptimizeRequest{
		PickupAfter: time.Now(), DeliverBy: time.Now().Add(time.Hour),
		MaxCostUSD: &maxCost,
	}
	route := &CandidateRoute{TotalCostUSD: decimal.NewFromFloat(500)}

	results := engine.Evaluate(route, req, graph)
	route.ConstraintResults = results

	var cost *ConstraintResult
	for i := range results {
		if results[i].ID == "cost" {
			cost = &results[i]
		}
	}
	require.NotNil(t, cost)
	assert.False(t, cost.Passed)
	assert.False(t, cost.IsHard)
	assert.True(t, route.Admissible(), "soft constraint failure must not affect admissibility")
}

func TestConstraintEngineOnlyEvaluatesSetSoftThresholds(t *testing.T) {
	cache := NewConstraintCache()
	engine := NewConstraintEngine(cache)
	graph := NewTransportGraph()

	req := &OptimizeRequest{PickupAfter: time.Now(), DeliverBy: time.Now().Add(time.Hour)}
	route := &CandidateRoute{}

	results := engine.Evaluate(route, req, graph)
	for _, r := range results {
		assert.NotEqual(t, "cost", r.ID)
		assert.NotEqual(t, "carbon", r.ID)
		assert.NotEqual(t, "labor", r.ID)
	}
}
