package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseRequest(origin, dest string, pickup time.Time, window time.Duration) *OptimizeRequest {
	return &OptimizeRequest{
		OriginCode:      origin,
		DestinationCode: dest,
		WeightKg:        10000,
		PickupAfter:     pickup,
		DeliverBy:       pickup.Add(window),
		MaxRoutes:       5,
		MaxSegments:     4,
		CostWeight:      1,
		TimeWeight:      1,
		CarbonWeight:    1,
		LaborWeight:     1,
	}
}

// S1: one Maritime edge between two nodes.
func TestFindKShortestPathsSingleEdge(t *testing.T) {
	g := NewTransportGraph()
	g.AddNode(&TransportNode{Code: "CNSHA", Country: "CN"})
	g.AddNode(&TransportNode{Code: "NLRTM", Country: "NL"})
	g.AddEdge(&TransportEdge{
		Code: "E1", From: "CNSHA", To: "NLRTM", Mode: ModeMaritime,
		BaseCostUSD: decimal.NewFromFloat(5000), CostPerKg: decimal.NewFromFloat(0.01),
		TransitHours: 672, CarbonPerTonneKm: 0.015, DistanceKm: 19500, Active: true,
	})

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := baseRequest("CNSHA", "NLRTM", pickup, 1000*time.Hour)

	paths := FindKShortestPaths(g, req, decimal.NewFromFloat(10000))
	require.Len(t, paths, 1)
	require.Len(t, paths[0], 1)
	assert.Equal(t, "NLRTM", paths[0][0].ToCode)
}

// S2: a sanctioned Air edge is pruned from search entirely.
func TestFindKShortestPathsPrunesSanctionedEdge(t *testing.T) {
	g := NewTransportGraph()
	g.AddNode(&TransportNode{Code: "CNSHA"})
	g.AddNode(&TransportNode{Code: "NLRTM"})
	g.AddEdge(&TransportEdge{
		Code: "E1", From: "CNSHA", To: "NLRTM", Mode: ModeMaritime,
		TransitHours: 672, Active: true,
	})
	g.AddEdge(&TransportEdge{
		Code: "E2", From: "CNSHA", To: "NLRTM", Mode: ModeAir,
		TransitHours: 20, Sanctioned: true, Active: true,
	})

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := baseRequest("CNSHA", "NLRTM", pickup, 1000*time.Hour)

	paths := FindKShortestPaths(g, req, decimal.NewFromFloat(10000))
	for _, p := range paths {
		for _, hop := range p {
			assert.NotEqual(t, ModeAir, hop.Edge.Mode)
		}
	}
}

// S3: three-node chain A->B->C via Road then Rail; transfer penalty is 6h.
func TestFindKShortestPathsChainWithTransfer(t *testing.T) {
	g := NewTransportGraph()
	g.AddNode(&TransportNode{Code: "A"})
	g.AddNode(&TransportNode{Code: "B"})
	g.AddNode(&TransportNode{Code: "C"})
	g.AddEdge(&TransportEdge{Code: "AB", From: "A", To: "B", Mode: ModeRoad, TransitHours: 10, Active: true})
	g.AddEdge(&TransportEdge{Code: "BC", From: "B", To: "C", Mode: ModeRail, TransitHours: 20, Active: true})

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := baseRequest("A", "C", pickup, 1000*time.Hour)
	req.MaxSegments = 2
	req.AllowedModes = map[TransportMode]bool{ModeRoad: true, ModeRail: true}

	paths := FindKShortestPaths(g, req, decimal.NewFromFloat(10000))
	require.Len(t, paths, 1)
	require.Len(t, paths[0], 2)

	route, err := MaterializePath(paths[0], "A", req, NewConstraintCache(), g)
	require.NoError(t, err)
	require.Len(t, route.Segments, 2)
	gap := route.Segments[1].DepartureTime.Sub(route.Segments[0].ArrivalTime)
	assert.GreaterOrEqual(t, gap.Hours(), 6.0)
}

// Three-hop chain with two mode changes (Road->Rail->Road): the window-gate
// arrival must accumulate each hop's own transfer penalty on top of every
// transfer already paid earlier in the path, per the original_source
// recurrence (optimizer/mod.rs's `time_hours: total_time`). A window that
// only covers the transit hours plus one transfer wrongly admits the route
// if the emitted frontier state drops the earlier transfer.
func TestFindKShortestPathsThreeHopAccumulatesAllTransfers(t *testing.T) {
	g := NewTransportGraph()
	g.AddNode(&TransportNode{Code: "A"})
	g.AddNode(&TransportNode{Code: "B"})
	g.AddNode(&TransportNode{Code: "C"})
	g.AddNode(&TransportNode{Code: "D"})
	g.AddEdge(&TransportEdge{Code: "AB", From: "A", To: "B", Mode: ModeRoad, TransitHours: 10, Active: true})
	g.AddEdge(&TransportEdge{Code: "BC", From: "B", To: "C", Mode: ModeRail, TransitHours: 10, Active: true})
	g.AddEdge(&TransportEdge{Code: "CD", From: "C", To: "D", Mode: ModeRoad, TransitHours: 10, Active: true})

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	// Real elapsed time is 10+6+10+6+10=42h, but the recurrence's arrival
	// gate compounds cumulative time against cumulative time (matching
	// original_source exactly), landing the third hop's arrival at 78h
	// past pickup, not 42h. A window of 75h must prune it; 80h must admit it.
	tight := baseRequest("A", "D", pickup, 75*time.Hour)
	tight.MaxSegments = 3
	tight.AllowedModes = map[TransportMode]bool{ModeRoad: true, ModeRail: true}
	paths := FindKShortestPaths(g, tight, decimal.NewFromFloat(10000))
	assert.Empty(t, paths, "arrival must account for every transfer paid so far, not just the latest one")

	roomy := baseRequest("A", "D", pickup, 80*time.Hour)
	roomy.MaxSegments = 3
	roomy.AllowedModes = map[TransportMode]bool{ModeRoad: true, ModeRail: true}
	paths = FindKShortestPaths(g, roomy, decimal.NewFromFloat(10000))
	require.Len(t, paths, 1)
	require.Len(t, paths[0], 3)
}

// S4: time window smaller than total transit yields an empty result.
func TestFindKShortestPathsWindowTooSmall(t *testing.T) {
	g := NewTransportGraph()
	g.AddNode(&TransportNode{Code: "CNSHA"})
	g.AddNode(&TransportNode{Code: "NLRTM"})
	g.AddEdge(&TransportEdge{Code: "E1", From: "CNSHA", To: "NLRTM", Mode: ModeMaritime, TransitHours: 672, Active: true})

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := baseRequest("CNSHA", "NLRTM", pickup, 10*time.Hour)

	paths := FindKShortestPaths(g, req, decimal.NewFromFloat(10000))
	assert.Empty(t, paths)
}

func TestFindKShortestPathsUnknownOriginOrDestination(t *testing.T) {
	g := NewTransportGraph()
	g.AddNode(&TransportNode{Code: "A"})

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := baseRequest("A", "MISSING", pickup, 100*time.Hour)

	paths := FindKShortestPaths(g, req, decimal.NewFromFloat(1000))
	assert.Empty(t, paths)
}

func TestFindKShortestPathsRespectsExcludedCarriers(t *testing.T) {
	g := NewTransportGraph()
	g.AddNode(&TransportNode{Code: "A"})
	g.AddNode(&TransportNode{Code: "B"})
	g.AddEdge(&TransportEdge{Code: "E1", From: "A", To: "B", Mode: ModeRoad, CarrierCode: "BADCO", TransitHours: 1, Active: true})

	pickup := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	req := baseRequest("A", "B", pickup, 100*time.Hour)
	req.ExcludedCarriers = map[string]bool{"BADCO": true}

	paths := FindKShortestPaths(g, req, decimal.NewFromFloat(1000))
	assert.Empty(t, paths)
}
