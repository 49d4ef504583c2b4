package domain

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// materializationWorkers bounds the errgroup's concurrency for
// MaterializePaths, mirroring the corpus's fixed-size worker-pool idiom for
// embarrassingly parallel per-item work.
func materializationWorkers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// MaterializePath converts one raw search path into a CandidateRoute,
// per spec.md §4.4. originCode is the request's origin node code, used to
// derive the From of the first segment; every later segment's From is the
// previous segment's To (the corpus source's carrier_code-based derivation
// is a known bug this implementation does not reproduce — see DESIGN.md).
//
// Wage lookups key on the destination node's country code, not on the node
// code itself (spec.md §9's open question, resolved in DESIGN.md).
func MaterializePath(path []PathHop, originCode string, req *OptimizeRequest, cache *ConstraintCache, g *TransportGraph) (*CandidateRoute, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("materialize: empty path")
	}

	weightKg := decimal.NewFromFloat(req.WeightKg)

	segments := make([]RouteSegment, 0, len(path))

	totalCost := decimal.Zero
	var totalTime, totalCarbon, totalDistance, laborSum float64

	fromCode := originCode
	currentArrival := req.PickupAfter
	var lastMode TransportMode

	for i, hop := range path {
		edge := hop.Edge
		if edge == nil {
			return nil, fmt.Errorf("materialize: nil edge at hop %d", i)
		}

		var transfer float64
		var departure time.Time
		if i == 0 {
			departure = req.PickupAfter
		} else {
			transfer = TransferHours(lastMode, edge.Mode)
			departure = currentArrival.Add(time.Duration(transfer * float64(time.Hour)))
		}

		arrival := departure.Add(time.Duration(edge.TransitHours * float64(time.Hour)))

		cost := edge.Cost(weightKg)
		if cost.IsNegative() || !cost.IsFinite() {
			return nil, fmt.Errorf("materialize: invalid cost on edge %s", edge.Code)
		}
		carbon := edge.Carbon(req.WeightKg)

		toNode, ok := g.GetNode(edge.To)
		if !ok {
			return nil, fmt.Errorf("materialize: unknown to-node %s", edge.To)
		}
		minWage := cache.MinWageCents(toNode.Country)
		labor := edge.Labor(minWage)

		seg := RouteSegment{
			Sequence:         i,
			FromCode:         fromCode,
			ToCode:           edge.To,
			Mode:             edge.Mode,
			CarrierCode:      edge.CarrierCode,
			CarrierName:      edge.CarrierName,
			CostUSD:          cost,
			DistanceKm:       edge.DistanceKm,
			TransitHours:     edge.TransitHours,
			CarbonKg:         carbon,
			CarrierWageCents: edge.WageCentsHourly,
			LaborScore:       labor,
			DepartureTime:    departure,
			ArrivalTime:      arrival,
		}
		segments = append(segments, seg)

		totalCost = totalCost.Add(cost)
		totalCarbon += carbon
		totalDistance += edge.DistanceKm
		laborSum += labor

		fromCode = edge.To
		currentArrival = arrival
		lastMode = edge.Mode
	}

	totalTime = segments[len(segments)-1].ArrivalTime.Sub(req.PickupAfter).Hours()

	route := &CandidateRoute{
		ID:              NewCandidateRouteID(),
		Segments:        segments,
		TotalCostUSD:    totalCost,
		TotalTimeHours:  totalTime,
		TotalCarbonKg:   totalCarbon,
		TotalDistanceKm: totalDistance,
		LaborScore:      laborSum / float64(len(segments)),
	}
	return route, nil
}

// MaterializePaths converts every raw search path into a CandidateRoute in
// parallel, bounded by a worker pool of size workerCount (default
// runtime.GOMAXPROCS(0) when workerCount <= 0). Each path's materialization
// touches only immutable graph/edge data and its own output slot, so no
// synchronization beyond the errgroup is needed. A path that fails
// materialization (numeric failure, per spec.md §4.7) is dropped rather than
// failing the whole request.
func MaterializePaths(ctx context.Context, paths [][]PathHop, originCode string, req *OptimizeRequest, cache *ConstraintCache, g *TransportGraph, workerCount int) []*CandidateRoute {
	if len(paths) == 0 {
		return nil
	}

	results := make([]*CandidateRoute, len(paths))

	grp, ctx := errgroup.WithContext(ctx)
	grp.SetLimit(materializationWorkers(workerCount))

	for i, path := range paths {
		i, path := i, path
		grp.Go(func() error {
			route, err := MaterializePath(path, originCode, req, cache, g)
			if err != nil {
				// Drop this candidate only; do not abort the request.
				return nil
			}
			results[i] = route
			return nil
		})
	}
	_ = grp.Wait()

	out := make([]*CandidateRoute, 0, len(results))
	for i, r := range results {
		if r != nil {
			r.insertionOrder = i
			out = append(out, r)
		}
	}
	return out
}
