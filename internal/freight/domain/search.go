package domain

import (
	"container/heap"
	"time"

	"github.com/shopspring/decimal"
)

// PathHop is one (target node, edge taken to reach it) pair in a raw search
// path, as emitted by the search core before materialization fills in
// departure/arrival times.
type PathHop struct {
	ToCode string
	Edge   *TransportEdge
}

// searchState is one frontier entry in the bounded best-first search.
type searchState struct {
	nodeCode    string
	path        []PathHop
	costUSD     decimal.Decimal
	timeHours   float64
	carbonKg    float64
	currentTime time.Time

	// seq breaks cost ties deterministically in insertion order, since
	// spec.md leaves the tie-break between equal-cost states unspecified
	// but requires determinism for a fixed input.
	seq int
}

type searchHeap []*searchState

func (h searchHeap) Len() int { return len(h) }
func (h searchHeap) Less(i, j int) bool {
	cmp := h[i].costUSD.Cmp(h[j].costUSD)
	if cmp != 0 {
		return cmp < 0
	}
	return h[i].seq < h[j].seq
}
func (h searchHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *searchHeap) Push(x interface{}) {
	*h = append(*h, x.(*searchState))
}
func (h *searchHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// searchCapMultiplier bounds raw path emissions at request.MaxRoutes times
// this factor, per spec.md §5's "max_routes * 3 path emissions" resource
// note. The same bound doubles as the per-node visit-count cap of §4.3.
const searchCapMultiplier = 3

// FindKShortestPaths runs the bounded best-first k-paths search of spec.md
// §4.3: a min-heap ordered by accumulated monetary cost, expanding the
// cheapest frontier state first, bounded by a per-node visit counter and by
// request.MaxSegments path depth, pruning edges on activity/mode/carrier/
// sanction predicates and on a pickup/deliver-by time gate.
//
// The search runs single-threaded on the calling goroutine, keeping the heap
// hot and the emission order deterministic for a fixed input (spec.md §5).
func FindKShortestPaths(g *TransportGraph, req *OptimizeRequest, weightKg decimal.Decimal) []([]PathHop) {
	origin, ok := g.GetNode(req.OriginCode)
	if !ok {
		return nil
	}
	if _, ok := g.GetNode(req.DestinationCode); !ok {
		return nil
	}

	k := req.MaxRoutes * searchCapMultiplier
	if k <= 0 {
		k = searchCapMultiplier
	}

	visitCount := make(map[string]int)
	var results [][]PathHop

	h := &searchHeap{}
	heap.Init(h)
	seq := 0
	heap.Push(h, &searchState{
		nodeCode:    origin.Code,
		path:        nil,
		costUSD:     decimal.Zero,
		timeHours:   0,
		carbonKg:    0,
		currentTime: req.PickupAfter,
		seq:         seq,
	})

	for h.Len() > 0 && len(results) < k {
		state := heap.Pop(h).(*searchState)

		visitCount[state.nodeCode]++
		if visitCount[state.nodeCode] > k {
			continue
		}

		if state.nodeCode == req.DestinationCode && len(state.path) > 0 {
			results = append(results, state.path)
			continue
		}

		if len(state.path) >= req.MaxSegments {
			continue
		}

		var lastMode TransportMode
		hasLast := len(state.path) > 0
		if hasLast {
			lastMode = state.path[len(state.path)-1].Edge.Mode
		}

		for _, edge := range g.EdgesFrom(state.nodeCode) {
			if !edge.Active {
				continue
			}
			if !req.ModeAllowed(edge.Mode) {
				continue
			}
			if req.CarrierExcluded(edge.CarrierCode) {
				continue
			}
			if edge.Sanctioned {
				continue
			}

			newCost := state.costUSD.Add(edge.Cost(weightKg))
			newTransit := state.timeHours + edge.TransitHours
			newCarbon := state.carbonKg + edge.Carbon(weightKg.InexactFloat64())

			var transfer float64
			if hasLast {
				transfer = TransferHours(lastMode, edge.Mode)
			}
			totalTime := newTransit + transfer
			arrival := state.currentTime.Add(time.Duration(totalTime * float64(time.Hour)))

			if arrival.After(req.DeliverBy) {
				continue
			}

			newPath := make([]PathHop, len(state.path), len(state.path)+1)
			copy(newPath, state.path)
			newPath = append(newPath, PathHop{ToCode: edge.To, Edge: edge})

			seq++
			heap.Push(h, &searchState{
				nodeCode:    edge.To,
				path:        newPath,
				costUSD:     newCost,
				timeHours:   totalTime,
				carbonKg:    newCarbon,
				currentTime: arrival,
				seq:         seq,
			})
		}
	}

	return results
}
