package domain

import "time"

// TransportGraph owns the node and edge sets for one loaded snapshot of the
// transport network. It is append-built during load and treated as
// immutable afterward: application.Engine never mutates a graph once it is
// published to readers, it only swaps in a freshly built replacement.
type TransportGraph struct {
	nodesByCode map[string]*TransportNode
	edgesFrom   map[string][]*TransportEdge

	nodeCount int
	edgeCount int
	edgeCountByMode map[TransportMode]int

	loadedAt  time.Time
	loadTime  time.Duration
}

// NewTransportGraph returns an empty graph ready for AddNode/AddEdge calls.
func NewTransportGraph() *TransportGraph {
	return &TransportGraph{
		nodesByCode:     make(map[string]*TransportNode),
		edgesFrom:       make(map[string][]*TransportEdge),
		edgeCountByMode: make(map[TransportMode]int),
	}
}

// AddNode inserts or replaces the node bound to n.Code. A second insert
// under the same code overwrites the prior binding (see DESIGN.md for why
// this implementation chose overwrite over reject).
func (g *TransportGraph) AddNode(n *TransportNode) {
	if _, exists := g.nodesByCode[n.Code]; !exists {
		g.nodeCount++
	}
	g.nodesByCode[n.Code] = n
}

// AddEdge appends e to the adjacency list of e.From. It fails silently,
// returning false without mutating the graph, when either endpoint code is
// not yet a known node — this is the invariant spec.md requires at
// edge-insertion time.
func (g *TransportGraph) AddEdge(e *TransportEdge) bool {
	if _, ok := g.nodesByCode[e.From]; !ok {
		return false
	}
	if _, ok := g.nodesByCode[e.To]; !ok {
		return false
	}
	g.edgesFrom[e.From] = append(g.edgesFrom[e.From], e)
	g.edgeCount++
	g.edgeCountByMode[e.Mode]++
	return true
}

// GetNode looks up a node by its locode-style code in O(1).
func (g *TransportGraph) GetNode(code string) (*TransportNode, bool) {
	n, ok := g.nodesByCode[code]
	return n, ok
}

// EdgesFrom returns the outgoing edges of the node with the given code. The
// returned slice must not be mutated by the caller; it is shared with the
// graph's internal adjacency list.
func (g *TransportGraph) EdgesFrom(code string) []*TransportEdge {
	return g.edgesFrom[code]
}

// Nodes iterates every node in the graph in unspecified order.
func (g *TransportGraph) Nodes(fn func(*TransportNode)) {
	for _, n := range g.nodesByCode {
		fn(n)
	}
}

// Edges iterates every edge in the graph in unspecified order.
func (g *TransportGraph) Edges(fn func(*TransportEdge)) {
	for _, edges := range g.edgesFrom {
		for _, e := range edges {
			fn(e)
		}
	}
}

func (g *TransportGraph) NodeCount() int { return g.nodeCount }
func (g *TransportGraph) EdgeCount() int { return g.edgeCount }

// EdgeCountByMode returns a copy of the per-mode edge counts, safe for the
// caller to retain or mutate.
func (g *TransportGraph) EdgeCountByMode() map[TransportMode]int {
	out := make(map[TransportMode]int, len(g.edgeCountByMode))
	for m, c := range g.edgeCountByMode {
		out[m] = c
	}
	return out
}

// SetLoadStats records observability fields for GetGraphStatus; called once
// by the loader after the graph is fully built, before it is published.
func (g *TransportGraph) SetLoadStats(loadedAt time.Time, loadTime time.Duration) {
	g.loadedAt = loadedAt
	g.loadTime = loadTime
}

func (g *TransportGraph) LoadedAt() time.Time         { return g.loadedAt }
func (g *TransportGraph) LoadTimeMillis() int64       { return g.loadTime.Milliseconds() }
