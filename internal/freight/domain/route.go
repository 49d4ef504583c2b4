package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RouteSegment is one carrier-operated leg within a materialized route.
type RouteSegment struct {
	Sequence int

	FromCode string
	ToCode   string

	Mode        TransportMode
	CarrierCode string
	CarrierName string

	CostUSD      decimal.Decimal
	DistanceKm   float64
	TransitHours float64
	CarbonKg     float64

	CarrierWageCents int64
	LaborScore       float64

	DepartureTime time.Time
	ArrivalTime   time.Time
}

// ConstraintResult is the outcome of one constraint rule evaluated against a
// candidate route.
type ConstraintResult struct {
	ID      string
	Type    string
	Passed  bool
	IsHard  bool
	Score   float64 // in [0,1]
	Message string
}

// CandidateRoute aggregates a materialized path plus its totals, Pareto
// fields, weighted score, and constraint evaluation results.
type CandidateRoute struct {
	ID string

	Segments []RouteSegment

	TotalCostUSD     decimal.Decimal
	TotalTimeHours   float64
	TotalCarbonKg    float64
	TotalDistanceKm  float64
	LaborScore       float64

	ParetoRank    int
	ParetoOptimal bool
	WeightedScore float64

	ConstraintResults []ConstraintResult

	// insertionOrder is the stage-4 admissible-set ordering used as the
	// final tie-break in §4.6, captured before sorting so the tie-break is
	// stable across repeated calls on identical input.
	insertionOrder int
}

// NewCandidateRouteID generates a fresh identifier for a materialized route.
// Route IDs are not required to be stable across repeated Optimize calls
// (spec.md §8 property 7) — only the payload contents are.
func NewCandidateRouteID() string {
	return uuid.NewString()
}

// Admissible reports whether every hard constraint result in the route
// passed. An empty result set is vacuously admissible.
func (r *CandidateRoute) Admissible() bool {
	for _, res := range r.ConstraintResults {
		if res.IsHard && !res.Passed {
			return false
		}
	}
	return true
}

// AllHardPassed is a readability alias for Admissible, matching the
// EvaluateConstraints response field name in spec.md §6.
func (r *CandidateRoute) AllHardPassed() bool {
	return r.Admissible()
}

// OverallScore is the arithmetic mean of all per-constraint scores, or 1.0
// if there are none (spec.md §6.2).
func (r *CandidateRoute) OverallScore() float64 {
	if len(r.ConstraintResults) == 0 {
		return 1.0
	}
	var sum float64
	for _, res := range r.ConstraintResults {
		sum += res.Score
	}
	return sum / float64(len(r.ConstraintResults))
}
