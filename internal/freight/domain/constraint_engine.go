package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ConstraintEngine evaluates a candidate route against a request's hard and
// soft constraints, using a snapshot of the constraint cache. It is
// stateless across routes and safe to call concurrently.
type ConstraintEngine struct {
	cache *ConstraintCache
}

// NewConstraintEngine binds an engine to the constraint cache snapshot that
// was current when the owning request began.
func NewConstraintEngine(cache *ConstraintCache) *ConstraintEngine {
	return &ConstraintEngine{cache: cache}
}

// Evaluate runs every rule of spec.md §4.2 against route and req, returning
// one ConstraintResult per applicable rule. Soft rules are only evaluated
// when the request sets the corresponding threshold.
func (e *ConstraintEngine) Evaluate(route *CandidateRoute, req *OptimizeRequest, graph *TransportGraph) []ConstraintResult {
	var results []ConstraintResult

	results = append(results, e.evaluateSanction(route))
	results = append(results, e.evaluateWage(route, graph))
	results = append(results, e.evaluateTimeWindow(route, req))

	if req.MaxCostUSD != nil {
		results = append(results, e.evaluateCost(route, *req.MaxCostUSD))
	}

	if req.MaxCarbonKg != nil {
		results = append(results, e.evaluateCarbon(route, *req.MaxCarbonKg))
	}
	if req.MinLaborScore != nil {
		results = append(results, e.evaluateLabor(route, *req.MinLaborScore))
	}

	return results
}

func (e *ConstraintEngine) evaluateSanction(route *CandidateRoute) ConstraintResult {
	var offenders []string
	for _, s := range route.Segments {
		if e.cache.IsSanctioned(s.CarrierCode) {
			offenders = append(offenders, s.CarrierCode)
		}
	}
	passed := len(offenders) == 0
	msg := "no sanctioned carriers"
	if !passed {
		msg = fmt.Sprintf("sanctioned carriers in route: %s", strings.Join(offenders, ", "))
	}
	return ConstraintResult{ID: "sanction", Type: "sanction", Passed: passed, IsHard: true, Score: boolScore(passed), Message: msg}
}

// evaluateWage looks up the minimum wage by the destination node's country
// (spec.md §9's open question, resolved: the cache is populated by country
// code, so the lookup must key on the node's country, not its locode).
func (e *ConstraintEngine) evaluateWage(route *CandidateRoute, graph *TransportGraph) ConstraintResult {
	var violations []string
	for _, s := range route.Segments {
		country := ""
		if n, ok := graph.GetNode(s.ToCode); ok {
			country = n.Country
		}
		minWage := e.cache.MinWageCents(country)
		if s.CarrierWageCents < minWage {
			violations = append(violations, fmt.Sprintf("%s<%d@%s", s.CarrierCode, minWage, s.ToCode))
		}
	}
	passed := len(violations) == 0
	msg := "all carrier wages meet minimum"
	if !passed {
		msg = fmt.Sprintf("wage violations: %s", strings.Join(violations, ", "))
	}
	return ConstraintResult{ID: "wage", Type: "wage", Passed: passed, IsHard: true, Score: boolScore(passed), Message: msg}
}

func (e *ConstraintEngine) evaluateTimeWindow(route *CandidateRoute, req *OptimizeRequest) ConstraintResult {
	window := req.WindowHours()
	passed := route.TotalTimeHours <= window
	msg := fmt.Sprintf("transit %.2fh within window %.2fh", route.TotalTimeHours, window)
	if !passed {
		msg = fmt.Sprintf("transit %.2fh exceeds window %.2fh", route.TotalTimeHours, window)
	}
	return ConstraintResult{ID: "time_window", Type: "time_window", Passed: passed, IsHard: true, Score: boolScore(passed), Message: msg}
}

func (e *ConstraintEngine) evaluateCost(route *CandidateRoute, maxCost decimal.Decimal) ConstraintResult {
	total := route.TotalCostUSD.InexactFloat64()
	max := maxCost.InexactFloat64()
	passed := total <= max
	score := 0.0
	if max > 0 {
		score = 1 - total/max
	}
	if score < 0 {
		score = 0
	}
	return ConstraintResult{ID: "cost", Type: "cost", Passed: passed, IsHard: false, Score: score,
		Message: fmt.Sprintf("total cost %.2f vs max %.2f", total, max)}
}

func (e *ConstraintEngine) evaluateCarbon(route *CandidateRoute, maxCarbon float64) ConstraintResult {
	passed := route.TotalCarbonKg <= maxCarbon
	score := 0.0
	if maxCarbon > 0 {
		score = 1 - route.TotalCarbonKg/maxCarbon
	}
	if score < 0 {
		score = 0
	}
	return ConstraintResult{ID: "carbon", Type: "carbon", Passed: passed, IsHard: false, Score: score,
		Message: fmt.Sprintf("total carbon %.2fkg vs max %.2fkg", route.TotalCarbonKg, maxCarbon)}
}

func (e *ConstraintEngine) evaluateLabor(route *CandidateRoute, minLabor float64) ConstraintResult {
	passed := route.LaborScore >= minLabor
	return ConstraintResult{ID: "labor", Type: "labor", Passed: passed, IsHard: false, Score: route.LaborScore,
		Message: fmt.Sprintf("labor score %.3f vs min %.3f", route.LaborScore, minLabor)}
}

func boolScore(passed bool) float64 {
	if passed {
		return 1
	}
	return 0
}
