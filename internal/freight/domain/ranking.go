package domain

import "sort"

// dominates reports whether a dominates b under spec.md §4.5's four
// objectives (cost down, time down, carbon down, labor up): not worse on
// any objective, and strictly better on at least one.
func dominates(a, b *CandidateRoute) bool {
	costCmp := a.TotalCostUSD.Cmp(b.TotalCostUSD)
	better := false

	if costCmp > 0 {
		return false
	}
	if costCmp < 0 {
		better = true
	}

	if a.TotalTimeHours > b.TotalTimeHours {
		return false
	}
	if a.TotalTimeHours < b.TotalTimeHours {
		better = true
	}

	if a.TotalCarbonKg > b.TotalCarbonKg {
		return false
	}
	if a.TotalCarbonKg < b.TotalCarbonKg {
		better = true
	}

	if a.LaborScore < b.LaborScore {
		return false
	}
	if a.LaborScore > b.LaborScore {
		better = true
	}

	return better
}

// AssignParetoRanks implements the non-dominated sorting procedure of
// spec.md §4.5: rank 1 is the non-dominated frontier, then each subsequent
// rank is assigned after removing the previous frontier, decrementing the
// dominated-by counts of the routes it dominated. If a round's frontier is
// empty while routes remain (an equality tie-cycle), every remaining route
// gets the current rank and the procedure stops, guaranteeing termination.
func AssignParetoRanks(routes []*CandidateRoute) {
	n := len(routes)
	if n == 0 {
		return
	}

	dominatedBy := make([]int, n)
	dominates_ := make([][]int, n)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if dominates(routes[i], routes[j]) {
				dominates_[i] = append(dominates_[i], j)
				dominatedBy[j]++
			}
		}
	}

	remaining := n
	removed := make([]bool, n)
	rank := 1

	for remaining > 0 {
		var frontier []int
		for i := 0; i < n; i++ {
			if !removed[i] && dominatedBy[i] == 0 {
				frontier = append(frontier, i)
			}
		}

		if len(frontier) == 0 {
			// Tie-cycle: assign everyone left the current rank and stop.
			for i := 0; i < n; i++ {
				if !removed[i] {
					routes[i].ParetoRank = rank
					routes[i].ParetoOptimal = rank == 1
					removed[i] = true
				}
			}
			break
		}

		for _, i := range frontier {
			routes[i].ParetoRank = rank
			routes[i].ParetoOptimal = rank == 1
			removed[i] = true
			remaining--
		}
		for _, i := range frontier {
			for _, j := range dominates_[i] {
				if !removed[j] {
					dominatedBy[j]--
				}
			}
		}

		rank++
	}
}

// objectiveMaxima holds the normalization denominators of spec.md §4.6,
// defaulting to 1 when the admissible set is empty or all-zero on an axis.
type objectiveMaxima struct {
	maxCost   float64
	maxTime   float64
	maxCarbon float64
}

func computeObjectiveMaxima(routes []*CandidateRoute) objectiveMaxima {
	m := objectiveMaxima{maxCost: 1, maxTime: 1, maxCarbon: 1}
	if len(routes) == 0 {
		return m
	}

	var maxCost, maxTime, maxCarbon float64
	for _, r := range routes {
		if c := r.TotalCostUSD.InexactFloat64(); c > maxCost {
			maxCost = c
		}
		if r.TotalTimeHours > maxTime {
			maxTime = r.TotalTimeHours
		}
		if r.TotalCarbonKg > maxCarbon {
			maxCarbon = r.TotalCarbonKg
		}
	}
	if maxCost > 0 {
		m.maxCost = maxCost
	}
	if maxTime > 0 {
		m.maxTime = maxTime
	}
	if maxCarbon > 0 {
		m.maxCarbon = maxCarbon
	}
	return m
}

// AssignWeightedScores computes each route's weighted_score per spec.md
// §4.6: normalized cost/time/carbon (lower is better) plus
// 1-labor_score (so lower is better across all four objectives), combined
// with the request's weights as-is.
func AssignWeightedScores(routes []*CandidateRoute, req *OptimizeRequest) {
	maxima := computeObjectiveMaxima(routes)

	for _, r := range routes {
		costNorm := r.TotalCostUSD.InexactFloat64() / maxima.maxCost
		timeNorm := r.TotalTimeHours / maxima.maxTime
		carbonNorm := r.TotalCarbonKg / maxima.maxCarbon
		laborNorm := 1 - r.LaborScore

		r.WeightedScore = req.CostWeight*costNorm +
			req.TimeWeight*timeNorm +
			req.CarbonWeight*carbonNorm +
			req.LaborWeight*laborNorm
	}
}

// SortAndTruncate orders routes by ascending weighted_score, stable,
// tie-breaking by Pareto rank then by insertion (admissible-set) order, and
// truncates to maxRoutes (spec.md §4.6's final step).
func SortAndTruncate(routes []*CandidateRoute, maxRoutes int) []*CandidateRoute {
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].WeightedScore != routes[j].WeightedScore {
			return routes[i].WeightedScore < routes[j].WeightedScore
		}
		if routes[i].ParetoRank != routes[j].ParetoRank {
			return routes[i].ParetoRank < routes[j].ParetoRank
		}
		return routes[i].insertionOrder < routes[j].insertionOrder
	})

	if maxRoutes > 0 && len(routes) > maxRoutes {
		routes = routes[:maxRoutes]
	}
	return routes
}
