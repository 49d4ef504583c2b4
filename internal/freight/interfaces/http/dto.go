package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/freightroute/internal/freight/domain"
)

// optimizeRequestDTO is the JSON wire shape of domain.OptimizeRequest.
type optimizeRequestDTO struct {
	ShipmentID      string    `json:"shipment_id"`
	OriginCode      string    `json:"origin_code" binding:"required"`
	DestinationCode string    `json:"destination_code" binding:"required"`
	WeightKg        float64   `json:"weight_kg"`
	VolumeM3        float64   `json:"volume_m3"`
	PickupAfter     time.Time `json:"pickup_after" binding:"required"`
	DeliverBy       time.Time `json:"deliver_by" binding:"required"`

	MaxCostUSD    *string  `json:"max_cost_usd,omitempty"`
	MaxCarbonKg   *float64 `json:"max_carbon_kg,omitempty"`
	MinLaborScore *float64 `json:"min_labor_score,omitempty"`

	AllowedModes     []string `json:"allowed_modes,omitempty"`
	ExcludedCarriers []string `json:"excluded_carriers,omitempty"`

	MaxRoutes   int `json:"max_routes"`
	MaxSegments int `json:"max_segments"`

	CostWeight   float64 `json:"cost_weight"`
	TimeWeight   float64 `json:"time_weight"`
	CarbonWeight float64 `json:"carbon_weight"`
	LaborWeight  float64 `json:"labor_weight"`
}

func (d *optimizeRequestDTO) toDomain() (*domain.OptimizeRequest, error) {
	req := &domain.OptimizeRequest{
		ShipmentID:      d.ShipmentID,
		OriginCode:      d.OriginCode,
		DestinationCode: d.DestinationCode,
		WeightKg:        d.WeightKg,
		VolumeM3:        d.VolumeM3,
		PickupAfter:     d.PickupAfter.UTC(),
		DeliverBy:       d.DeliverBy.UTC(),
		MaxCarbonKg:     d.MaxCarbonKg,
		MinLaborScore:   d.MinLaborScore,
		MaxRoutes:       d.MaxRoutes,
		MaxSegments:     d.MaxSegments,
		CostWeight:      d.CostWeight,
		TimeWeight:      d.TimeWeight,
		CarbonWeight:    d.CarbonWeight,
		LaborWeight:     d.LaborWeight,
	}

	if d.MaxCostUSD != nil {
		v, err := decimal.NewFromString(*d.MaxCostUSD)
		if err != nil {
			return nil, err
		}
		req.MaxCostUSD = &v
	}

	if len(d.AllowedModes) > 0 {
		req.AllowedModes = make(map[domain.TransportMode]bool, len(d.AllowedModes))
		for _, raw := range d.AllowedModes {
			if m, ok := domain.ParseTransportMode(raw); ok {
				req.AllowedModes[m] = true
			}
		}
	}
	if len(d.ExcludedCarriers) > 0 {
		req.ExcludedCarriers = make(map[string]bool, len(d.ExcludedCarriers))
		for _, code := range d.ExcludedCarriers {
			req.ExcludedCarriers[code] = true
		}
	}

	return req, nil
}

type constraintResultDTO struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Passed  bool    `json:"passed"`
	IsHard  bool    `json:"is_hard"`
	Score   float64 `json:"score"`
	Message string  `json:"message"`
}

type routeSegmentDTO struct {
	Sequence         int       `json:"sequence"`
	FromCode         string    `json:"from_code"`
	ToCode           string    `json:"to_code"`
	Mode             string    `json:"mode"`
	CarrierCode      string    `json:"carrier_code"`
	CarrierName      string    `json:"carrier_name"`
	CostUSD          string    `json:"cost_usd"`
	DistanceKm       float64   `json:"distance_km"`
	TransitHours     float64   `json:"transit_hours"`
	CarbonKg         float64   `json:"carbon_kg"`
	CarrierWageCents int64     `json:"carrier_wage_cents"`
	LaborScore       float64   `json:"labor_score"`
	DepartureTime    time.Time `json:"departure_time"`
	ArrivalTime      time.Time `json:"arrival_time"`
}

type candidateRouteDTO struct {
	ID                string                `json:"id"`
	Segments          []routeSegmentDTO     `json:"segments"`
	TotalCostUSD      string                `json:"total_cost_usd"`
	TotalTimeHours    float64               `json:"total_time_hours"`
	TotalCarbonKg     float64               `json:"total_carbon_kg"`
	TotalDistanceKm   float64               `json:"total_distance_km"`
	LaborScore        float64               `json:"labor_score"`
	ParetoRank        int                   `json:"pareto_rank"`
	ParetoOptimal     bool                  `json:"pareto_optimal"`
	WeightedScore     float64               `json:"weighted_score"`
	ConstraintResults []constraintResultDTO `json:"constraint_results"`
}

func fromCandidateRoute(r *domain.CandidateRoute) candidateRouteDTO {
	segments := make([]routeSegmentDTO, len(r.Segments))
	for i, s := range r.Segments {
		segments[i] = routeSegmentDTO{
			Sequence:         s.Sequence,
			FromCode:         s.FromCode,
			ToCode:           s.ToCode,
			Mode:             s.Mode.String(),
			CarrierCode:      s.CarrierCode,
			CarrierName:      s.CarrierName,
			CostUSD:          s.CostUSD.StringFixed(4),
			DistanceKm:       s.DistanceKm,
			TransitHours:     s.TransitHours,
			CarbonKg:         s.CarbonKg,
			CarrierWageCents: s.CarrierWageCents,
			LaborScore:       s.LaborScore,
			DepartureTime:    s.DepartureTime,
			ArrivalTime:      s.ArrivalTime,
		}
	}

	results := make([]constraintResultDTO, len(r.ConstraintResults))
	for i, cr := range r.ConstraintResults {
		results[i] = constraintResultDTO{
			ID:      cr.ID,
			Type:    cr.Type,
			Passed:  cr.Passed,
			IsHard:  cr.IsHard,
			Score:   cr.Score,
			Message: cr.Message,
		}
	}

	return candidateRouteDTO{
		ID:                r.ID,
		Segments:          segments,
		TotalCostUSD:      r.TotalCostUSD.StringFixed(4),
		TotalTimeHours:    r.TotalTimeHours,
		TotalCarbonKg:     r.TotalCarbonKg,
		TotalDistanceKm:   r.TotalDistanceKm,
		LaborScore:        r.LaborScore,
		ParetoRank:        r.ParetoRank,
		ParetoOptimal:     r.ParetoOptimal,
		WeightedScore:     r.WeightedScore,
		ConstraintResults: results,
	}
}

// optimizeResponseDTO is the Optimize response body, carrying spec.md §6 op
// 1's observability fields alongside the ranked route list.
type optimizeResponseDTO struct {
	Routes                 []candidateRouteDTO `json:"routes"`
	CandidatesEvaluated    int                 `json:"candidates_evaluated"`
	OptimizationTimeMillis int64               `json:"optimization_time_ms"`
}

// evaluateConstraintsResponseDTO is the EvaluateConstraints response body,
// surfacing the route's overall admissibility and score alongside the
// per-constraint breakdown (spec.md §6 op 2).
type evaluateConstraintsResponseDTO struct {
	Results       []constraintResultDTO `json:"results"`
	AllHardPassed bool                  `json:"all_hard_passed"`
	OverallScore  float64               `json:"overall_score"`
}

// reloadResponseDTO is the Reload response body (spec.md §6 op 4).
type reloadResponseDTO struct {
	LoadTimeMillis int64 `json:"load_time_ms"`
}

type modeCountDTO struct {
	Mode  string `json:"mode"`
	Count int    `json:"count"`
}

type graphStatusDTO struct {
	NodeCount      int            `json:"node_count"`
	EdgeCount      int            `json:"edge_count"`
	EdgeCountByMode []modeCountDTO `json:"edge_count_by_mode"`
	LoadedAt       time.Time      `json:"loaded_at"`
	LoadTimeMillis int64          `json:"load_time_ms"`
}
