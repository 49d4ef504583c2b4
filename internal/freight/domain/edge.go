package domain

import "github.com/shopspring/decimal"

// TransportEdge is a carrier-operated leg between two nodes, identified
// within the graph by the (From, To) node handles it was inserted with.
type TransportEdge struct {
	ID       string
	Code     string
	From     string // node code
	To       string // node code
	Mode     TransportMode

	CarrierCode string
	CarrierName string

	DistanceKm float64

	BaseCostUSD decimal.Decimal
	CostPerKg   decimal.Decimal

	TransitHours     float64
	CarbonPerTonneKm float64

	WageCentsHourly int64
	SafetyRating    int // 1..5
	Unionized       bool
	Sanctioned      bool

	Active bool
}

// Cost returns base_cost_usd + cost_per_kg * weight_kg, computed in decimal
// throughout so monetary rounding never leaks through float64.
func (e *TransportEdge) Cost(weightKg decimal.Decimal) decimal.Decimal {
	return e.BaseCostUSD.Add(e.CostPerKg.Mul(weightKg))
}

// Carbon returns distance_km * (weight_kg/1000) * carbon_per_tonne_km, in kg
// CO2. Weight conversion to tonnes is exact; this is not a monetary value so
// it stays in float64 per spec.md's data model.
func (e *TransportEdge) Carbon(weightKg float64) float64 {
	return e.DistanceKm * (weightKg / 1000.0) * e.CarbonPerTonneKm
}

// Labor scores this edge's carrier against a country minimum wage (in cents
// per hour). countryMinWageCents == 0 uses the 0.5 fallback spec.md
// specifies for that edge case, rather than dividing by zero.
func (e *TransportEdge) Labor(countryMinWageCents int64) float64 {
	var wage float64
	if countryMinWageCents == 0 {
		wage = 0.5
	} else {
		wage = float64(e.WageCentsHourly) / (2 * float64(countryMinWageCents))
		if wage > 1 {
			wage = 1
		}
	}

	safety := float64(e.SafetyRating) / 5.0

	union := 0.5
	if e.Unionized {
		union = 1
	}

	return 0.4*wage + 0.4*safety + 0.2*union
}
