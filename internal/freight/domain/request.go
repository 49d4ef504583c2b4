package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OptimizeRequest captures one shipment's routing parameters. Weights are
// not required to sum to one; the ranking core applies them as-is to
// normalized objectives.
type OptimizeRequest struct {
	ShipmentID string

	OriginCode      string
	DestinationCode string

	WeightKg float64
	VolumeM3 float64

	PickupAfter time.Time
	DeliverBy   time.Time

	MaxCostUSD     *decimal.Decimal
	MaxCarbonKg    *float64
	MinLaborScore  *float64

	AllowedModes     map[TransportMode]bool // empty/nil means all modes allowed
	ExcludedCarriers map[string]bool

	MaxRoutes   int
	MaxSegments int

	CostWeight   float64
	TimeWeight   float64
	CarbonWeight float64
	LaborWeight  float64
}

// ModeAllowed reports whether m passes the request's allowed-modes filter.
// An empty/nil AllowedModes set means every mode is permitted.
func (r *OptimizeRequest) ModeAllowed(m TransportMode) bool {
	if len(r.AllowedModes) == 0 {
		return true
	}
	return r.AllowedModes[m]
}

// CarrierExcluded reports whether a carrier code is in the request's
// exclusion set.
func (r *OptimizeRequest) CarrierExcluded(carrierCode string) bool {
	return r.ExcludedCarriers != nil && r.ExcludedCarriers[carrierCode]
}

// WindowHours returns deliver_by - pickup_after in hours.
func (r *OptimizeRequest) WindowHours() float64 {
	return r.DeliverBy.Sub(r.PickupAfter).Hours()
}
