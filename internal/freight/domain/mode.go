package domain

import "strings"

// TransportMode is the closed set of legs a shipment can travel on. Per-mode
// behavior (carbon intensity, transfer penalties) is a pure function of the
// variant, not a polymorphic hierarchy — modes never grow a method table.
type TransportMode int

const (
	ModeUnknown TransportMode = iota
	ModeMaritime
	ModeRail
	ModeRoad
	ModeAir
)

func (m TransportMode) String() string {
	switch m {
	case ModeMaritime:
		return "maritime"
	case ModeRail:
		return "rail"
	case ModeRoad:
		return "road"
	case ModeAir:
		return "air"
	default:
		return "unknown"
	}
}

// ParseTransportMode matches mode strings case-insensitively. An unknown mode
// returns (ModeUnknown, false) so the caller can skip the owning node/edge
// rather than fail the whole load.
func ParseTransportMode(s string) (TransportMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "maritime", "sea", "ocean":
		return ModeMaritime, true
	case "rail", "train":
		return ModeRail, true
	case "road", "truck":
		return ModeRoad, true
	case "air":
		return ModeAir, true
	default:
		return ModeUnknown, false
	}
}

// defaultCarbonIntensity is kg CO2 per tonne-km, used when an edge document
// omits carbon_kg_per_tonne_km.
func (m TransportMode) defaultCarbonIntensity() float64 {
	switch m {
	case ModeMaritime:
		return 0.020
	case ModeRail:
		return 0.025
	case ModeRoad:
		return 0.100
	case ModeAir:
		return 0.800
	default:
		return 0
	}
}

// DefaultCarbonIntensity exposes defaultCarbonIntensity for loaders filling
// in a missing edge attribute.
func (m TransportMode) DefaultCarbonIntensity() float64 {
	return m.defaultCarbonIntensity()
}

// transferMatrix holds the dwell overhead, in hours, for switching modes at
// an intermediate node. It is keyed on the unordered pair, since the source
// table is symmetric for every case spec.md lists.
var transferMatrix = map[[2]TransportMode]float64{
	{ModeMaritime, ModeRail}:  24,
	{ModeMaritime, ModeRoad}:  12,
	{ModeRail, ModeRoad}:      6,
}

// TransferHours returns the dwell overhead for switching from one mode to
// another at an intermediate node. Any transfer involving Air is 4h
// regardless of the other side; same-mode or an unlisted pair floors at 2h.
func TransferHours(from, to TransportMode) float64 {
	if from == to {
		return 2
	}
	if from == ModeAir || to == ModeAir {
		return 4
	}
	if h, ok := transferMatrix[[2]TransportMode{from, to}]; ok {
		return h
	}
	if h, ok := transferMatrix[[2]TransportMode{to, from}]; ok {
		return h
	}
	return 2
}
