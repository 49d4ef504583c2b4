package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEdgeCost(t *testing.T) {
	e := &TransportEdge{
		BaseCostUSD: decimal.NewFromFloat(5000),
		CostPerKg:   decimal.NewFromFloat(0.01),
	}
	got := e.Cost(decimal.NewFromFloat(10000))
	assert.True(t, decimal.NewFromFloat(5100).Equal(got), "got %s", got)
}

func TestEdgeCarbon(t *testing.T) {
	e := &TransportEdge{
		DistanceKm:       19500,
		CarbonPerTonneKm: 0.015,
	}
	got := e.Carbon(10000)
	assert.InDelta(t, 2925.0, got, 0.001)
}

func TestEdgeLaborZeroMinWage(t *testing.T) {
	e := &TransportEdge{WageCentsHourly: 1000, SafetyRating: 5, Unionized: true}
	got := e.Labor(0)
	// wage falls back to 0.5, safety=1, union=1 -> 0.4*0.5+0.4*1+0.2*1 = 0.8
	assert.InDelta(t, 0.8, got, 0.0001)
}

func TestEdgeLaborCapsWageAtOne(t *testing.T) {
	e := &TransportEdge{WageCentsHourly: 10000, SafetyRating: 5, Unionized: false}
	got := e.Labor(800)
	// wage = 10000/(2*800) = 6.25 -> capped to 1; safety=1; union=0.5
	assert.InDelta(t, 0.4*1+0.4*1+0.2*0.5, got, 0.0001)
}

func TestEdgeLaborNonUnionized(t *testing.T) {
	e := &TransportEdge{WageCentsHourly: 800, SafetyRating: 3, Unionized: false}
	got := e.Labor(800)
	wage := 800.0 / (2 * 800.0)
	safety := 3.0 / 5.0
	want := 0.4*wage + 0.4*safety + 0.2*0.5
	assert.InDelta(t, want, got, 0.0001)
}
