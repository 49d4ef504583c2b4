// Package graphsource implements application.GraphSource against MongoDB.
package graphsource

import (
	"context"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wyfcoding/freightroute/internal/freight/domain"
)

const (
	nodeCollection = "transport_node"
	edgeCollection = "transport_edge"

	defaultAvgDwellHours    = 24
	defaultCostPerKg        = 0
	defaultWageCentsHourly  = 1500
	defaultSafetyRating     = 3
)

// Source loads the transport graph from the transport_node/transport_edge
// collections, per SPEC_FULL.md §4.9. It is a collaborator; the core only
// depends on the application.GraphSource interface this satisfies.
type Source struct {
	db *mongo.Database
}

// New binds a Source to an existing Mongo database handle.
func New(db *mongo.Database) *Source {
	return &Source{db: db}
}

type portDoc struct {
	Unlocode string `bson:"unlocode"`
	Name     string `bson:"name"`
	Country  struct {
		Code string `bson:"code"`
	} `bson:"country"`
	Location struct {
		Coordinates []float64 `bson:"coordinates"`
	} `bson:"location"`
	AvgDwellHours *float64 `bson:"avg_dwell_hours"`
}

type nodeDoc struct {
	Code  string   `bson:"code"`
	Port  portDoc  `bson:"port"`
	Modes []string `bson:"modes"`
}

type carrierDoc struct {
	Code            string `bson:"code"`
	Name            string `bson:"name"`
	AvgWageCents    *int64 `bson:"avg_wage_cents_hourly"`
	SafetyRating    *int   `bson:"safety_rating"`
	Unionized       *bool  `bson:"unionized"`
	Sanctioned      *bool  `bson:"sanctioned"`
}

type nodeRefDoc struct {
	Code string `bson:"code"`
}

type edgeDoc struct {
	Code              string     `bson:"code"`
	FromNode          nodeRefDoc `bson:"from_node"`
	ToNode            nodeRefDoc `bson:"to_node"`
	Carrier           carrierDoc `bson:"carrier"`
	Mode              string     `bson:"mode"`
	DistanceKm        float64    `bson:"distance_km"`
	BaseCostUSD       float64    `bson:"base_cost_usd"`
	CostPerKgUSD      *float64   `bson:"cost_per_kg_usd"`
	TransitHours      float64    `bson:"transit_hours"`
	CarbonKgPerTonneKm *float64  `bson:"carbon_kg_per_tonne_km"`
}

// LoadGraph implements application.GraphSource.
func (s *Source) LoadGraph(ctx context.Context) (*domain.TransportGraph, error) {
	graph := domain.NewTransportGraph()

	if err := s.loadNodes(ctx, graph); err != nil {
		return nil, err
	}
	if err := s.loadEdges(ctx, graph); err != nil {
		return nil, err
	}

	return graph, nil
}

func (s *Source) loadNodes(ctx context.Context, graph *domain.TransportGraph) error {
	cur, err := s.db.Collection(nodeCollection).Find(ctx, bson.M{"active": true})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc nodeDoc
		if err := cur.Decode(&doc); err != nil {
			continue
		}

		modes := make(map[domain.TransportMode]bool)
		for _, raw := range doc.Modes {
			if m, ok := domain.ParseTransportMode(raw); ok {
				modes[m] = true
			}
		}

		dwell := float64(defaultAvgDwellHours)
		if doc.Port.AvgDwellHours != nil {
			dwell = *doc.Port.AvgDwellHours
		}

		lat, lon := 0.0, 0.0
		if len(doc.Port.Location.Coordinates) == 2 {
			lon, lat = doc.Port.Location.Coordinates[0], doc.Port.Location.Coordinates[1]
		}

		graph.AddNode(&domain.TransportNode{
			ID:          doc.Code,
			Code:        doc.Code,
			Name:        doc.Port.Name,
			Country:     doc.Port.Country.Code,
			Lat:         lat,
			Lon:         lon,
			Modes:       modes,
			AvgDwellHrs: dwell,
		})
	}
	return cur.Err()
}

func (s *Source) loadEdges(ctx context.Context, graph *domain.TransportGraph) error {
	cur, err := s.db.Collection(edgeCollection).Find(ctx, bson.M{"active": true})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc edgeDoc
		if err := cur.Decode(&doc); err != nil {
			continue
		}

		mode, ok := domain.ParseTransportMode(doc.Mode)
		if !ok {
			continue
		}

		costPerKg := defaultCostPerKg
		if doc.CostPerKgUSD != nil {
			costPerKg = *doc.CostPerKgUSD
		}

		carbonPerTonneKm := mode.DefaultCarbonIntensity()
		if doc.CarbonKgPerTonneKm != nil {
			carbonPerTonneKm = *doc.CarbonKgPerTonneKm
		}
		wage := int64(defaultWageCentsHourly)
		if doc.Carrier.AvgWageCents != nil {
			wage = *doc.Carrier.AvgWageCents
		}
		safety := defaultSafetyRating
		if doc.Carrier.SafetyRating != nil {
			safety = *doc.Carrier.SafetyRating
		}
		unionized := false
		if doc.Carrier.Unionized != nil {
			unionized = *doc.Carrier.Unionized
		}
		sanctioned := false
		if doc.Carrier.Sanctioned != nil {
			sanctioned = *doc.Carrier.Sanctioned
		}

		edge := &domain.TransportEdge{
			ID:               doc.Code,
			Code:             doc.Code,
			From:             doc.FromNode.Code,
			To:               doc.ToNode.Code,
			Mode:             mode,
			CarrierCode:      doc.Carrier.Code,
			CarrierName:      doc.Carrier.Name,
			DistanceKm:       doc.DistanceKm,
			BaseCostUSD:      decimal.NewFromFloat(doc.BaseCostUSD),
			CostPerKg:        decimal.NewFromFloat(costPerKg),
			TransitHours:     doc.TransitHours,
			CarbonPerTonneKm: carbonPerTonneKm,
			WageCentsHourly:  wage,
			SafetyRating:     safety,
			Unionized:        unionized,
			Sanctioned:       sanctioned,
			Active:           true,
		}

		graph.AddEdge(edge)
	}

	return cur.Err()
}
