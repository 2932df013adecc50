package platereg

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/openbay/quote-engine/engine/vehicle"
)

// result is the minimal interface needed from a neo4j result.
type result interface {
	Next(ctx context.Context) bool
	Record() *neo4j.Record
}

// runner is the minimal interface needed from a neo4j session.
type runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (result, error)
	Close(ctx context.Context) error
}

// Neo4jRegistry is a plate registry backed by Plate nodes in Neo4j,
// keyed by jurisdiction+plate.
type Neo4jRegistry struct {
	driver     neo4j.DriverWithContext
	newSession func(ctx context.Context) runner // for testing
}

// NewNeo4j creates a Neo4j-backed registry.
func NewNeo4j(driver neo4j.DriverWithContext) *Neo4jRegistry {
	return &Neo4jRegistry{driver: driver}
}

// neo4jSessionAdapter adapts neo4j.SessionWithContext to the runner interface.
type neo4jSessionAdapter struct {
	sess neo4j.SessionWithContext
}

func (a *neo4jSessionAdapter) Run(ctx context.Context, cypher string, params map[string]any) (result, error) {
	return a.sess.Run(ctx, cypher, params)
}

func (a *neo4jSessionAdapter) Close(ctx context.Context) error {
	return a.sess.Close(ctx)
}

func (r *Neo4jRegistry) session(ctx context.Context) runner {
	if r.newSession != nil {
		return r.newSession(ctx)
	}
	return &neo4jSessionAdapter{sess: r.driver.NewSession(ctx, neo4j.SessionConfig{})}
}

// Lookup implements vehicle.PlateRegistry.
func (r *Neo4jRegistry) Lookup(ctx context.Context, jurisdiction, plate string) (string, error) {
	sess := r.session(ctx)
	defer sess.Close(ctx)

	cypher := `MATCH (p:Plate {jurisdiction: $jur, plate: $plate}) RETURN p.vin AS vin`
	res, err := sess.Run(ctx, cypher, map[string]any{
		"jur":   jurisdiction,
		"plate": vehicle.NormalizePlate(plate),
	})
	if err != nil {
		return "", err
	}
	if !res.Next(ctx) {
		return "", vehicle.ErrPlateNotFound
	}
	vinVal, ok := res.Record().Get("vin")
	if !ok {
		return "", vehicle.ErrPlateNotFound
	}
	vin, ok := vinVal.(string)
	if !ok || vin == "" {
		return "", vehicle.ErrPlateNotFound
	}
	return vin, nil
}

// Seed merges entries into the registry. Existing plates are updated.
func (r *Neo4jRegistry) Seed(ctx context.Context, entries []Entry) error {
	sess := r.session(ctx)
	defer sess.Close(ctx)

	cypher := `MERGE (p:Plate {jurisdiction: $jur, plate: $plate}) SET p.vin = $vin`
	for _, e := range entries {
		_, err := sess.Run(ctx, cypher, map[string]any{
			"jur":   e.Jurisdiction,
			"plate": vehicle.NormalizePlate(e.Plate),
			"vin":   e.VIN,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
