// Package platereg provides plate→VIN registry implementations behind
// the vehicle.PlateRegistry interface: an in-memory static registry and
// a Neo4j-backed one.
package platereg

import (
	"context"
	"sync"

	"github.com/openbay/quote-engine/engine/vehicle"
)

// Static is an in-memory registry seeded at construction. Reads are
// concurrency-safe; Put is provided for tests and seeding.
type Static struct {
	mu sync.RWMutex
	m  map[string]string // "JUR:PLATE" -> VIN
}

// NewStatic creates a Static registry from seed entries.
func NewStatic(seed []Entry) *Static {
	s := &Static{m: make(map[string]string, len(seed))}
	for _, e := range seed {
		s.m[key(e.Jurisdiction, e.Plate)] = e.VIN
	}
	return s
}

// Entry is one plate registration.
type Entry struct {
	Jurisdiction string `json:"jurisdiction"`
	Plate        string `json:"plate"`
	VIN          string `json:"vin"`
}

func key(jurisdiction, plate string) string {
	return jurisdiction + ":" + vehicle.NormalizePlate(plate)
}

// Put registers or replaces a plate.
func (s *Static) Put(e Entry) {
	s.mu.Lock()
	s.m[key(e.Jurisdiction, e.Plate)] = e.VIN
	s.mu.Unlock()
}

// Lookup implements vehicle.PlateRegistry.
func (s *Static) Lookup(_ context.Context, jurisdiction, plate string) (string, error) {
	s.mu.RLock()
	vin, ok := s.m[key(jurisdiction, plate)]
	s.mu.RUnlock()
	if !ok {
		return "", vehicle.ErrPlateNotFound
	}
	return vin, nil
}

// DemoSeed is a small reference registry used when no external registry
// is configured.
var DemoSeed = []Entry{
	{Jurisdiction: "CA", Plate: "8ABC123", VIN: "1HGCM82633A123456"},
	{Jurisdiction: "CA", Plate: "7XYZ789", VIN: "5YJ3E1EA1NF123456"},
	{Jurisdiction: "NY", Plate: "KLM4567", VIN: "JN1AZ4EH8DM430111"},
	{Jurisdiction: "TX", Plate: "BRP9012", VIN: "1FTFW1ET5DFC10312"},
	{Jurisdiction: "WA", Plate: "MOTO22", VIN: "JH2RC5006LM200001"},
	{Jurisdiction: "FL", Plate: "VSP88", VIN: "ZAPM4583PK5700215"},
}
