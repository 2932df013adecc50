package platereg

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/openbay/quote-engine/engine/vehicle"
)

type mockResult struct {
	recs []*neo4j.Record
	idx  int
}

func newMockResult(recs ...*neo4j.Record) *mockResult {
	return &mockResult{recs: recs, idx: -1}
}

func (m *mockResult) Next(context.Context) bool {
	m.idx++
	return m.idx < len(m.recs)
}

func (m *mockResult) Record() *neo4j.Record { return m.recs[m.idx] }

type mockSession struct {
	runResult *mockResult
	runErr    error

	cypher string
	params map[string]any
	runs   int
	closed bool
}

func (m *mockSession) Run(_ context.Context, cypher string, params map[string]any) (result, error) {
	m.runs++
	m.cypher = cypher
	m.params = params
	if m.runErr != nil {
		return nil, m.runErr
	}
	return m.runResult, nil
}

func (m *mockSession) Close(context.Context) error {
	m.closed = true
	return nil
}

func registryWith(sess *mockSession) *Neo4jRegistry {
	return &Neo4jRegistry{newSession: func(context.Context) runner { return sess }}
}

func TestNeo4jLookup_Found(t *testing.T) {
	sess := &mockSession{runResult: newMockResult(&neo4j.Record{
		Keys:   []string{"vin"},
		Values: []any{"1HGCM82633A123456"},
	})}
	reg := registryWith(sess)

	vin, err := reg.Lookup(context.Background(), "CA", "8abc 123")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if vin != "1HGCM82633A123456" {
		t.Errorf("vin = %q", vin)
	}
	if sess.params["jur"] != "CA" || sess.params["plate"] != "8ABC123" {
		t.Errorf("params = %v, want normalized plate", sess.params)
	}
	if !sess.closed {
		t.Error("session must be closed")
	}
}

func TestNeo4jLookup_NoRows(t *testing.T) {
	sess := &mockSession{runResult: newMockResult()}
	reg := registryWith(sess)

	_, err := reg.Lookup(context.Background(), "CA", "NOPE123")
	if !errors.Is(err, vehicle.ErrPlateNotFound) {
		t.Fatalf("err = %v, want ErrPlateNotFound", err)
	}
}

func TestNeo4jLookup_MalformedRecord(t *testing.T) {
	cases := []*neo4j.Record{
		{Keys: []string{"other"}, Values: []any{"x"}}, // no vin key
		{Keys: []string{"vin"}, Values: []any{nil}},   // wrong type
		{Keys: []string{"vin"}, Values: []any{""}},    // empty vin
	}
	for i, rec := range cases {
		sess := &mockSession{runResult: newMockResult(rec)}
		_, err := registryWith(sess).Lookup(context.Background(), "CA", "8ABC123")
		if !errors.Is(err, vehicle.ErrPlateNotFound) {
			t.Errorf("case %d: err = %v, want ErrPlateNotFound", i, err)
		}
	}
}

func TestNeo4jLookup_RunError(t *testing.T) {
	sess := &mockSession{runErr: fmt.Errorf("connection refused")}
	reg := registryWith(sess)

	_, err := reg.Lookup(context.Background(), "CA", "8ABC123")
	if err == nil || errors.Is(err, vehicle.ErrPlateNotFound) {
		t.Fatalf("err = %v, want infrastructure failure", err)
	}
	if !sess.closed {
		t.Error("session must be closed even on error")
	}
}

func TestNeo4jSeed(t *testing.T) {
	sess := &mockSession{runResult: newMockResult()}
	reg := registryWith(sess)

	if err := reg.Seed(context.Background(), DemoSeed); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if sess.runs != len(DemoSeed) {
		t.Errorf("runs = %d, want %d", sess.runs, len(DemoSeed))
	}
	if sess.params["plate"] != "VSP88" {
		t.Errorf("last params = %v", sess.params)
	}
}
