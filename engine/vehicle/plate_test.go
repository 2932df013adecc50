package vehicle

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// mapRegistry is a trivial in-package PlateRegistry for resolver tests.
type mapRegistry struct {
	m       map[string]string
	lookups int
	fail    error
}

func (r *mapRegistry) Lookup(_ context.Context, jurisdiction, plate string) (string, error) {
	r.lookups++
	if r.fail != nil {
		return "", r.fail
	}
	vin, ok := r.m[jurisdiction+":"+plate]
	if !ok {
		return "", ErrPlateNotFound
	}
	return vin, nil
}

func plateResolver(reg PlateRegistry) *Resolver {
	r := NewResolver(reg)
	r.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestValidatePlate(t *testing.T) {
	valid := []struct{ plate, jur string }{
		{"8ABC123", "CA"},
		{"AB", "NY"},
		{"ABC 123", "TX"},
		{"abc123", "wa"},
		{" MOTO22 ", "FL"},
	}
	for _, tc := range valid {
		if err := ValidatePlate(tc.plate, tc.jur); err != nil {
			t.Errorf("ValidatePlate(%q, %q) = %v, want nil", tc.plate, tc.jur, err)
		}
	}

	invalid := []struct{ plate, jur string }{
		{"A", "CA"},         // too short
		{"ABCDEFGHI", "CA"}, // too long
		{"AB-123", "CA"},    // punctuation
		{"AB  123", "CA"},   // two spaces
		{"", "CA"},          // empty
	}
	for _, tc := range invalid {
		if err := ValidatePlate(tc.plate, tc.jur); !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("ValidatePlate(%q, %q) = %v, want ErrInvalidFormat", tc.plate, tc.jur, err)
		}
	}
	if err := ValidatePlate("8ABC123", "ZZ"); !errors.Is(err, ErrUnknownJurisdiction) {
		t.Errorf("unknown jurisdiction: %v, want ErrUnknownJurisdiction", err)
	}
}

func TestDecodePlate_Found(t *testing.T) {
	reg := &mapRegistry{m: map[string]string{"CA:8ABC123": "1HGCM82633A123456"}}
	r := plateResolver(reg)

	res, err := r.DecodePlate(context.Background(), "8abc123", "ca")
	if err != nil {
		t.Fatalf("expected lookup, got %v", err)
	}
	if !res.Found || res.Confidence != "high" {
		t.Errorf("found=%v confidence=%q, want found high", res.Found, res.Confidence)
	}
	if res.Identity.Make != "Honda" || res.Identity.Year != 2003 {
		t.Errorf("identity = %+v, want 2003 Honda", res.Identity)
	}
	if res.VIN != "1HGCM82633A123456" {
		t.Errorf("vin = %q", res.VIN)
	}
}

func TestDecodePlate_SpaceNormalized(t *testing.T) {
	reg := &mapRegistry{m: map[string]string{"TX:BRP9012": "1FTFW1ET5DFC10312"}}
	r := plateResolver(reg)

	res, err := r.DecodePlate(context.Background(), "BRP 9012", "TX")
	if err != nil {
		t.Fatalf("expected lookup, got %v", err)
	}
	if !res.Found {
		t.Error("plate with interior space should normalize to the registry key")
	}
}

func TestDecodePlate_NotFoundIsLowConfidence(t *testing.T) {
	reg := &mapRegistry{m: map[string]string{}}
	r := plateResolver(reg)

	res, err := r.DecodePlate(context.Background(), "NOPE123", "CA")
	if err != nil {
		t.Fatalf("not-found must not be an error: %v", err)
	}
	if res.Found {
		t.Error("found should be false")
	}
	if res.Confidence != "low" || res.Error == "" {
		t.Errorf("confidence=%q error=%q, want low confidence with message", res.Confidence, res.Error)
	}
}

func TestDecodePlate_FormatErrorBeforeLookup(t *testing.T) {
	reg := &mapRegistry{m: map[string]string{}}
	r := plateResolver(reg)

	_, err := r.DecodePlate(context.Background(), "!!", "CA")
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("err = %v, want ErrInvalidFormat", err)
	}
	if reg.lookups != 0 {
		t.Error("malformed plate must fail before any registry lookup")
	}
}

func TestDecodePlate_RegistryFailurePropagates(t *testing.T) {
	reg := &mapRegistry{fail: fmt.Errorf("connection refused")}
	r := plateResolver(reg)

	_, err := r.DecodePlate(context.Background(), "8ABC123", "CA")
	if err == nil || errors.Is(err, ErrPlateNotFound) {
		t.Fatalf("infrastructure failure must surface as an error, got %v", err)
	}
}

func TestDecodePlate_ShortRegisteredVIN(t *testing.T) {
	// Two-wheeler registrations can carry shorter VINs.
	reg := &mapRegistry{m: map[string]string{"WA:MOTO22": "JH2RC50060"}}
	r := plateResolver(reg)

	res, err := r.DecodePlate(context.Background(), "MOTO22", "WA")
	if err != nil {
		t.Fatalf("expected lookup, got %v", err)
	}
	if !res.Found {
		t.Fatal("expected found")
	}
	if res.Identity.Class != ClassMotorcycle {
		t.Errorf("class = %q, want motorcycle", res.Identity.Class)
	}
}

func TestJurisdictions(t *testing.T) {
	all := Jurisdictions()
	if len(all) != 51 {
		t.Fatalf("len = %d, want 51 (50 states + DC)", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Code >= all[i].Code {
			t.Fatalf("jurisdictions not sorted: %s before %s", all[i-1].Code, all[i].Code)
		}
	}
	if !SupportedJurisdiction("CA") || SupportedJurisdiction("XX") {
		t.Error("SupportedJurisdiction table wrong for CA/XX")
	}
}
