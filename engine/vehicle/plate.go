package vehicle

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// PlateRegistry is the closed registry of known plate→VIN mappings.
// Lookup returns ErrPlateNotFound (possibly wrapped) when the plate is
// not registered; any other error is an infrastructure failure.
type PlateRegistry interface {
	Lookup(ctx context.Context, jurisdiction, plate string) (vin string, err error)
}

// Plates are 2-8 alphanumeric characters with at most one interior space.
var plateRegex = regexp.MustCompile(`^[A-Z0-9]{1,8}(?: [A-Z0-9]{1,7})?$`)

// NormalizePlate uppercases, trims, and strips the optional interior
// space so registry keys are canonical.
func NormalizePlate(raw string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), " ", "")
}

// ValidatePlate checks plate format for a jurisdiction. Format errors are
// reported before any lookup so callers can distinguish a malformed plate
// from one that is simply not registered.
func ValidatePlate(plate, jurisdiction string) error {
	jur := strings.ToUpper(strings.TrimSpace(jurisdiction))
	if _, ok := jurisdictionNames[jur]; !ok {
		return NewDecodeError("jurisdiction", jurisdiction, ErrUnknownJurisdiction)
	}
	p := strings.ToUpper(strings.TrimSpace(plate))
	if !plateRegex.MatchString(p) {
		return NewDecodeError("plate", plate, ErrInvalidFormat)
	}
	if n := len(NormalizePlate(p)); n < 2 || n > 8 {
		return NewDecodeError("plate", plate, ErrInvalidFormat)
	}
	return nil
}

// DecodePlate looks a plate up in the registry and decodes the registered
// VIN. A malformed plate or unknown jurisdiction fails fast with an error;
// a plate missing from the registry returns a low-confidence result with
// a nil error, since fabricating an identity would be misleading.
func (r *Resolver) DecodePlate(ctx context.Context, plate, jurisdiction string) (PlateLookupResult, error) {
	if err := ValidatePlate(plate, jurisdiction); err != nil {
		return PlateLookupResult{}, err
	}
	if r.registry == nil {
		return PlateLookupResult{}, fmt.Errorf("decode plate: no registry configured")
	}

	jur := strings.ToUpper(strings.TrimSpace(jurisdiction))
	key := NormalizePlate(plate)

	vin, err := r.registry.Lookup(ctx, jur, key)
	if err != nil {
		if errors.Is(err, ErrPlateNotFound) {
			return PlateLookupResult{
				Confidence: "low",
				Error:      fmt.Sprintf("plate %s/%s not found in registry", jur, key),
			}, nil
		}
		return PlateLookupResult{}, fmt.Errorf("plate registry lookup: %w", err)
	}

	id, err := r.DecodeVIN(vin, "")
	if err != nil {
		// Registered VINs for two-wheelers may be shorter than 17 chars.
		id, err = r.DecodeVIN(vin, ClassMotorcycle)
	}
	if err != nil {
		return PlateLookupResult{
			Confidence: "low",
			Error:      fmt.Sprintf("registry VIN for %s/%s is malformed", jur, key),
		}, nil
	}

	return PlateLookupResult{
		Identity:   id,
		VIN:        id.VIN,
		Confidence: "high",
		Found:      true,
	}, nil
}
