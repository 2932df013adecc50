package vehicle

import (
	"regexp"
	"strings"
	"time"
)

// Car VINs are exactly 17 characters; the letters I, O, Q are never issued.
var carVINRegex = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)

// Motorcycle and scooter manufacturers commonly issue shorter identifiers,
// so the accepted length range is 9-17 with the same character set.
var bikeVINRegex = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{9,17}$`)

// Resolver decodes VINs and license plates into vehicle identities.
// VIN decoding is pure table lookup; plate lookup goes through the
// configured PlateRegistry.
type Resolver struct {
	registry PlateRegistry
	now      func() time.Time // for testing
}

// NewResolver creates a Resolver. registry may be nil if DecodePlate is
// never used.
func NewResolver(registry PlateRegistry) *Resolver {
	return &Resolver{registry: registry, now: time.Now}
}

// DecodeVIN decodes a raw VIN string into a VehicleIdentity. hint narrows
// the accepted format for two-wheelers; pass "" or ClassCar for the
// canonical 17-character rule. A malformed VIN fails with ErrInvalidFormat;
// an unrecognised manufacturer degrades to UnknownMake instead of failing.
func (r *Resolver) DecodeVIN(raw string, hint VehicleClass) (VehicleIdentity, error) {
	vin := strings.ToUpper(strings.TrimSpace(raw))
	if vin == "" {
		return VehicleIdentity{}, NewDecodeError("vin", raw, ErrInvalidFormat)
	}

	pattern := carVINRegex
	if hint == ClassMotorcycle || hint == ClassScooter {
		pattern = bikeVINRegex
	}
	if !pattern.MatchString(vin) {
		return VehicleIdentity{}, NewDecodeError("vin", vin, ErrInvalidFormat)
	}

	id := VehicleIdentity{
		VIN:   vin,
		Make:  UnknownMake,
		Class: ClassCar,
		Year:  r.now().Year(),
	}
	if hint != "" && ValidClasses[hint] {
		id.Class = hint
	}

	// WMI resolution: the motorcycle table is authoritative for class and
	// overrides the caller's hint; then the car table, then the 2-char
	// fallback.
	wmi3 := vin[:3]
	if m, ok := motoWMI[wmi3]; ok {
		id.Make = m.Make
		id.Class = m.Class
	} else if mk, ok := carWMI[wmi3]; ok {
		id.Make = mk
		id.Class = ClassCar
	} else if mk, ok := wmiFallback[vin[:2]]; ok {
		id.Make = mk
	}

	// Model year lives in the 10th character of full-length VINs only.
	if len(vin) == 17 {
		if year, ok := yearCodes[vin[9]]; ok {
			id.Year = year
		}
	}

	return id, nil
}
