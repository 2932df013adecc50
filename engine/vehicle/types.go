// Package vehicle resolves a VIN or license plate into a normalized
// vehicle identity. Decoding is a pure table lookup; the plate path goes
// through a pluggable registry. It acts as the identity gate for quoting.
package vehicle

import (
	"errors"
	"fmt"
)

// VehicleClass classifies the kind of vehicle a VIN belongs to.
type VehicleClass string

const (
	ClassCar        VehicleClass = "car"
	ClassMotorcycle VehicleClass = "motorcycle"
	ClassScooter    VehicleClass = "scooter"
)

// ValidClasses is the set of recognised vehicle classes.
var ValidClasses = map[VehicleClass]bool{
	ClassCar: true, ClassMotorcycle: true, ClassScooter: true,
}

// UnknownMake is substituted when no manufacturer table matches the WMI.
const UnknownMake = "Unknown"

// VehicleIdentity is the normalized record produced by a decode.
// Class is always set (car when undeterminable), Make is never empty
// (UnknownMake when the WMI is unrecognised), and Year is always a
// 4-digit value (current calendar year when the VIN carries no year).
type VehicleIdentity struct {
	VIN          string       `json:"vin"`
	Make         string       `json:"make"`
	Model        string       `json:"model,omitempty"`
	Year         int          `json:"year"`
	Class        VehicleClass `json:"vehicle_class"`
	Engine       string       `json:"engine,omitempty"`
	Transmission string       `json:"transmission,omitempty"`
	BodyStyle    string       `json:"body_style,omitempty"`
	FuelType     string       `json:"fuel_type,omitempty"`
}

// String returns a short human-readable summary, e.g. "2003 Honda (car)".
func (v VehicleIdentity) String() string {
	if v.Model != "" {
		return fmt.Sprintf("%d %s %s (%s)", v.Year, v.Make, v.Model, v.Class)
	}
	return fmt.Sprintf("%d %s (%s)", v.Year, v.Make, v.Class)
}

// PlateLookupResult is the outcome of a plate lookup. A plate absent from
// the registry is not an error at the transport level: it comes back as a
// low-confidence result so callers can distinguish it from a malformed plate.
type PlateLookupResult struct {
	Identity   VehicleIdentity `json:"identity"`
	VIN        string          `json:"vin,omitempty"`
	Confidence string          `json:"confidence"` // "high" or "low"
	Found      bool            `json:"found"`
	Error      string          `json:"error,omitempty"`
}

// Sentinel errors for decode failures.
var (
	ErrInvalidFormat       = errors.New("invalid format")
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
	ErrPlateNotFound       = errors.New("plate not found in registry")
)

// DecodeError wraps a sentinel with the offending field and value.
type DecodeError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *DecodeError) Unwrap() error { return e.Wrapped }

// NewDecodeError creates a DecodeError.
func NewDecodeError(field, value string, wrapped error) *DecodeError {
	return &DecodeError{Field: field, Value: value, Wrapped: wrapped}
}
