package quote

import "time"

// Config carries the business constants of the calculation. They are
// operator-tunable configuration, not algorithmic truths; DefaultConfig
// returns the reference values.
type Config struct {
	// Diagnostic labor adjustment.
	LowConfidence       float64 // below this the diagnosis is "low confidence"
	HighConfidence      float64 // above this the diagnosis is "high confidence"
	MaxDiagnosticSteps  int     // more steps than this implies extra labor
	LowConfidenceLabor  float64 // labor-hours factor for a shaky diagnosis
	HighConfidenceLabor float64 // labor-hours factor for a confident diagnosis

	// Vehicle condition adjustment. Age bands are mutually exclusive,
	// widest first; the mileage factor stacks independently.
	OldVehicleYears   int
	OldVehicleLabor   float64
	AgingVehicleYears int
	AgingVehicleLabor float64
	HighMileage       int
	HighMileageLabor  float64

	// Urgency multipliers applied to the labor rate.
	UrgencyRates map[Urgency]float64

	// Brand markup on parts cost only. Luxury is checked first; the two
	// sets are mutually exclusive. Keys are normalized brand names.
	LuxuryBrands map[string]bool
	ImportBrands map[string]bool
	LuxuryParts  float64
	ImportParts  float64

	// Travel pricing.
	TravelBaseFee   float64
	TravelPerMile   float64
	FreeTravelMiles float64
	ShopLocation    LatLon // haversine origin when only a location is supplied

	// Quote validity window.
	Validity time.Duration
}

// DefaultConfig returns the reference constants.
func DefaultConfig() Config {
	return Config{
		LowConfidence:       0.6,
		HighConfidence:      0.8,
		MaxDiagnosticSteps:  3,
		LowConfidenceLabor:  1.2,
		HighConfidenceLabor: 0.9,

		OldVehicleYears:   15,
		OldVehicleLabor:   1.3,
		AgingVehicleYears: 10,
		AgingVehicleLabor: 1.15,
		HighMileage:       150000,
		HighMileageLabor:  1.1,

		UrgencyRates: map[Urgency]float64{
			UrgencyLow:       0.95,
			UrgencyMedium:    1.1,
			UrgencyHigh:      1.25,
			UrgencyEmergency: 1.5,
		},

		LuxuryBrands: map[string]bool{
			"bmw": true, "mercedes": true, "audi": true, "lexus": true,
			"acura": true, "infiniti": true, "cadillac": true,
		},
		ImportBrands: map[string]bool{
			"toyota": true, "honda": true, "nissan": true,
			"subaru": true, "mazda": true, "mitsubishi": true,
		},
		LuxuryParts: 1.3,
		ImportParts: 1.1,

		TravelBaseFee:   25,
		TravelPerMile:   2,
		FreeTravelMiles: 10,
		// Reference shop location (Oakland, CA).
		ShopLocation: LatLon{Lat: 37.8044, Lon: -122.2712},

		Validity: 7 * 24 * time.Hour,
	}
}
