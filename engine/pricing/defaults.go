package pricing

// FallbackServiceType is substituted by the quote calculator when a
// requested service type has no entry. The table losing even this entry
// is the one fatal configuration error in the system.
const FallbackServiceType = "oil_change"

// Defaults returns a fresh copy of the reference pricing table. Values
// are business constants, not derived from a formula.
func Defaults() map[string]Entry {
	entries := []Entry{
		{
			ServiceType:    "oil_change",
			LaborRate:      95,
			EstimatedHours: 0.5,
			CommonParts: []Part{
				{Name: "oil_filter", Price: 12},
				{Name: "engine_oil_5qt", Price: 38},
				{Name: "drain_plug_gasket", Price: 3},
			},
			PriceRange: PriceRange{Min: 45, Max: 120},
		},
		{
			ServiceType:    "brake_service",
			LaborRate:      110,
			EstimatedHours: 2,
			CommonParts: []Part{
				{Name: "brake_pads_front", Price: 65},
				{Name: "brake_pads_rear", Price: 55},
				{Name: "brake_rotor", Price: 85},
				{Name: "brake_fluid", Price: 18},
			},
			PriceRange: PriceRange{Min: 150, Max: 600},
		},
		{
			ServiceType:    "tire_rotation",
			LaborRate:      85,
			EstimatedHours: 0.5,
			CommonParts:    []Part{{Name: "wheel_weights", Price: 8}},
			PriceRange:     PriceRange{Min: 30, Max: 80},
		},
		{
			ServiceType:    "battery_replacement",
			LaborRate:      90,
			EstimatedHours: 0.5,
			CommonParts: []Part{
				{Name: "battery_standard", Price: 140},
				{Name: "terminal_cleaner", Price: 6},
			},
			PriceRange: PriceRange{Min: 120, Max: 280},
		},
		{
			ServiceType:    "engine_diagnostic",
			LaborRate:      120,
			EstimatedHours: 1,
			CommonParts:    []Part{{Name: "diagnostic_scan", Price: 0}},
			PriceRange:     PriceRange{Min: 80, Max: 200},
		},
		{
			ServiceType:    "transmission_service",
			LaborRate:      125,
			EstimatedHours: 2.5,
			CommonParts: []Part{
				{Name: "transmission_fluid", Price: 75},
				{Name: "transmission_filter", Price: 45},
				{Name: "pan_gasket", Price: 25},
			},
			PriceRange: PriceRange{Min: 200, Max: 700},
		},
		{
			ServiceType:    "ac_service",
			LaborRate:      105,
			EstimatedHours: 1.5,
			CommonParts: []Part{
				{Name: "refrigerant", Price: 60},
				{Name: "cabin_air_filter", Price: 22},
			},
			PriceRange: PriceRange{Min: 120, Max: 400},
		},
		{
			ServiceType:    "spark_plug_replacement",
			LaborRate:      100,
			EstimatedHours: 1,
			CommonParts: []Part{
				{Name: "spark_plug_set", Price: 48},
				{Name: "ignition_coil", Price: 70},
			},
			PriceRange: PriceRange{Min: 90, Max: 350},
		},
		{
			ServiceType:    "coolant_flush",
			LaborRate:      95,
			EstimatedHours: 1,
			CommonParts: []Part{
				{Name: "coolant_2gal", Price: 42},
				{Name: "thermostat", Price: 30},
			},
			PriceRange: PriceRange{Min: 90, Max: 250},
		},
		{
			ServiceType:    "chain_service",
			LaborRate:      85,
			EstimatedHours: 1,
			CommonParts: []Part{
				{Name: "chain", Price: 95},
				{Name: "sprocket_set", Price: 110},
				{Name: "chain_lube", Price: 14},
			},
			PriceRange: PriceRange{Min: 80, Max: 400},
		},
	}

	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.ServiceType] = e
	}
	return m
}
