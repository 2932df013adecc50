// Package quote turns a service request, a vehicle identity, and optional
// diagnosis metadata into a priced, time-bounded quote. The calculation is
// a fixed-order stage pipeline so results are reproducible.
package quote

import (
	"time"

	"github.com/openbay/quote-engine/engine/vehicle"
)

// Urgency reflects how quickly service is needed. It scales the labor
// rate, never the labor hours.
type Urgency string

const (
	UrgencyLow       Urgency = "low"
	UrgencyMedium    Urgency = "medium"
	UrgencyHigh      Urgency = "high"
	UrgencyEmergency Urgency = "emergency"
)

// ValidUrgencies is the set of recognised urgency levels.
var ValidUrgencies = map[Urgency]bool{
	UrgencyLow: true, UrgencyMedium: true, UrgencyHigh: true, UrgencyEmergency: true,
}

// QuoteStatus is a quote's lifecycle state.
type QuoteStatus string

const (
	StatusPending     QuoteStatus = "pending"
	StatusAccepted    QuoteStatus = "accepted"
	StatusRejected    QuoteStatus = "rejected"
	StatusExpired     QuoteStatus = "expired"
	StatusCancelled   QuoteStatus = "cancelled"
	StatusDepositPaid QuoteStatus = "deposit_paid"
	StatusPaid        QuoteStatus = "paid"
)

// CostRange is a min/max money band.
type CostRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Midpoint returns the arithmetic middle of the band.
func (r CostRange) Midpoint() float64 { return (r.Min + r.Max) / 2 }

// DiagnosticResult is optional metadata from an external AI-diagnosis
// collaborator. It only ever modifies a quote; it never overrides the
// pricing table's existence check.
type DiagnosticResult struct {
	Confidence          float64   `json:"confidence"` // in [0,1]
	UrgencyLevel        Urgency   `json:"urgency_level"`
	EstimatedCost       CostRange `json:"estimated_cost"`
	DiagnosticStepCount int       `json:"diagnostic_step_count"`
}

// LatLon is a geographic coordinate.
type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Options bundles the inputs to a quote calculation.
type Options struct {
	ServiceType         string                  `json:"service_type"`
	Urgency             Urgency                 `json:"urgency"`
	Vehicle             vehicle.VehicleIdentity `json:"vehicle"`
	Mileage             int                     `json:"mileage,omitempty"` // 0 = unknown
	Location            *LatLon                 `json:"location,omitempty"`
	TravelDistanceMiles *float64                `json:"travel_distance_miles,omitempty"`
	Diagnostic          *DiagnosticResult       `json:"diagnostic,omitempty"`
	SelectedParts       []string                `json:"selected_parts,omitempty"`
	DiscountPercent     float64                 `json:"discount_percent,omitempty"`
	CustomLaborHours    float64                 `json:"custom_labor_hours,omitempty"` // 0 = use table hours
}

// Quote is a priced, time-bounded offer. All money fields are whole
// currency units; TotalCost is the rounded sum of the components with
// any discount applied. A quote is mutated only through the lifecycle
// manager and becomes immutable in a terminal state.
type Quote struct {
	ID                     string      `json:"id"`
	ServiceRequestID       string      `json:"service_request_id"`
	Description            string      `json:"description"`
	LaborCost              float64     `json:"labor_cost"`
	PartsCost              float64     `json:"parts_cost"`
	TravelCost             float64     `json:"travel_cost"`
	TotalCost              float64     `json:"total_cost"`
	EstimatedDurationHours float64     `json:"estimated_duration_hours"`
	PricedAs               string      `json:"priced_as,omitempty"` // set when the fallback entry priced the quote
	ValidUntil             time.Time   `json:"valid_until"`
	Status                 QuoteStatus `json:"status"`
	CreatedAt              time.Time   `json:"created_at"`
	AcceptedAt             *time.Time  `json:"accepted_at,omitempty"`
	PaidAt                 *time.Time  `json:"paid_at,omitempty"`
	PaymentMethod          string      `json:"payment_method,omitempty"`
	Notes                  string      `json:"notes,omitempty"`
}
