package quote

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/openbay/quote-engine/engine/pricing"
	"github.com/openbay/quote-engine/pkg/fn"
)

// ErrNoFallbackEntry is the one fatal condition: the pricing table is
// missing even its fallback entry, so nothing can be priced.
var ErrNoFallbackEntry = errors.New("pricing table has no fallback entry")

// Calculator produces quotes from a pricing catalog. Each calculation
// reads one immutable catalog snapshot, so concurrent calls need no
// coordination.
type Calculator struct {
	catalog *pricing.Catalog
	cfg     Config
	now     func() time.Time // for testing
	newID   func() string    // for testing
}

// NewCalculator creates a Calculator over a catalog with the given config.
func NewCalculator(catalog *pricing.Catalog, cfg Config) *Calculator {
	if cfg.UrgencyRates == nil {
		cfg = DefaultConfig()
	}
	return &Calculator{
		catalog: catalog,
		cfg:     cfg,
		now:     time.Now,
		newID:   func() string { return ulid.Make().String() },
	}
}

// calcState threads the intermediate values through the pipeline stages.
type calcState struct {
	opts       Options
	entry      pricing.Entry
	fallback   bool
	laborHours float64
	laborRate  float64
	laborCost  float64
	partsCost  float64
	travelCost float64
	total      float64
	notes      []string
}

// Generate prices a service request. It never fails for a recognised
// vehicle/service combination: a missing pricing entry degrades to the
// fallback entry with the substitution noted in the description. The
// stage order is fixed; re-ordering the stages changes results.
func (c *Calculator) Generate(ctx context.Context, requestID string, opts Options) (Quote, error) {
	snap := c.catalog.Snapshot()

	pipe := fn.Pipeline(
		fn.Named("quote.resolve_pricing", c.resolvePricing(snap)),
		fn.MapStage(c.baseLaborHours),
		fn.MapStage(c.adjustForDiagnosis),
		fn.MapStage(c.adjustForVehicleAge),
		fn.MapStage(c.adjustForMileage),
		fn.MapStage(c.applyUrgencyRate),
		fn.MapStage(c.computeLaborCost),
		fn.MapStage(c.computePartsCost),
		fn.MapStage(c.computeTravelCost),
		fn.MapStage(c.computeTotal),
	)

	st, err := pipe(ctx, &calcState{opts: opts}).Unwrap()
	if err != nil {
		return Quote{}, err
	}

	pricedAs := ""
	if st.fallback {
		pricedAs = st.entry.ServiceType
	}

	now := c.now()
	return Quote{
		ID:                     c.newID(),
		ServiceRequestID:       requestID,
		Description:            c.describe(st),
		PricedAs:               pricedAs,
		LaborCost:              st.laborCost,
		PartsCost:              st.partsCost,
		TravelCost:             st.travelCost,
		TotalCost:              st.total,
		EstimatedDurationHours: math.Round(st.laborHours*100) / 100,
		ValidUntil:             now.Add(c.cfg.Validity),
		Status:                 StatusPending,
		CreatedAt:              now,
	}, nil
}

// resolvePricing looks the service type up in the snapshot, substituting
// the fallback entry on a miss so quoting always succeeds.
func (c *Calculator) resolvePricing(snap *pricing.Snapshot) fn.Stage[*calcState, *calcState] {
	return func(_ context.Context, st *calcState) fn.Result[*calcState] {
		if e, ok := snap.Get(st.opts.ServiceType); ok {
			st.entry = e
			return fn.Ok(st)
		}
		fb, ok := snap.Get(pricing.FallbackServiceType)
		if !ok {
			return fn.Errf[*calcState]("%w: wanted %q", ErrNoFallbackEntry, st.opts.ServiceType)
		}
		st.entry = fb
		st.fallback = true
		st.notes = append(st.notes,
			fmt.Sprintf("no pricing for %q, priced as %s", st.opts.ServiceType, pricing.FallbackServiceType))
		return fn.Ok(st)
	}
}

func (c *Calculator) baseLaborHours(st *calcState) *calcState {
	st.laborHours = st.entry.EstimatedHours
	if st.opts.CustomLaborHours > 0 {
		st.laborHours = st.opts.CustomLaborHours
	}
	st.laborRate = st.entry.LaborRate
	return st
}

// adjustForDiagnosis scales labor hours by diagnosis quality. Confidence
// is evaluated before step count, so a confident diagnosis never also
// takes the extra-investigation factor.
func (c *Calculator) adjustForDiagnosis(st *calcState) *calcState {
	d := st.opts.Diagnostic
	if d == nil {
		return st
	}
	switch {
	case d.Confidence > c.cfg.HighConfidence:
		st.laborHours *= c.cfg.HighConfidenceLabor
		st.notes = append(st.notes, "confident diagnosis, reduced labor")
	case d.Confidence < c.cfg.LowConfidence || d.DiagnosticStepCount > c.cfg.MaxDiagnosticSteps:
		st.laborHours *= c.cfg.LowConfidenceLabor
		st.notes = append(st.notes, "uncertain diagnosis, extra investigation labor")
	}
	return st
}

// adjustForVehicleAge applies mutually exclusive age bands, widest first.
func (c *Calculator) adjustForVehicleAge(st *calcState) *calcState {
	age := c.now().Year() - st.opts.Vehicle.Year
	switch {
	case age > c.cfg.OldVehicleYears:
		st.laborHours *= c.cfg.OldVehicleLabor
		st.notes = append(st.notes, fmt.Sprintf("vehicle over %d years old", c.cfg.OldVehicleYears))
	case age > c.cfg.AgingVehicleYears:
		st.laborHours *= c.cfg.AgingVehicleLabor
		st.notes = append(st.notes, fmt.Sprintf("vehicle over %d years old", c.cfg.AgingVehicleYears))
	}
	return st
}

// adjustForMileage stacks independently of the age adjustment.
func (c *Calculator) adjustForMileage(st *calcState) *calcState {
	if st.opts.Mileage > c.cfg.HighMileage {
		st.laborHours *= c.cfg.HighMileageLabor
		st.notes = append(st.notes, "high mileage")
	}
	return st
}

// applyUrgencyRate scales the labor rate. A diagnosis flagging emergency
// is authoritative: the multiplier is floored at the emergency rate.
func (c *Calculator) applyUrgencyRate(st *calcState) *calcState {
	urgency := st.opts.Urgency
	if !ValidUrgencies[urgency] {
		urgency = UrgencyMedium
	}
	mult := c.cfg.UrgencyRates[urgency]
	if d := st.opts.Diagnostic; d != nil && d.UrgencyLevel == UrgencyEmergency {
		if em := c.cfg.UrgencyRates[UrgencyEmergency]; mult < em {
			mult = em
			st.notes = append(st.notes, "diagnosis flagged emergency")
		}
	}
	st.laborRate *= mult
	return st
}

func (c *Calculator) computeLaborCost(st *calcState) *calcState {
	st.laborCost = roundMoney(st.laborHours * st.laborRate)
	return st
}

// computePartsCost prices parts from, in order: the caller's selected
// parts (unmatched names contribute zero, never an error), the diagnosis
// cost-band midpoint, or the mean of the entry's common parts. A brand
// markup then applies to parts only.
func (c *Calculator) computePartsCost(st *calcState) *calcState {
	parts := st.entry.CommonParts
	var cost float64
	switch {
	case len(st.opts.SelectedParts) > 0:
		cost = fn.SumBy(st.opts.SelectedParts, func(name string) float64 {
			p, ok := fn.Find(parts, func(p pricing.Part) bool { return p.Name == name })
			if !ok {
				return 0
			}
			return p.Price
		})
	case st.opts.Diagnostic != nil && st.opts.Diagnostic.EstimatedCost.Max > 0:
		cost = st.opts.Diagnostic.EstimatedCost.Midpoint()
	case len(parts) > 0:
		cost = fn.SumBy(parts, func(p pricing.Part) float64 { return p.Price }) / float64(len(parts))
	}

	switch brand := brandKey(st.opts.Vehicle.Make); {
	case c.cfg.LuxuryBrands[brand]:
		cost *= c.cfg.LuxuryParts
		st.notes = append(st.notes, "luxury brand parts markup")
	case c.cfg.ImportBrands[brand]:
		cost *= c.cfg.ImportParts
		st.notes = append(st.notes, "import brand parts markup")
	}

	st.partsCost = roundMoney(cost)
	return st
}

// computeTravelCost charges the base fee plus a per-mile rate beyond the
// free radius. No location and no distance means no travel charge.
func (c *Calculator) computeTravelCost(st *calcState) *calcState {
	var miles float64
	switch {
	case st.opts.TravelDistanceMiles != nil:
		miles = *st.opts.TravelDistanceMiles
	case st.opts.Location != nil:
		miles = haversineMiles(c.cfg.ShopLocation, *st.opts.Location)
	default:
		return st
	}
	if miles < 0 {
		miles = 0
	}
	cost := c.cfg.TravelBaseFee
	if extra := miles - c.cfg.FreeTravelMiles; extra > 0 {
		cost += extra * c.cfg.TravelPerMile
		st.notes = append(st.notes, fmt.Sprintf("travel beyond %.0f-mile radius", c.cfg.FreeTravelMiles))
	}
	st.travelCost = roundMoney(cost)
	return st
}

func (c *Calculator) computeTotal(st *calcState) *calcState {
	subtotal := st.laborCost + st.partsCost + st.travelCost
	if dp := st.opts.DiscountPercent; dp > 0 {
		if dp > 100 {
			dp = 100
		}
		subtotal *= 1 - dp/100
		st.notes = append(st.notes, fmt.Sprintf("%.0f%% discount applied", dp))
	}
	st.total = roundMoney(subtotal)
	return st
}

// describe builds the human-readable quote description, folding in any
// fallback substitution or adjustment notes so they stay auditable.
func (c *Calculator) describe(st *calcState) string {
	service := strings.ReplaceAll(st.entry.ServiceType, "_", " ")
	if st.fallback {
		service = strings.ReplaceAll(st.opts.ServiceType, "_", " ")
	}
	desc := fmt.Sprintf("%s for %s", service, st.opts.Vehicle)
	if len(st.notes) > 0 {
		desc += " (" + strings.Join(st.notes, "; ") + ")"
	}
	return desc
}

// roundMoney rounds to the nearest whole currency unit.
func roundMoney(v float64) float64 {
	if v < 0 {
		return 0
	}
	return math.Round(v)
}

// brandKey normalizes a make for brand-set matching: lowercase, first
// hyphen-separated token ("Mercedes-Benz" matches "mercedes").
func brandKey(mk string) string {
	k := strings.ToLower(strings.TrimSpace(mk))
	if i := strings.IndexByte(k, '-'); i > 0 {
		k = k[:i]
	}
	return k
}

// haversineMiles estimates the great-circle distance between two points.
func haversineMiles(a, b LatLon) float64 {
	const earthRadiusMiles = 3958.8
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}
