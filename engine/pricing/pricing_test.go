package pricing

import (
	"errors"
	"sync"
	"testing"
)

func TestEntryValidate(t *testing.T) {
	good := Entry{ServiceType: "oil_change", LaborRate: 95, EstimatedHours: 0.5,
		PriceRange: PriceRange{Min: 45, Max: 120}}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	bad := []Entry{
		{LaborRate: 95, EstimatedHours: 1},                                          // empty type
		{ServiceType: "x", LaborRate: 95, EstimatedHours: 0},                        // zero hours
		{ServiceType: "x", LaborRate: 0, EstimatedHours: 1},                         // zero rate
		{ServiceType: "x", LaborRate: 95, EstimatedHours: 1, PriceRange: PriceRange{Min: 9, Max: 1}}, // inverted range
	}
	for i, e := range bad {
		if err := e.Validate(); !errors.Is(err, ErrInvalidEntry) {
			t.Errorf("case %d: err = %v, want ErrInvalidEntry", i, err)
		}
	}
}

func TestDefaults_AllValidAndFallbackPresent(t *testing.T) {
	d := Defaults()
	if len(d) != 10 {
		t.Fatalf("default table has %d entries, want 10", len(d))
	}
	for st, e := range d {
		if e.ServiceType != st {
			t.Errorf("%s: key/ServiceType mismatch (%q)", st, e.ServiceType)
		}
		if err := e.Validate(); err != nil {
			t.Errorf("%s: %v", st, err)
		}
	}
	if _, ok := d[FallbackServiceType]; !ok {
		t.Fatalf("default table missing fallback entry %q", FallbackServiceType)
	}
}

func TestCatalog_GetKnownAndUnknown(t *testing.T) {
	c := NewCatalog()

	e, err := c.Get("oil_change")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.LaborRate != 95 || e.EstimatedHours != 0.5 {
		t.Errorf("oil_change = %+v", e)
	}

	_, err = c.Get("flux_capacitor_service")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Errorf("err = %v, want ErrEntryNotFound", err)
	}
}

func TestCatalog_SetSwapsVersion(t *testing.T) {
	c := NewCatalog()
	v0 := c.Snapshot().Version

	err := c.Set("oil_change", Entry{LaborRate: 105, EstimatedHours: 0.5,
		PriceRange: PriceRange{Min: 45, Max: 130}})
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	snap := c.Snapshot()
	if snap.Version <= v0 {
		t.Errorf("version %d not bumped past %d", snap.Version, v0)
	}
	e, _ := snap.Get("oil_change")
	if e.LaborRate != 105 {
		t.Errorf("labor rate = %v, want 105", e.LaborRate)
	}
	if e.ServiceType != "oil_change" {
		t.Errorf("ServiceType %q not filled from key", e.ServiceType)
	}
}

func TestCatalog_SetRejectsInvalid(t *testing.T) {
	c := NewCatalog()
	v0 := c.Snapshot().Version

	err := c.Set("oil_change", Entry{LaborRate: -1, EstimatedHours: 0.5})
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("err = %v, want ErrInvalidEntry", err)
	}
	if c.Snapshot().Version != v0 {
		t.Error("rejected update must not swap the snapshot")
	}
}

func TestCatalog_SnapshotIsolation(t *testing.T) {
	c := NewCatalog()
	before := c.Snapshot()

	if err := c.Set("tire_rotation", Entry{LaborRate: 90, EstimatedHours: 0.75,
		PriceRange: PriceRange{Min: 30, Max: 90}}); err != nil {
		t.Fatalf("set: %v", err)
	}

	// The old snapshot still reads the old value.
	e, _ := before.Get("tire_rotation")
	if e.LaborRate != 85 {
		t.Errorf("old snapshot mutated: labor rate = %v", e.LaborRate)
	}
}

func TestCatalog_ResetToDefaultsIdempotent(t *testing.T) {
	c := NewCatalog()
	if err := c.Set("undercoating", Entry{LaborRate: 60, EstimatedHours: 1}); err != nil {
		t.Fatalf("set: %v", err)
	}

	c.ResetToDefaults()
	first := c.Snapshot()
	c.ResetToDefaults()
	second := c.Snapshot()

	if _, err := c.Get("undercoating"); !errors.Is(err, ErrEntryNotFound) {
		t.Error("reset must drop non-default entries")
	}
	if first.Len() != second.Len() {
		t.Fatalf("reset not idempotent: %d vs %d entries", first.Len(), second.Len())
	}
	for _, e := range first.All() {
		got, ok := second.Get(e.ServiceType)
		if !ok || got.LaborRate != e.LaborRate {
			t.Errorf("%s differs across resets", e.ServiceType)
		}
	}
	if second.Version <= first.Version {
		t.Error("each reset installs a new snapshot version")
	}
}

func TestCatalog_AllSorted(t *testing.T) {
	all := NewCatalog().Snapshot().All()
	for i := 1; i < len(all); i++ {
		if all[i-1].ServiceType >= all[i].ServiceType {
			t.Fatalf("entries not sorted: %s before %s", all[i-1].ServiceType, all[i].ServiceType)
		}
	}
}

func TestCatalog_ConcurrentReadersSeeWholeTable(t *testing.T) {
	c := NewCatalog()
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = c.Set("oil_change", Entry{LaborRate: float64(90 + i%20), EstimatedHours: 0.5,
				PriceRange: PriceRange{Min: 45, Max: 130}})
		}
		close(done)
	}()

	for j := 0; j < 4; j++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				snap := c.Snapshot()
				if snap.Len() != 10 {
					t.Errorf("partial table observed: %d entries", snap.Len())
					return
				}
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}
	wg.Wait()
}
