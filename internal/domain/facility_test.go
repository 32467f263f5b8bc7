package domain

import (
	"errors"
	"testing"
)

func validFacility() Facility {
	return Facility{
		FacilityID: "F1",
		Name:       "Center One",
		City:       "Campinas",
		Region:     "SE",
		Location:   Coordinates{Lat: -22.9, Lon: -47.06},
		Occupancy:  40,
		Capacity:   100,
		Existing:   true,
	}
}

func TestFacilityValidate(t *testing.T) {
	if err := validFacility().Validate(); err != nil {
		t.Fatalf("valid facility rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Facility)
	}{
		{"empty id", func(f *Facility) { f.FacilityID = "" }},
		{"zero capacity", func(f *Facility) { f.Capacity = 0 }},
		{"negative capacity", func(f *Facility) { f.Capacity = -10 }},
		{"negative occupancy", func(f *Facility) { f.Occupancy = -1 }},
		{"occupancy over capacity", func(f *Facility) { f.Occupancy = 101 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFacility()
			tc.mutate(&f)
			if err := f.Validate(); !errors.Is(err, ErrInvalidFacility) {
				t.Fatalf("expected ErrInvalidFacility, got %v", err)
			}
		})
	}

	f := validFacility()
	f.Location.Lat = 95
	if err := f.Validate(); !errors.Is(err, ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestFacilityDerivedValues(t *testing.T) {
	f := validFacility()

	if got := f.RemainingCapacity(); got != 60 {
		t.Fatalf("remaining capacity = %v, want 60", got)
	}
	if got := f.OccupancyRatio(); got != 0.4 {
		t.Fatalf("occupancy ratio = %v, want 0.4", got)
	}
}

func TestFixedCostScaled(t *testing.T) {
	fc := FixedCost{Amount: 1000, Source: FixedCostExplicit}

	scaled := fc.Scaled(1.1).Scaled(1.2)
	if scaled.Amount != 1000*1.1*1.2 {
		t.Fatalf("scaled amount = %v, want %v", scaled.Amount, 1000*1.1*1.2)
	}
	if scaled.Source != FixedCostExplicit {
		t.Fatalf("scaling must not change the source tag, got %q", scaled.Source)
	}
	if fc.Amount != 1000 {
		t.Fatalf("Scaled must not mutate the receiver, amount = %v", fc.Amount)
	}
}
