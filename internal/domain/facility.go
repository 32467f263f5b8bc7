package domain

import "fmt"

// An existing or candidate distribution center with finite capacity.
// Invariant: 0 <= Occupancy <= Capacity, Capacity > 0.
// Candidate facilities (Existing == false) participate only when a scenario
// opens them, subject to the scenario's limit on newly opened facilities.
type Facility struct {
	FacilityID string
	Name       string
	City       string
	Region     string
	Location   Coordinates
	Occupancy  float64
	Capacity   float64
	Existing   bool
}

func (f Facility) Validate() error {
	if f.FacilityID == "" {
		return fmt.Errorf("%w: empty facility_id", ErrInvalidFacility)
	}
	if f.Capacity <= 0 {
		return fmt.Errorf("%w: facility %s has capacity %v", ErrInvalidFacility, f.FacilityID, f.Capacity)
	}
	if f.Occupancy < 0 {
		return fmt.Errorf("%w: facility %s has negative occupancy %v", ErrInvalidFacility, f.FacilityID, f.Occupancy)
	}
	if f.Occupancy > f.Capacity {
		return fmt.Errorf("%w: facility %s occupancy %v exceeds capacity %v",
			ErrInvalidFacility, f.FacilityID, f.Occupancy, f.Capacity)
	}
	if err := f.Location.Validate(); err != nil {
		return fmt.Errorf("facility %s: %w", f.FacilityID, err)
	}
	return nil
}

// RemainingCapacity is the capacity still available for new assignments.
func (f Facility) RemainingCapacity() float64 {
	return f.Capacity - f.Occupancy
}

// OccupancyRatio is current utilization before any scenario assignment.
func (f Facility) OccupancyRatio() float64 {
	return f.Occupancy / f.Capacity
}
