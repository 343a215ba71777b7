package domain

import (
	"fmt"
	"time"
)

// AvailabilityStatus represents the status of a bookable availability
type AvailabilityStatus string

const (
	AvailabilityStatusFree     AvailabilityStatus = "free"
	AvailabilityStatusReserved AvailabilityStatus = "reserved"
)

// Availability is a fixed-duration bookable unit generated from time slots
type Availability struct {
	ID             int64
	PractitionerID int64
	Interval       Interval
	Status         AvailabilityStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFreeAvailability creates a free availability for the practitioner
func NewFreeAvailability(practitionerID int64, interval Interval) *Availability {
	return &Availability{
		PractitionerID: practitionerID,
		Interval:       interval,
		Status:         AvailabilityStatusFree,
	}
}

// IsFree returns true if the availability can still be booked
func (a *Availability) IsFree() bool {
	return a.Status == AvailabilityStatusFree
}

// MarkAsReserved moves free availability to reserved
func (a *Availability) MarkAsReserved() error {
	if a.Status == AvailabilityStatusReserved {
		return fmt.Errorf("%w: availability id=%d is already reserved", ErrInvalidStateChange, a.ID)
	}
	a.Status = AvailabilityStatusReserved
	return nil
}

// AvailabilityIntervals extracts intervals of the given availabilities
func AvailabilityIntervals(availabilities []*Availability) []Interval {
	intervals := make([]Interval, 0, len(availabilities))
	for _, a := range availabilities {
		intervals = append(intervals, a.Interval)
	}
	return intervals
}
