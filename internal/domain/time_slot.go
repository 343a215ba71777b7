package domain

import (
	"fmt"
	"time"
)

// TimeSlotStatus processing state of a declared working window
type TimeSlotStatus string

const (
	TimeSlotStatusNew       TimeSlotStatus = "new"
	TimeSlotStatusModified  TimeSlotStatus = "modified"
	TimeSlotStatusProcessed TimeSlotStatus = "processed"
)

// TimeSlot is a working window declared by a practitioner.
// Availabilities are generated from time slots that are not processed yet.
type TimeSlot struct {
	ID             int64
	PractitionerID int64
	Interval       Interval
	Status         TimeSlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true if availabilities still have to be generated from the slot
func (t *TimeSlot) IsPending() bool {
	return t.Status == TimeSlotStatusNew || t.Status == TimeSlotStatusModified
}

// MarkAsProcessed moves new/modified slot to processed
func (t *TimeSlot) MarkAsProcessed() error {
	if t.Status == TimeSlotStatusProcessed {
		return fmt.Errorf("%w: time slot id=%d is already processed", ErrInvalidStateChange, t.ID)
	}
	t.Status = TimeSlotStatusProcessed
	return nil
}

// Validate checks fields required before persisting
func (t *TimeSlot) Validate() error {
	if t.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerId", ErrInvalidID)
	}
	if _, err := NewInterval(t.Interval.Start, t.Interval.End); err != nil {
		return err
	}
	return nil
}

// TimeSlotIntervals extracts intervals of the given slots
func TimeSlotIntervals(slots []*TimeSlot) []Interval {
	intervals := make([]Interval, 0, len(slots))
	for _, s := range slots {
		intervals = append(intervals, s.Interval)
	}
	return intervals
}
