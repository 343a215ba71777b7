package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	// AppointmentStatusCancelled is part of the stored model only, nothing produces it yet
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment is a confirmed booking of a practitioner's availability by a patient
type Appointment struct {
	ID             int64
	PatientID      int64
	PractitionerID int64
	Interval       Interval
	Status         AppointmentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewConfirmedAppointment builds a confirmed appointment
func NewConfirmedAppointment(patientID, practitionerID int64, interval Interval) *Appointment {
	return &Appointment{
		PatientID:      patientID,
		PractitionerID: practitionerID,
		Interval:       interval,
		Status:         AppointmentStatusConfirmed,
	}
}

// IsConfirmed returns true if the appointment occupies practitioner time
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// Validate checks fields required before persisting
func (a *Appointment) Validate() error {
	if a.PatientID <= 0 {
		return fmt.Errorf("%w: patientId", ErrInvalidID)
	}
	if a.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerId", ErrInvalidID)
	}
	if _, err := NewInterval(a.Interval.Start, a.Interval.End); err != nil {
		return err
	}
	return nil
}

// AppointmentIntervals extracts intervals of the given appointments
func AppointmentIntervals(appointments []*Appointment) []Interval {
	intervals := make([]Interval, 0, len(appointments))
	for _, a := range appointments {
		intervals = append(intervals, a.Interval)
	}
	return intervals
}
