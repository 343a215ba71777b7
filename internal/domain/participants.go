package domain

import (
	"fmt"
	"strings"
	"time"
)

// Practitioner provides appointments
type Practitioner struct {
	ID         int64
	FirstName  string
	LastName   string
	Speciality *string
}

// Validate checks required fields
func (p *Practitioner) Validate() error {
	return validateNames(p.FirstName, p.LastName)
}

// Patient books appointments
type Patient struct {
	ID        int64
	FirstName string
	LastName  string
	BirthDate *time.Time
}

// Validate checks required fields
func (p *Patient) Validate() error {
	return validateNames(p.FirstName, p.LastName)
}

func validateNames(firstName, lastName string) error {
	if strings.TrimSpace(firstName) == "" {
		return fmt.Errorf("%w: firstName", ErrBlankField)
	}
	if strings.TrimSpace(lastName) == "" {
		return fmt.Errorf("%w: lastName", ErrBlankField)
	}
	return nil
}
