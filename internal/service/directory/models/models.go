package models

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// PractitionerResponse ответ с данными специалиста
type PractitionerResponse struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Speciality *string `json:"speciality,omitempty"`
}

// PatientResponse ответ с данными пациента
type PatientResponse struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	BirthDate *string `json:"birthDate,omitempty"` // "2006-01-02"
}

// FromDomainPractitioners конвертирует список специалистов в DTO
func FromDomainPractitioners(practitioners []*domain.Practitioner) []PractitionerResponse {
	resp := make([]PractitionerResponse, 0, len(practitioners))
	for _, p := range practitioners {
		resp = append(resp, PractitionerResponse{
			ID:         p.ID,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Speciality: p.Speciality,
		})
	}
	return resp
}

// FromDomainPatients конвертирует список пациентов в DTO
func FromDomainPatients(patients []*domain.Patient) []PatientResponse {
	resp := make([]PatientResponse, 0, len(patients))
	for _, p := range patients {
		dto := PatientResponse{
			ID:        p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
		}
		if p.BirthDate != nil {
			birthDate := p.BirthDate.Format(domain.DateFormat)
			dto.BirthDate = &birthDate
		}
		resp = append(resp, dto)
	}
	return resp
}
