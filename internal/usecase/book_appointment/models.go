package book_appointment

import "time"

// Request модель запроса на запись к специалисту
type Request struct {
	PatientID      int64     // ID пациента
	PractitionerID int64     // ID специалиста
	StartDate      time.Time // Начало слота
	EndDate        time.Time // Конец слота
}

// Response модель ответа с созданной записью
type Response struct {
	ID             int64
	PatientID      int64
	PractitionerID int64
	StartDate      time.Time
	EndDate        time.Time
	Status         string
	CreatedAt      time.Time
}
