package declare_time_slot

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
)

// Request модель запроса на добавление рабочего окна
type Request struct {
	PractitionerID int64
	StartDate      time.Time
	EndDate        time.Time
}

// Response модель ответа: созданное окно и нарезанные из него слоты
type Response struct {
	TimeSlotID     int64
	PractitionerID int64
	StartDate      time.Time
	EndDate        time.Time
	Status         string
	Availabilities []generate_availabilities.Availability
}
