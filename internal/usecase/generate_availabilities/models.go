package generate_availabilities

import "time"

// Request модель запроса на генерацию слотов
type Request struct {
	PractitionerID int64 // ID специалиста
}

// Response модель ответа с новыми слотами
type Response struct {
	Availabilities []Availability // Только созданные в этом запуске слоты
}

// Availability модель созданного слота
type Availability struct {
	ID             int64
	PractitionerID int64
	StartDate      time.Time
	EndDate        time.Time
	Status         string
}

// Options параметры нарезки слотов
type Options struct {
	SlotDuration time.Duration // Длительность одного слота
	MaxExtension time.Duration // Насколько окно может быть продлено в сторону следующего
}
