package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrPractitionerNotFound возвращается, когда специалист не найден
	ErrPractitionerNotFound = errors.New("book_appointment: practitioner not found")

	// ErrPatientNotFound возвращается, когда пациент не найден
	ErrPatientNotFound = errors.New("book_appointment: patient not found")

	// ErrAvailabilityNotFound возвращается, когда нет свободного слота с такими границами
	ErrAvailabilityNotFound = errors.New("book_appointment: free availability not found")

	// ErrAppointmentOverlap возвращается, когда у пациента уже есть запись на пересекающееся время
	ErrAppointmentOverlap = errors.New("book_appointment: patient already has an overlapping appointment")

	// ErrInvalidState возвращается, когда слот нельзя перевести в reserved
	ErrInvalidState = errors.New("book_appointment: availability is not free")

	// ErrLockTimeout возвращается, когда не дождались блокировки пациента или слота
	ErrLockTimeout = errors.New("book_appointment: lock wait timeout")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)

// Причины отказа для метрик
const (
	reasonInvalidInput    = "invalid_input"
	reasonNotFound        = "not_found"
	reasonSlotUnavailable = "availability_not_found"
	reasonOverlap         = "overlap"
	reasonInvalidState    = "invalid_state"
	reasonLockTimeout     = "lock_timeout"
	reasonInternal        = "internal"
)
