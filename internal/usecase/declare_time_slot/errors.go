package declare_time_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("declare_time_slot: invalid input data")

	// ErrPractitionerNotFound возвращается, когда специалист не найден
	ErrPractitionerNotFound = errors.New("declare_time_slot: practitioner not found")

	// ErrLockTimeout возвращается, если генерация не дождалась блокировки
	ErrLockTimeout = errors.New("declare_time_slot: lock wait timeout")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("declare_time_slot: internal error")
)
