package generate_availabilities

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_availabilities: invalid input data")

	// ErrInvalidState возвращается, если окно уже обработано (устаревшие данные)
	ErrInvalidState = errors.New("generate_availabilities: time slot is already processed")

	// ErrLockTimeout возвращается, если не дождались блокировки окон специалиста
	ErrLockTimeout = errors.New("generate_availabilities: lock wait timeout")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_availabilities: internal error")
)
