package timeslotevents

import "errors"

var (
	// ErrInvalidEvent возвращается, если сообщение не удалось разобрать
	ErrInvalidEvent = errors.New("timeslotevents: invalid event")

	// ErrUnknownEventType возвращается для событий, которые consumer не обрабатывает
	ErrUnknownEventType = errors.New("timeslotevents: unknown event type")

	// ErrGenerationFailed возвращается, если генерация слотов завершилась ошибкой
	ErrGenerationFailed = errors.New("timeslotevents: availability generation failed")
)
