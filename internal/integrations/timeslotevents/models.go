package timeslotevents

const (
	// EventTimeSlotCreated у специалиста появилось новое рабочее окно
	EventTimeSlotCreated = "time_slot.created"
	// EventTimeSlotModified рабочее окно специалиста изменено
	EventTimeSlotModified = "time_slot.modified"
)

// Event сообщение топика рабочих окон
type Event struct {
	EventType      string `json:"eventType"`
	PractitionerID int64  `json:"practitionerId"`
}
