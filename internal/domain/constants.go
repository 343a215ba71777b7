package domain

// Default scheduling configuration
const (
	DefaultSlotDurationMinutes = 15
	// DefaultMaxExtensionMinutes = DefaultSlotDurationMinutes - 1
	DefaultMaxExtensionMinutes = 14
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
)

// Time format constants
const (
	DateTimeFormat      = "2006-01-02T15:04:05Z07:00" // RFC3339
	LocalDateTimeFormat = "2006-01-02T15:04:05"       // без зоны, читается как UTC
	DateFormat          = "2006-01-02"
)

// PendingTimeSlotStatuses statuses picked up by availability generation
var PendingTimeSlotStatuses = []TimeSlotStatus{
	TimeSlotStatusNew,
	TimeSlotStatusModified,
}
