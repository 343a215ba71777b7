package generate_availabilities

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// extendIntervals продлевает конец каждого окна на min(maxExtension, расстояние до следующего окна)
// Последнее окно продлевается на maxExtension
// Вход должен быть результатом domain.Merge: отсортирован и без пересечений
func extendIntervals(merged []domain.Interval, maxExtension time.Duration) []domain.Interval {
	extended := make([]domain.Interval, len(merged))

	for i, current := range merged {
		extension := maxExtension
		if i+1 < len(merged) {
			if gap := merged[i+1].Start.Sub(current.End); gap < extension {
				extension = gap
			}
		}

		extended[i] = domain.Interval{Start: current.Start, End: current.End.Add(extension)}
	}

	return extended
}

// splitIntoAvailabilities нарезает свободные интервалы на слоты фиксированной длины
// Хвост короче slotDuration отбрасывается
func splitIntoAvailabilities(practitionerID int64, free []domain.Interval, slotDuration time.Duration) []*domain.Availability {
	availabilities := make([]*domain.Availability, 0)

	for _, interval := range free {
		for _, piece := range interval.Split(slotDuration) {
			availabilities = append(availabilities, domain.NewFreeAvailability(practitionerID, piece))
		}
	}

	return availabilities
}

// collectOccupied объединяет занятые интервалы: подтвержденные записи и уже нарезанные слоты
func collectOccupied(appointments []*domain.Appointment, availabilities []*domain.Availability) []domain.Interval {
	occupied := domain.AppointmentIntervals(appointments)
	occupied = append(occupied, domain.AvailabilityIntervals(availabilities)...)
	return domain.Merge(occupied)
}
