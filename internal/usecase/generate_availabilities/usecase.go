package generate_availabilities

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case генерации бронируемых слотов из рабочих окон специалиста
type UseCase struct {
	timeSlotRepo     TimeSlotRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	txManager        TransactionManager
	metrics          Metrics
	opts             Options
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	timeSlotRepo TimeSlotRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) (*UseCase, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UseCase{
		timeSlotRepo:     timeSlotRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		txManager:        txManager,
		metrics:          metrics,
		opts:             opts,
		logger:           logger,
	}, nil
}

// Execute нарезает новые и измененные рабочие окна специалиста на слоты
// Повторный вызов без новых окон ничего не пишет и возвращает пустой список
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateAvailabilities: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("GenerateAvailabilities: practitioner=%d", req.PractitionerID)

	var created []*domain.Availability
	var processed int

	// 2. Все чтения и записи выполняем в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем окна в статусах new/modified (с блокировкой)
		timeSlots, err := uc.timeSlotRepo.GetPendingByPractitionerID(txCtx, req.PractitionerID)
		if err != nil {
			uc.logger.Error("GenerateAvailabilities: failed to get pending time slots: %v", err)
			return fmt.Errorf("%w: failed to get pending time slots: %w", ErrInternal, err)
		}

		if len(timeSlots) == 0 {
			uc.logger.Info("GenerateAvailabilities: no pending time slots for practitioner=%d", req.PractitionerID)
			return nil
		}

		// 2.2. Объединяем окна и продлеваем их к следующему окну
		merged := domain.Merge(domain.TimeSlotIntervals(timeSlots))
		if len(merged) == 0 {
			return fmt.Errorf("%w: pending time slots have no valid intervals", ErrInternal)
		}
		extended := extendIntervals(merged, uc.opts.MaxExtension)

		// Диапазон поиска занятого времени покрывает и продления
		searchRange := domain.Interval{
			Start: merged[0].Start,
			End:   extended[len(extended)-1].End,
		}

		// 2.3. Получаем подтвержденные записи и уже нарезанные слоты в диапазоне
		appointments, err := uc.appointmentRepo.GetConfirmedByPractitionerInRange(txCtx, req.PractitionerID, searchRange)
		if err != nil {
			uc.logger.Error("GenerateAvailabilities: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		existing, err := uc.availabilityRepo.GetByPractitionerInRange(txCtx, req.PractitionerID, searchRange)
		if err != nil {
			uc.logger.Error("GenerateAvailabilities: failed to get availabilities: %v", err)
			return fmt.Errorf("%w: failed to get availabilities: %v", ErrInternal, err)
		}

		// 2.4. Вычитаем занятое время и нарезаем остаток на слоты
		occupied := collectOccupied(appointments, existing)
		free := domain.Subtract(extended, occupied)
		fresh := splitIntoAvailabilities(req.PractitionerID, free, uc.opts.SlotDuration)

		// 2.5. Сохраняем слоты
		if len(fresh) > 0 {
			fresh, err = uc.availabilityRepo.CreateBatch(txCtx, fresh)
			if err != nil {
				uc.logger.Error("GenerateAvailabilities: failed to save availabilities: %v", err)
				return fmt.Errorf("%w: failed to save availabilities: %v", ErrInternal, err)
			}
		}

		// 2.6. Отмечаем окна обработанными
		for _, slot := range timeSlots {
			if err := slot.MarkAsProcessed(); err != nil {
				uc.logger.Error("GenerateAvailabilities: %v", err)
				return fmt.Errorf("%w: %v", ErrInvalidState, err)
			}
		}

		if err := uc.timeSlotRepo.UpdateStatuses(txCtx, timeSlots); err != nil {
			uc.logger.Error("GenerateAvailabilities: failed to update time slots: %v", err)
			return fmt.Errorf("%w: failed to update time slots: %v", ErrInternal, err)
		}

		created = fresh
		processed = len(timeSlots)
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrLockTimeout) || txmanager.IsLockTimeout(err) {
			uc.logger.Warn("GenerateAvailabilities: lock timeout for practitioner=%d", req.PractitionerID)
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, err)
		}
		return nil, err
	}

	uc.metrics.AddAvailabilitiesGenerated(len(created))
	uc.metrics.AddTimeSlotsProcessed(processed)

	uc.logger.Info("GenerateAvailabilities: practitioner=%d, processed %d time slots, created %d availabilities",
		req.PractitionerID, processed, len(created))

	return toResponse(created), nil
}

func toResponse(availabilities []*domain.Availability) *Response {
	resp := &Response{Availabilities: make([]Availability, 0, len(availabilities))}
	for _, a := range availabilities {
		resp.Availabilities = append(resp.Availabilities, Availability{
			ID:             a.ID,
			PractitionerID: a.PractitionerID,
			StartDate:      a.Interval.Start,
			EndDate:        a.Interval.End,
			Status:         string(a.Status),
		})
	}
	return resp
}

type noopMetrics struct{}

func (noopMetrics) AddAvailabilitiesGenerated(int) {}
func (noopMetrics) AddTimeSlotsProcessed(int)      {}
