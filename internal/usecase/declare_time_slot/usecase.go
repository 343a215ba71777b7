package declare_time_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case добавления рабочего окна специалиста
type UseCase struct {
	practitionerRepo PractitionerRepository
	timeSlotRepo     TimeSlotRepository
	generator        AvailabilityGenerator
	txManager        TransactionManager
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	practitionerRepo PractitionerRepository,
	timeSlotRepo TimeSlotRepository,
	generator AvailabilityGenerator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		practitionerRepo: practitionerRepo,
		timeSlotRepo:     timeSlotRepo,
		generator:        generator,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute сохраняет окно в статусе new и сразу нарезает его на слоты
// Окно и слоты создаются в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	interval, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("DeclareTimeSlot: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("DeclareTimeSlot: practitioner=%d, interval=%s", req.PractitionerID, interval)

	var resp *Response

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2. Проверяем существование специалиста
		exists, err := uc.practitionerRepo.Exists(txCtx, req.PractitionerID)
		if err != nil {
			uc.logger.Error("DeclareTimeSlot: failed to check practitioner id=%d: %v", req.PractitionerID, err)
			return fmt.Errorf("%w: failed to check practitioner: %v", ErrInternal, err)
		}
		if !exists {
			uc.logger.Warn("DeclareTimeSlot: practitioner id=%d not found", req.PractitionerID)
			return ErrPractitionerNotFound
		}

		// 3. Сохраняем окно
		slot, err := uc.timeSlotRepo.Create(txCtx, &domain.TimeSlot{
			PractitionerID: req.PractitionerID,
			Interval:       interval,
			Status:         domain.TimeSlotStatusNew,
		})
		if err != nil {
			uc.logger.Error("DeclareTimeSlot: failed to create time slot: %v", err)
			return fmt.Errorf("%w: failed to create time slot: %v", ErrInternal, err)
		}

		// 4. Генерируем слоты в той же транзакции
		generated, err := uc.generator.Execute(txCtx, &generate_availabilities.Request{PractitionerID: req.PractitionerID})
		if err != nil {
			return err
		}

		resp = &Response{
			TimeSlotID:     slot.ID,
			PractitionerID: slot.PractitionerID,
			StartDate:      slot.Interval.Start,
			EndDate:        slot.Interval.End,
			Status:         string(domain.TimeSlotStatusProcessed),
			Availabilities: generated.Availabilities,
		}
		return nil
	})

	if err != nil {
		switch {
		// Генерация идет во внешней транзакции, поэтому lock_timeout помечает уже txmanager
		case errors.Is(err, generate_availabilities.ErrLockTimeout), errors.Is(err, txmanager.ErrLockTimeout):
			uc.logger.Warn("DeclareTimeSlot: lock timeout for practitioner=%d", req.PractitionerID)
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, err)
		case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrPractitionerNotFound), errors.Is(err, ErrInternal):
			return nil, err
		default:
			uc.logger.Error("DeclareTimeSlot: failed to generate availabilities: %v", err)
			return nil, fmt.Errorf("%w: failed to generate availabilities: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("DeclareTimeSlot: created time slot id=%d with %d availabilities",
		resp.TimeSlotID, len(resp.Availabilities))

	return resp, nil
}
