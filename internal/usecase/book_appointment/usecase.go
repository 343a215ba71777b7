package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/availability"
	patientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/patient"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

// UseCase use case записи пациента на свободный слот специалиста
type UseCase struct {
	practitionerRepo PractitionerRepository
	patientRepo      PatientRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	txManager        TransactionManager
	metrics          Metrics
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	practitionerRepo PractitionerRepository,
	patientRepo PatientRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &UseCase{
		practitionerRepo: practitionerRepo,
		patientRepo:      patientRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		txManager:        txManager,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute резервирует слот и создает подтвержденную запись
// Параллельные записи одного пациента сериализуются блокировкой строки пациента,
// параллельные попытки занять один слот - блокировкой строки слота
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	interval, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		uc.metrics.IncBookingFailure(reasonInvalidInput)
		return nil, err
	}

	uc.logger.Info("BookAppointment: patient=%d, practitioner=%d, interval=%s",
		req.PatientID, req.PractitionerID, interval)

	var result *domain.Appointment

	// 2. Выполняем операции с БД в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Проверяем существование специалиста
		exists, err := uc.practitionerRepo.Exists(txCtx, req.PractitionerID)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to check practitioner id=%d: %v", req.PractitionerID, err)
			return fmt.Errorf("%w: failed to check practitioner: %v", ErrInternal, err)
		}
		if !exists {
			uc.logger.Warn("BookAppointment: practitioner id=%d not found", req.PractitionerID)
			return ErrPractitionerNotFound
		}

		// 2.2. Блокируем пациента (FOR UPDATE)
		if _, err := uc.patientRepo.GetForUpdate(txCtx, req.PatientID); err != nil {
			if errors.Is(err, patientRepo.ErrPatientNotFound) {
				uc.logger.Warn("BookAppointment: patient id=%d not found", req.PatientID)
				return ErrPatientNotFound
			}
			uc.logger.Error("BookAppointment: failed to lock patient id=%d: %v", req.PatientID, err)
			return fmt.Errorf("%w: failed to lock patient: %w", ErrInternal, err)
		}

		// 2.3. Блокируем свободный слот с точным совпадением границ (FOR UPDATE)
		availability, err := uc.availabilityRepo.GetFreeForUpdate(txCtx, req.PractitionerID, interval)
		if err != nil {
			if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
				uc.logger.Warn("BookAppointment: no free availability for practitioner=%d at %s",
					req.PractitionerID, interval)
				return ErrAvailabilityNotFound
			}
			uc.logger.Error("BookAppointment: failed to lock availability: %v", err)
			return fmt.Errorf("%w: failed to lock availability: %w", ErrInternal, err)
		}

		// 2.4. Проверяем, что у пациента нет пересекающихся записей (у любого специалиста)
		overlapping, err := uc.appointmentRepo.FindOverlappingForPatient(txCtx, req.PatientID, interval)
		if err != nil {
			uc.logger.Error("BookAppointment: failed to check overlapping appointments: %v", err)
			return fmt.Errorf("%w: failed to check overlapping appointments: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("BookAppointment: patient id=%d already has appointment id=%d at %s",
				req.PatientID, overlapping[0].ID, overlapping[0].Interval)
			return ErrAppointmentOverlap
		}

		// 2.5. Переводим слот в reserved
		if err := availability.MarkAsReserved(); err != nil {
			uc.logger.Error("BookAppointment: %v", err)
			return fmt.Errorf("%w: %v", ErrInvalidState, err)
		}

		if err := uc.availabilityRepo.UpdateStatus(txCtx, availability.ID, availability.Status); err != nil {
			uc.logger.Error("BookAppointment: failed to update availability id=%d: %v", availability.ID, err)
			return fmt.Errorf("%w: failed to update availability: %v", ErrInternal, err)
		}

		// 2.6. Создаем подтвержденную запись
		created, err := uc.appointmentRepo.Create(txCtx,
			domain.NewConfirmedAppointment(req.PatientID, req.PractitionerID, interval))
		if err != nil {
			uc.logger.Error("BookAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrLockTimeout) {
			uc.logger.Warn("BookAppointment: lock timeout for patient=%d, practitioner=%d",
				req.PatientID, req.PractitionerID)
			err = fmt.Errorf("%w: %v", ErrLockTimeout, err)
		}
		uc.metrics.IncBookingFailure(failureReason(err))
		return nil, err
	}

	uc.metrics.IncAppointmentsBooked()
	uc.logger.Info("BookAppointment: successfully created appointment id=%d", result.ID)

	return &Response{
		ID:             result.ID,
		PatientID:      result.PatientID,
		PractitionerID: result.PractitionerID,
		StartDate:      result.Interval.Start,
		EndDate:        result.Interval.End,
		Status:         string(result.Status),
		CreatedAt:      result.CreatedAt,
	}, nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrLockTimeout):
		return reasonLockTimeout
	case errors.Is(err, ErrPractitionerNotFound), errors.Is(err, ErrPatientNotFound):
		return reasonNotFound
	case errors.Is(err, ErrAvailabilityNotFound):
		return reasonSlotUnavailable
	case errors.Is(err, ErrAppointmentOverlap):
		return reasonOverlap
	case errors.Is(err, ErrInvalidState):
		return reasonInvalidState
	default:
		return reasonInternal
	}
}

type noopMetrics struct{}

func (noopMetrics) IncAppointmentsBooked()   {}
func (noopMetrics) IncBookingFailure(string) {}
