package appointments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetAll получает все записи
func (s *Service) GetAll(ctx context.Context) (*models.AppointmentListResponse, error) {
	appointments, err := s.appointmentRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetAll: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAll - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAll: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// GetByPractitioner получает записи к специалисту
func (s *Service) GetByPractitioner(ctx context.Context, practitionerID int64) (*models.AppointmentListResponse, error) {
	if practitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerId must be positive", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByPractitionerID(ctx, practitionerID)
	if err != nil {
		s.logger.Error("GetByPractitioner: repository error for practitioner=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: GetByPractitioner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByPractitioner: fetched %d appointments for practitioner=%d", len(appointments), practitionerID)
	return models.FromDomainAppointmentList(appointments), nil
}
