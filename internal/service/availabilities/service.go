package availabilities

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/availabilities/models"
)

// Service сервис чтения слотов
type Service struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(availabilityRepo AvailabilityRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		logger:           logger,
	}
}

// GetFree получает свободные слоты специалиста
func (s *Service) GetFree(ctx context.Context, practitionerID int64) (*models.AvailabilityListResponse, error) {
	if practitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerId must be positive", ErrInvalidInput)
	}

	status := domain.AvailabilityStatusFree
	availabilities, err := s.availabilityRepo.GetByPractitionerID(ctx, practitionerID, &status)
	if err != nil {
		s.logger.Error("GetFree: repository error for practitioner=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: GetFree - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetFree: fetched %d free availabilities for practitioner=%d", len(availabilities), practitionerID)
	return models.FromDomainAvailabilityList(availabilities), nil
}
