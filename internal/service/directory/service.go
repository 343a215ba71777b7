package directory

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/service/directory/models"
)

// Service справочник специалистов и пациентов
type Service struct {
	practitionerRepo PractitionerRepository
	patientRepo      PatientRepository
	logger           Logger
}

// NewService создает новый экземпляр справочника
func NewService(practitionerRepo PractitionerRepository, patientRepo PatientRepository, logger Logger) *Service {
	return &Service{
		practitionerRepo: practitionerRepo,
		patientRepo:      patientRepo,
		logger:           logger,
	}
}

// GetPractitioners получает всех специалистов
func (s *Service) GetPractitioners(ctx context.Context) ([]models.PractitionerResponse, error) {
	practitioners, err := s.practitionerRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetPractitioners: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPractitioners - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPractitioners(practitioners), nil
}

// GetPatients получает всех пациентов
func (s *Service) GetPatients(ctx context.Context) ([]models.PatientResponse, error) {
	patients, err := s.patientRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error("GetPatients: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPatients - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPatients(patients), nil
}
