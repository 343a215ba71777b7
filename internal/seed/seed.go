package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
)

const entitiesCount = 5

const (
	specialityOrthodontist        = "orthodontist"
	specialityGeneralPractitioner = "general practitioner"
	specialityDentist             = "dentist"
)

// ErrSeedFailed возвращается при ошибке заполнения БД
var ErrSeedFailed = errors.New("seed: failed to populate database")

// Result итог заполнения
type Result struct {
	Skipped        bool
	Patients       int
	Practitioners  int
	TimeSlots      int
	Availabilities int
}

// Seeder заполняет пустую БД демонстрационными данными
type Seeder struct {
	practitionerRepo PractitionerRepository
	patientRepo      PatientRepository
	timeSlotRepo     TimeSlotRepository
	generator        AvailabilityGenerator
	txManager        TransactionManager
	logger           Logger
}

// NewSeeder создает новый экземпляр seeder
func NewSeeder(
	practitionerRepo PractitionerRepository,
	patientRepo PatientRepository,
	timeSlotRepo TimeSlotRepository,
	generator AvailabilityGenerator,
	txManager TransactionManager,
	logger Logger,
) *Seeder {
	return &Seeder{
		practitionerRepo: practitionerRepo,
		patientRepo:      patientRepo,
		timeSlotRepo:     timeSlotRepo,
		generator:        generator,
		txManager:        txManager,
		logger:           logger,
	}
}

// Run создает пациентов, специалистов с рабочими окнами и генерирует слоты
// Если специалисты уже есть, ничего не делает
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		existing, err := s.practitionerRepo.GetAll(txCtx)
		if err != nil {
			return fmt.Errorf("%w: check existing practitioners: %v", ErrSeedFailed, err)
		}
		if len(existing) > 0 {
			s.logger.Warn("Seed: database already has %d practitioners, skipping", len(existing))
			result.Skipped = true
			return nil
		}

		for i := 1; i <= entitiesCount; i++ {
			if _, err := s.patientRepo.Create(txCtx, &domain.Patient{
				FirstName: fmt.Sprintf("patient_%d", i),
				LastName:  "example",
			}); err != nil {
				return fmt.Errorf("%w: create patient %d: %v", ErrSeedFailed, i, err)
			}
			result.Patients++

			speciality := specialityFor(i)
			practitioner, err := s.practitionerRepo.Create(txCtx, &domain.Practitioner{
				FirstName:  fmt.Sprintf("practitioner%d", i),
				LastName:   "example",
				Speciality: &speciality,
			})
			if err != nil {
				return fmt.Errorf("%w: create practitioner %d: %v", ErrSeedFailed, i, err)
			}
			result.Practitioners++

			for _, interval := range windowsFor(i) {
				if _, err := s.timeSlotRepo.Create(txCtx, &domain.TimeSlot{
					PractitionerID: practitioner.ID,
					Interval:       interval,
					Status:         domain.TimeSlotStatusNew,
				}); err != nil {
					return fmt.Errorf("%w: create time slot for practitioner %d: %v", ErrSeedFailed, practitioner.ID, err)
				}
				result.TimeSlots++
			}

			generated, err := s.generator.Execute(txCtx, &generate_availabilities.Request{PractitionerID: practitioner.ID})
			if err != nil {
				return fmt.Errorf("%w: generate availabilities for practitioner %d: %w", ErrSeedFailed, practitioner.ID, err)
			}
			result.Availabilities += len(generated.Availabilities)
		}

		return nil
	})
	if err != nil {
		s.logger.Error("Seed: %v", err)
		return nil, err
	}

	if !result.Skipped {
		s.logger.Info("Seed: created %d patients, %d practitioners, %d time slots, %d availabilities",
			result.Patients, result.Practitioners, result.TimeSlots, result.Availabilities)
	}
	return result, nil
}

func specialityFor(i int) string {
	switch {
	case i == 3:
		return specialityDentist
	case i%2 == 0:
		return specialityGeneralPractitioner
	default:
		return specialityOrthodontist
	}
}

func windowsFor(i int) []domain.Interval {
	windows := []domain.Interval{
		window(8, 8, 12),
		window(8, 14, 17),
		window(9, 9, 17),
	}
	if i%2 == 0 {
		windows = append(windows, window(10, 9, 16))
	}
	if i == 3 {
		windows = append(windows, window(11, 11, 18))
	}
	return windows
}

// window окно февраля 2021 года в часах UTC
func window(day, fromHour, toHour int) domain.Interval {
	return domain.Interval{
		Start: time.Date(2021, time.February, day, fromHour, 0, 0, 0, time.UTC),
		End:   time.Date(2021, time.February, day, toHour, 0, 0, 0, time.UTC),
	}
}
