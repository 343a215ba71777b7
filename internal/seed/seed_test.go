package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeStore struct {
	practitioners []*domain.Practitioner
	patients      []*domain.Patient
	timeSlots     []*domain.TimeSlot
	generatedFor  []int64
	generateErr   error
}

type practitioners struct{ *fakeStore }

func (r practitioners) Create(_ context.Context, p *domain.Practitioner) (*domain.Practitioner, error) {
	p.ID = int64(len(r.practitioners) + 1)
	r.fakeStore.practitioners = append(r.fakeStore.practitioners, p)
	return p, nil
}

func (r practitioners) GetAll(context.Context) ([]*domain.Practitioner, error) {
	return r.practitioners, nil
}

type patients struct{ *fakeStore }

func (r patients) Create(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	p.ID = int64(len(r.patients) + 1)
	r.fakeStore.patients = append(r.fakeStore.patients, p)
	return p, nil
}

type timeSlots struct{ *fakeStore }

func (r timeSlots) Create(_ context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	slot.ID = int64(len(r.timeSlots) + 1)
	r.fakeStore.timeSlots = append(r.fakeStore.timeSlots, slot)
	return slot, nil
}

type generator struct{ *fakeStore }

func (g generator) Execute(_ context.Context, req *generate_availabilities.Request) (*generate_availabilities.Response, error) {
	if g.generateErr != nil {
		return nil, g.generateErr
	}
	g.fakeStore.generatedFor = append(g.fakeStore.generatedFor, req.PractitionerID)
	return &generate_availabilities.Response{Availabilities: make([]generate_availabilities.Availability, 2)}, nil
}

func newSeeder(store *fakeStore) *Seeder {
	return NewSeeder(practitioners{store}, patients{store}, timeSlots{store}, generator{store}, fakeTxManager{}, logger.NewNop())
}

func TestRun_PopulatesEmptyDatabase(t *testing.T) {
	store := &fakeStore{}

	result, err := newSeeder(store).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, 5, result.Patients)
	assert.Equal(t, 5, result.Practitioners)
	// 3 окна у каждого, +1 у 2 и 4, +1 у 3
	assert.Equal(t, 18, result.TimeSlots)
	assert.Equal(t, 10, result.Availabilities)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, store.generatedFor)

	specialities := make([]string, 0, len(store.practitioners))
	for _, p := range store.practitioners {
		specialities = append(specialities, *p.Speciality)
	}
	assert.Equal(t, []string{
		"orthodontist", "general practitioner", "dentist", "general practitioner", "orthodontist",
	}, specialities)

	assert.Equal(t, "patient_1", store.patients[0].FirstName)
	assert.Equal(t, "practitioner5", store.practitioners[4].FirstName)
	for _, slot := range store.timeSlots {
		assert.Equal(t, domain.TimeSlotStatusNew, slot.Status)
		assert.True(t, slot.Interval.Start.Before(slot.Interval.End))
	}
}

func TestRun_SkipsWhenAlreadySeeded(t *testing.T) {
	store := &fakeStore{practitioners: []*domain.Practitioner{{ID: 1, FirstName: "a", LastName: "b"}}}

	result, err := newSeeder(store).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Empty(t, store.patients)
	assert.Empty(t, store.timeSlots)
}

func TestRun_GenerationError(t *testing.T) {
	genErr := errors.New("boom")
	store := &fakeStore{generateErr: genErr}

	_, err := newSeeder(store).Run(context.Background())

	assert.ErrorIs(t, err, ErrSeedFailed)
	assert.ErrorIs(t, err, genErr)
}

func TestWindowsFor(t *testing.T) {
	assert.Len(t, windowsFor(1), 3)
	assert.Len(t, windowsFor(2), 4)
	assert.Len(t, windowsFor(3), 4)
	assert.Equal(t, window(11, 11, 18), windowsFor(3)[3])
}
