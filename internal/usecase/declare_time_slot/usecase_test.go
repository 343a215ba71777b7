package declare_time_slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/generate_availabilities"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
)

type txKey struct{}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(context.WithValue(ctx, txKey{}, true))
}

type fakePractitioners map[int64]bool

func (f fakePractitioners) Exists(_ context.Context, id int64) (bool, error) {
	return f[id], nil
}

type fakeTimeSlots struct {
	created []*domain.TimeSlot
	err     error
}

func (f *fakeTimeSlots) Create(_ context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	if f.err != nil {
		return nil, f.err
	}
	slot.ID = int64(len(f.created) + 1)
	f.created = append(f.created, slot)
	return slot, nil
}

type fakeGenerator struct {
	calls    int
	inTx     bool
	response *generate_availabilities.Response
	err      error
}

func (f *fakeGenerator) Execute(ctx context.Context, _ *generate_availabilities.Request) (*generate_availabilities.Response, error) {
	f.calls++
	f.inTx, _ = ctx.Value(txKey{}).(bool)
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

var (
	start = time.Date(2021, time.February, 8, 11, 0, 0, 0, time.UTC)
	end   = start.Add(time.Hour)
)

func TestExecute_Success(t *testing.T) {
	slots := &fakeTimeSlots{}
	generator := &fakeGenerator{response: &generate_availabilities.Response{
		Availabilities: []generate_availabilities.Availability{
			{ID: 1, PractitionerID: 1, StartDate: start, EndDate: start.Add(15 * time.Minute), Status: "free"},
		},
	}}
	uc := NewUseCase(fakePractitioners{1: true}, slots, generator, fakeTxManager{}, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 1, StartDate: start, EndDate: end})
	require.NoError(t, err)

	require.Len(t, slots.created, 1)
	assert.Equal(t, domain.TimeSlotStatusNew, slots.created[0].Status)
	assert.Equal(t, int64(1), resp.TimeSlotID)
	assert.Equal(t, start, resp.StartDate)
	assert.Equal(t, end, resp.EndDate)
	assert.Len(t, resp.Availabilities, 1)
	assert.Equal(t, 1, generator.calls)
	assert.True(t, generator.inTx, "generation must run inside the declaring transaction")
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       *Request
		slots     *fakeTimeSlots
		generator *fakeGenerator
		wantErr   error
	}{
		{
			name:      "invalid interval",
			req:       &Request{PractitionerID: 1, StartDate: end, EndDate: start},
			slots:     &fakeTimeSlots{},
			generator: &fakeGenerator{},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "invalid practitioner id",
			req:       &Request{PractitionerID: 0, StartDate: start, EndDate: end},
			slots:     &fakeTimeSlots{},
			generator: &fakeGenerator{},
			wantErr:   ErrInvalidInput,
		},
		{
			name:      "unknown practitioner",
			req:       &Request{PractitionerID: 42, StartDate: start, EndDate: end},
			slots:     &fakeTimeSlots{},
			generator: &fakeGenerator{},
			wantErr:   ErrPractitionerNotFound,
		},
		{
			name:      "create failure",
			req:       &Request{PractitionerID: 1, StartDate: start, EndDate: end},
			slots:     &fakeTimeSlots{err: errors.New("db down")},
			generator: &fakeGenerator{},
			wantErr:   ErrInternal,
		},
		{
			name:      "generation failure",
			req:       &Request{PractitionerID: 1, StartDate: start, EndDate: end},
			slots:     &fakeTimeSlots{},
			generator: &fakeGenerator{err: generate_availabilities.ErrInternal},
			wantErr:   ErrInternal,
		},
		{
			name:      "generation lock timeout",
			req:       &Request{PractitionerID: 1, StartDate: start, EndDate: end},
			slots:     &fakeTimeSlots{},
			generator: &fakeGenerator{err: generate_availabilities.ErrLockTimeout},
			wantErr:   ErrLockTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(fakePractitioners{1: true}, tt.slots, tt.generator, fakeTxManager{}, logger.NewNop())
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// lockedStore отдает pq.Error 55P03 при чтении окон под блокировкой
type lockedStore struct {
	fakeTimeSlots
}

func (s *lockedStore) GetPendingByPractitionerID(context.Context, int64) ([]*domain.TimeSlot, error) {
	return nil, fmt.Errorf("%w: GetPendingByPractitionerID - query time slots: %w",
		errors.New("timeslot.repository: failed to execute query"),
		&pq.Error{Code: "55P03", Message: "canceling statement due to lock timeout"})
}

func (s *lockedStore) UpdateStatuses(context.Context, []*domain.TimeSlot) error { return nil }

func (s *lockedStore) GetByPractitionerInRange(context.Context, int64, domain.Interval) ([]*domain.Availability, error) {
	return nil, nil
}

func (s *lockedStore) CreateBatch(_ context.Context, a []*domain.Availability) ([]*domain.Availability, error) {
	return a, nil
}

func (s *lockedStore) GetConfirmedByPractitionerInRange(context.Context, int64, domain.Interval) ([]*domain.Appointment, error) {
	return nil, nil
}

type stubTx struct{}

func (stubTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}
func (stubTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}
func (stubTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row { return nil }
func (stubTx) Commit() error                                                    { return nil }
func (stubTx) Rollback() error                                                  { return nil }

type stubBeginner struct{}

func (stubBeginner) BeginTx(context.Context, *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return stubTx{}, nil
}

func TestExecute_LockTimeoutDuringGeneration(t *testing.T) {
	store := &lockedStore{}
	txManager := txmanager.NewTransactionManager(stubBeginner{}, time.Second)

	generator, err := generate_availabilities.NewUseCase(store, store, store, txManager, nil,
		generate_availabilities.Options{SlotDuration: 15 * time.Minute, MaxExtension: 14 * time.Minute},
		logger.NewNop())
	require.NoError(t, err)

	uc := NewUseCase(fakePractitioners{1: true}, store, generator, txManager, logger.NewNop())

	_, err = uc.Execute(context.Background(), &Request{PractitionerID: 1, StartDate: start, EndDate: end})

	assert.ErrorIs(t, err, ErrLockTimeout)
	assert.NotErrorIs(t, err, ErrInternal)
}
