package timeslot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

const selectPending = "SELECT id, practitioner_id, start_date, end_date, status, created_at, updated_at " +
	"FROM time_slots WHERE practitioner_id = $1 AND status IN ($2,$3) ORDER BY start_date ASC"

func newMock(t *testing.T) (*dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return dbmetrics.Wrap(db, nil), mock
}

func at(hour int) time.Time {
	return time.Date(2024, 6, 3, hour, 0, 0, 0, time.UTC)
}

func TestGetPendingByPractitionerID(t *testing.T) {
	rowColumns := []string{"id", "practitioner_id", "start_date", "end_date", "status", "created_at", "updated_at"}

	t.Run("outside transaction without lock", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)

		mock.ExpectQuery(selectPending).
			WithArgs(int64(7), "new", "modified").
			WillReturnRows(sqlmock.NewRows(rowColumns).
				AddRow(int64(1), int64(7), at(9), at(12), "new", at(8), nil).
				AddRow(int64(2), int64(7), at(14), at(18), "modified", at(8), at(8)))

		slots, err := repo.GetPendingByPractitionerID(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, slots, 2)
		assert.Equal(t, domain.TimeSlotStatusNew, slots[0].Status)
		assert.Equal(t, domain.Interval{Start: at(14), End: at(18)}, slots[1].Interval)
		assert.Equal(t, at(8), slots[0].CreatedAt)
		assert.True(t, slots[0].UpdatedAt.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inside transaction locks the rows", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(selectPending+" FOR UPDATE").
			WithArgs(int64(7), "new", "modified").
			WillReturnRows(sqlmock.NewRows(rowColumns))
		mock.ExpectCommit()

		tx, err := db.BeginTx(context.Background(), nil)
		require.NoError(t, err)
		ctx := dbmetrics.WithTx(context.Background(), tx)

		slots, err := repo.GetPendingByPractitionerID(ctx, 7)
		require.NoError(t, err)
		assert.Empty(t, slots)

		require.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdateStatuses(t *testing.T) {
	const update = "UPDATE time_slots SET status = $1, updated_at = NOW() WHERE id IN ($2,$3)"

	slots := func() []*domain.TimeSlot {
		return []*domain.TimeSlot{
			{ID: 1, Status: domain.TimeSlotStatusProcessed},
			{ID: 2, Status: domain.TimeSlotStatusProcessed},
		}
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)

		mock.ExpectExec(update).
			WithArgs("processed", int64(1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		require.NoError(t, repo.UpdateStatuses(context.Background(), slots()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("partially updated", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)

		mock.ExpectExec(update).
			WithArgs("processed", int64(1), int64(2)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatuses(context.Background(), slots())

		assert.ErrorIs(t, err, ErrTimeSlotNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty input", func(t *testing.T) {
		db, mock := newMock(t)
		repo := NewRepository(db)

		require.NoError(t, repo.UpdateStatuses(context.Background(), nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO time_slots (practitioner_id,start_date,end_date,status) "+
		"VALUES ($1,$2,$3,$4) RETURNING id, created_at, updated_at").
		WithArgs(int64(7), at(9), at(12), "new").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(21), at(8), at(8)))

	slot, err := repo.Create(context.Background(), &domain.TimeSlot{
		PractitionerID: 7,
		Interval:       domain.Interval{Start: at(9), End: at(12)},
		Status:         domain.TimeSlotStatusNew,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(21), slot.ID)
	assert.Equal(t, at(8), slot.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}
