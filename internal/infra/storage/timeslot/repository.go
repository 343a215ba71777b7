package timeslot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "time_slots"

var columns = []string{
	"id",
	"practitioner_id",
	"start_date",
	"end_date",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий рабочих окон специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих окон
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое рабочее окно
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("practitioner_id", "start_date", "end_date", "status").
		Values(slot.PractitionerID, slot.Interval.Start, slot.Interval.End, slot.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetPendingByPractitionerID получает окна в статусах new/modified
// Внутри транзакции строки блокируются (FOR UPDATE), поэтому параллельная генерация
// для того же специалиста дождётся коммита и уже не увидит обработанные окна
func (r *Repository) GetPendingByPractitionerID(ctx context.Context, practitionerID int64) ([]*domain.TimeSlot, error) {
	statuses := make([]string, len(domain.PendingTimeSlotStatuses))
	for i, s := range domain.PendingTimeSlotStatuses {
		statuses[i] = string(s)
	}

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		Where(squirrel.Eq{"status": statuses}).
		OrderBy("start_date ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, "GetPendingByPractitionerID", builder)
}

// UpdateStatuses сохраняет статусы переданных окон
func (r *Repository) UpdateStatuses(ctx context.Context, slots []*domain.TimeSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Группируем по статусу, чтобы обойтись одним UPDATE на статус
	idsByStatus := make(map[domain.TimeSlotStatus][]int64)
	for _, s := range slots {
		idsByStatus[s.Status] = append(idsByStatus[s.Status], s.ID)
	}

	for status, ids := range idsByStatus {
		query, args, err := psqlbuilder.Update(table).
			Set("status", status).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": ids}).
			ToSql()
		if err != nil {
			return fmt.Errorf("%w: UpdateStatuses - build update query: %v", ErrBuildQuery, err)
		}

		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: UpdateStatuses - execute update: %v", ErrExecQuery, err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: UpdateStatuses - get rows affected: %v", ErrExecQuery, err)
		}
		if rowsAffected != int64(len(ids)) {
			return fmt.Errorf("%w: UpdateStatuses - updated %d of %d rows", ErrTimeSlotNotFound, rowsAffected, len(ids))
		}
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)
	for rows.Next() {
		var slot domain.TimeSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.PractitionerID,
			&slot.Interval.Start,
			&slot.Interval.End,
			&slot.Status,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return slots, nil
}
