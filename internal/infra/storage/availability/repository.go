package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "availabilities"

var columns = []string{
	"id",
	"practitioner_id",
	"start_date",
	"end_date",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронируемых слотов специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch сохраняет слоты одним INSERT и проставляет им ID
// Слоты одного специалиста уникальны по start_date, по нему и сопоставляем RETURNING
func (r *Repository) CreateBatch(ctx context.Context, availabilities []*domain.Availability) ([]*domain.Availability, error) {
	if len(availabilities) == 0 {
		return availabilities, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(table).
		Columns("practitioner_id", "start_date", "end_date", "status")
	for _, a := range availabilities {
		insert = insert.Values(a.PractitionerID, a.Interval.Start, a.Interval.End, a.Status)
	}

	query, args, err := insert.
		Suffix("RETURNING id, practitioner_id, start_date, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	type key struct {
		practitionerID int64
		start          int64
	}
	byKey := make(map[key]*domain.Availability, len(availabilities))
	for _, a := range availabilities {
		byKey[key{a.PractitionerID, a.Interval.Start.UnixNano()}] = a
	}

	for rows.Next() {
		var (
			id, practitionerID   int64
			start                time.Time
			createdAt, updatedAt sql.NullTime
		)
		if err := rows.Scan(&id, &practitionerID, &start, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan row: %v", ErrScanRow, err)
		}

		a, ok := byKey[key{practitionerID, start.UnixNano()}]
		if !ok {
			return nil, fmt.Errorf("%w: CreateBatch - unexpected returned row practitioner=%d start=%s",
				ErrScanRow, practitionerID, start.Format(time.RFC3339))
		}
		a.ID = id
		a.CreatedAt = createdAt.Time
		a.UpdatedAt = updatedAt.Time
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return availabilities, nil
}

// GetByPractitionerID получает слоты специалиста, опционально фильтруя по статусу
func (r *Repository) GetByPractitionerID(ctx context.Context, practitionerID int64, status *domain.AvailabilityStatus) ([]*domain.Availability, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		OrderBy("start_date ASC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	return r.list(ctx, "GetByPractitionerID", builder)
}

// GetByPractitionerInRange получает все слоты специалиста (в любом статусе),
// пересекающиеся с интервалом rng
func (r *Repository) GetByPractitionerInRange(ctx context.Context, practitionerID int64, rng domain.Interval) ([]*domain.Availability, error) {
	return r.list(ctx, "GetByPractitionerInRange", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		Where(squirrel.Lt{"start_date": rng.End}).
		Where(squirrel.Gt{"end_date": rng.Start}).
		OrderBy("start_date ASC"))
}

// GetFreeForUpdate получает свободный слот с точным совпадением границ
// Внутри транзакции строка блокируется (FOR UPDATE): конкурирующая транзакция ждёт,
// а после коммита победителя уже не видит слот свободным
func (r *Repository) GetFreeForUpdate(ctx context.Context, practitionerID int64, interval domain.Interval) (*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"practitioner_id": practitionerID,
			"start_date":      interval.Start,
			"end_date":        interval.End,
			"status":          domain.AvailabilityStatusFree,
		})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetFreeForUpdate - build select query: %v", ErrBuildQuery, err)
	}

	availability, err := scanAvailability(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAvailabilityNotFound
	}
	if err != nil {
		// %w у причины, чтобы txmanager распознал lock_timeout
		return nil, fmt.Errorf("%w: GetFreeForUpdate - scan availability: %w", ErrScanRow, err)
	}

	return availability, nil
}

// UpdateStatus обновляет статус слота
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AvailabilityStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAvailabilityNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Availability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	availabilities := make([]*domain.Availability, 0)
	for rows.Next() {
		availability, err := scanAvailability(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		availabilities = append(availabilities, availability)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return availabilities, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAvailability(row scanner) (*domain.Availability, error) {
	var availability domain.Availability
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&availability.ID,
		&availability.PractitionerID,
		&availability.Interval.Start,
		&availability.Interval.End,
		&availability.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	availability.CreatedAt = createdAt.Time
	availability.UpdatedAt = updatedAt.Time

	return &availability, nil
}
