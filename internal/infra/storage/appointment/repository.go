package appointment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "appointments"

var columns = []string{
	"id",
	"patient_id",
	"practitioner_id",
	"start_date",
	"end_date",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на приём
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"patient_id",
			"practitioner_id",
			"start_date",
			"end_date",
			"status",
		).
		Values(
			appointment.PatientID,
			appointment.PractitionerID,
			appointment.Interval.Start,
			appointment.Interval.End,
			appointment.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return appointment, nil
}

// GetAll получает все записи
func (r *Repository) GetAll(ctx context.Context) ([]*domain.Appointment, error) {
	return r.list(ctx, "GetAll", psqlbuilder.Select(columns...).
		From(table).
		OrderBy("start_date ASC", "id ASC"))
}

// GetByPractitionerID получает все записи к специалисту
func (r *Repository) GetByPractitionerID(ctx context.Context, practitionerID int64) ([]*domain.Appointment, error) {
	return r.list(ctx, "GetByPractitionerID", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		OrderBy("start_date ASC", "id ASC"))
}

// GetConfirmedByPractitionerInRange получает подтверждённые записи к специалисту,
// пересекающиеся с интервалом rng
func (r *Repository) GetConfirmedByPractitionerInRange(ctx context.Context, practitionerID int64, rng domain.Interval) ([]*domain.Appointment, error) {
	return r.list(ctx, "GetConfirmedByPractitionerInRange", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		Where(squirrel.Eq{"status": domain.AppointmentStatusConfirmed}).
		Where(squirrel.Lt{"start_date": rng.End}).
		Where(squirrel.Gt{"end_date": rng.Start}).
		OrderBy("start_date ASC"))
}

// FindOverlappingForPatient ищет подтверждённые записи пациента (к любому специалисту),
// пересекающиеся с interval. Касание границ пересечением не считается.
func (r *Repository) FindOverlappingForPatient(ctx context.Context, patientID int64, interval domain.Interval) ([]*domain.Appointment, error) {
	return r.list(ctx, "FindOverlappingForPatient", psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"patient_id": patientID}).
		Where(squirrel.Eq{"status": domain.AppointmentStatusConfirmed}).
		Where(squirrel.Lt{"start_date": interval.End}).
		Where(squirrel.Gt{"end_date": interval.Start}).
		OrderBy("start_date ASC"))
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Appointment, error) {
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

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return appointments, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row scanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appointment.ID,
		&appointment.PatientID,
		&appointment.PractitionerID,
		&appointment.Interval.Start,
		&appointment.Interval.End,
		&appointment.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.CreatedAt = createdAt.Time
	appointment.UpdatedAt = updatedAt.Time

	return &appointment, nil
}
