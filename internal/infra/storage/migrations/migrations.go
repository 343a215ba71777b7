package migrations

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS practitioners (
	id BIGSERIAL PRIMARY KEY,
	first_name TEXT NOT NULL CHECK (btrim(first_name) <> ''),
	last_name TEXT NOT NULL CHECK (btrim(last_name) <> ''),
	speciality TEXT
);

CREATE TABLE IF NOT EXISTS patients (
	id BIGSERIAL PRIMARY KEY,
	first_name TEXT NOT NULL CHECK (btrim(first_name) <> ''),
	last_name TEXT NOT NULL CHECK (btrim(last_name) <> ''),
	birth_date DATE
);

CREATE TABLE IF NOT EXISTS time_slots (
	id BIGSERIAL PRIMARY KEY,
	practitioner_id BIGINT NOT NULL REFERENCES practitioners(id),
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new', 'modified', 'processed')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (start_date < end_date)
);

CREATE INDEX IF NOT EXISTS idx_time_slots_practitioner_status ON time_slots(practitioner_id, status);

CREATE TABLE IF NOT EXISTS availabilities (
	id BIGSERIAL PRIMARY KEY,
	practitioner_id BIGINT NOT NULL REFERENCES practitioners(id),
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'free' CHECK (status IN ('free', 'reserved')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (start_date < end_date),
	UNIQUE (practitioner_id, start_date, end_date)
);

CREATE INDEX IF NOT EXISTS idx_availabilities_practitioner_status ON availabilities(practitioner_id, status);

CREATE TABLE IF NOT EXISTS appointments (
	id BIGSERIAL PRIMARY KEY,
	patient_id BIGINT NOT NULL REFERENCES patients(id),
	practitioner_id BIGINT NOT NULL REFERENCES practitioners(id),
	start_date TIMESTAMPTZ NOT NULL,
	end_date TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL DEFAULT 'confirmed' CHECK (status IN ('confirmed', 'cancelled')),
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (start_date < end_date)
);

CREATE INDEX IF NOT EXISTS idx_appointments_patient_status ON appointments(patient_id, status);
CREATE INDEX IF NOT EXISTS idx_appointments_practitioner_start ON appointments(practitioner_id, start_date);
`

// Up применяет схему; повторный вызов безопасен
func Up(ctx context.Context, db dbmetrics.DBExecutor) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrations: apply schema: %w", err)
	}
	return nil
}
