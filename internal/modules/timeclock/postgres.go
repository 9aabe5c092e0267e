package timeclock

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const entryColumns = `id, store_id, employee_id, clocked_in_at, clocked_out_at, created_at`

func (r *postgresRepo) Create(ctx context.Context, e *TimeEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO time_entries (id, store_id, employee_id, clocked_in_at)
		VALUES ($1,$2,$3,$4)`,
		e.ID, e.StoreID, e.EmployeeID, e.ClockedInAt)
	return err
}

func (r *postgresRepo) GetOpenEntry(ctx context.Context, storeID, employeeID uuid.UUID) (*TimeEntry, error) {
	return scanEntry(r.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM time_entries
		WHERE store_id=$1 AND employee_id=$2 AND clocked_out_at IS NULL`,
		storeID, employeeID))
}

func (r *postgresRepo) Close(ctx context.Context, storeID, id uuid.UUID) (*TimeEntry, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		UPDATE time_entries SET clocked_out_at=$1
		WHERE store_id=$2 AND id=$3 AND clocked_out_at IS NULL`,
		now, storeID, id)
	if err != nil {
		return nil, err
	}
	return scanEntry(r.db.QueryRowContext(ctx, `
		SELECT `+entryColumns+` FROM time_entries WHERE store_id=$1 AND id=$2`,
		storeID, id))
}

func (r *postgresRepo) ListByEmployee(ctx context.Context, storeID, employeeID uuid.UUID) ([]*TimeEntry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+` FROM time_entries
		WHERE store_id=$1 AND employee_id=$2 ORDER BY clocked_in_at DESC`,
		storeID, employeeID)
}

func (r *postgresRepo) List(ctx context.Context, storeID uuid.UUID) ([]*TimeEntry, error) {
	return r.list(ctx, `
		SELECT `+entryColumns+` FROM time_entries
		WHERE store_id=$1 ORDER BY clocked_in_at DESC`, storeID)
}

func (r *postgresRepo) list(ctx context.Context, query string, args ...interface{}) ([]*TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*TimeEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanEntry(row rowScanner) (*TimeEntry, error) {
	e := &TimeEntry{}
	err := row.Scan(&e.ID, &e.StoreID, &e.EmployeeID,
		&e.ClockedInAt, &e.ClockedOutAt, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}
