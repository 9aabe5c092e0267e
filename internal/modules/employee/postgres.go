package employee

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const employeeColumns = `id, store_id, name, role, pin_hash, is_active, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, e *Employee) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO employees (id, store_id, name, role, pin_hash, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, e.StoreID, e.Name, e.Role, e.PINHash, e.IsActive)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*Employee, error) {
	return scanEmployee(r.db.QueryRowContext(ctx, `
		SELECT `+employeeColumns+` FROM employees WHERE store_id=$1 AND id=$2`,
		storeID, id))
}

func (r *postgresRepo) ListActive(ctx context.Context, storeID uuid.UUID) ([]*Employee, error) {
	return r.list(ctx, `
		SELECT `+employeeColumns+` FROM employees
		WHERE store_id=$1 AND is_active=true ORDER BY created_at`, storeID)
}

func (r *postgresRepo) List(ctx context.Context, storeID uuid.UUID) ([]*Employee, error) {
	return r.list(ctx, `
		SELECT `+employeeColumns+` FROM employees
		WHERE store_id=$1 ORDER BY created_at`, storeID)
}

func (r *postgresRepo) Deactivate(ctx context.Context, storeID, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE employees SET is_active=false, updated_at=$1
		WHERE store_id=$2 AND id=$3`,
		time.Now().UTC(), storeID, id)
	return err
}

func (r *postgresRepo) list(ctx context.Context, query string, args ...interface{}) ([]*Employee, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var employees []*Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanEmployee(row rowScanner) (*Employee, error) {
	e := &Employee{}
	err := row.Scan(&e.ID, &e.StoreID, &e.Name, &e.Role, &e.PINHash,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}
