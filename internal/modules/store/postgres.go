package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Store) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stores (id, code, name, address, phone)
		VALUES ($1,$2,$3,$4,$5)`,
		s.ID, s.Code, s.Name, s.Address, s.Phone)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Store, error) {
	return scanStore(r.db.QueryRowContext(ctx, `
		SELECT id, code, name, address, phone, created_at, updated_at
		FROM stores WHERE id=$1`, id))
}

func (r *postgresRepo) GetByCode(ctx context.Context, code string) (*Store, error) {
	return scanStore(r.db.QueryRowContext(ctx, `
		SELECT id, code, name, address, phone, created_at, updated_at
		FROM stores WHERE code=$1`, code))
}

func (r *postgresRepo) Update(ctx context.Context, s *Store) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stores SET name=$1, address=$2, phone=$3, updated_at=$4
		WHERE id=$5`,
		s.Name, s.Address, s.Phone, time.Now().UTC(), s.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM stores WHERE id=$1`, id)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanStore(row rowScanner) (*Store, error) {
	s := &Store{}
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.Address, &s.Phone,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
