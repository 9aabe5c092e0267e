package category

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, store_id, name, description)
		VALUES ($1,$2,$3,$4)`,
		c.ID, c.StoreID, c.Name, c.Description)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*Category, error) {
	return scanCategory(r.db.QueryRowContext(ctx, `
		SELECT id, store_id, name, description, created_at, updated_at
		FROM categories WHERE store_id=$1 AND id=$2`, storeID, id))
}

func (r *postgresRepo) List(ctx context.Context, storeID uuid.UUID) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, store_id, name, description, created_at, updated_at
		FROM categories WHERE store_id=$1 ORDER BY name`, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE categories SET name=$1, description=$2, updated_at=$3
		WHERE store_id=$4 AND id=$5`,
		c.Name, c.Description, time.Now().UTC(), c.StoreID, c.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM categories WHERE store_id=$1 AND id=$2`, storeID, id)
	return err
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanCategory(row rowScanner) (*Category, error) {
	c := &Category{}
	err := row.Scan(&c.ID, &c.StoreID, &c.Name, &c.Description,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}
