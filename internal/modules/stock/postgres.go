package stock

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const itemColumns = `id, store_id, sku, name, description, category_id,
	quantity_on_hand, reorder_point, unit_price, created_at, updated_at`

func (r *postgresRepo) CreateItem(ctx context.Context, i *StockItem) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stock_items
		  (id, store_id, sku, name, description, category_id,
		   quantity_on_hand, reorder_point, unit_price)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		i.ID, i.StoreID, i.SKU, i.Name, i.Description, i.CategoryID,
		i.QuantityOnHand, i.ReorderPoint, i.UnitPrice)
	return err
}

func (r *postgresRepo) GetItem(ctx context.Context, storeID, id uuid.UUID) (*StockItem, error) {
	return scanItem(r.db.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM stock_items WHERE store_id=$1 AND id=$2`,
		storeID, id))
}

func (r *postgresRepo) ListItems(ctx context.Context, storeID uuid.UUID) ([]*StockItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+itemColumns+` FROM stock_items WHERE store_id=$1 ORDER BY name`,
		storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*StockItem
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *postgresRepo) UpdateItem(ctx context.Context, i *StockItem) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE stock_items SET
		  name=$1, description=$2, category_id=$3, reorder_point=$4,
		  unit_price=$5, updated_at=$6
		WHERE store_id=$7 AND id=$8`,
		i.Name, i.Description, i.CategoryID, i.ReorderPoint,
		i.UnitPrice, time.Now().UTC(), i.StoreID, i.ID)
	return err
}

func (r *postgresRepo) DeleteItem(ctx context.Context, storeID, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM stock_items WHERE store_id=$1 AND id=$2`, storeID, id)
	return err
}

// Adjust runs the ledger append and the balance update in one transaction
// with the item row locked, so the ledger sum and quantity_on_hand cannot
// diverge under concurrent adjustments.
func (r *postgresRepo) Adjust(ctx context.Context, m *Movement, allowNegative bool) (*StockItem, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	item, err := scanItem(tx.QueryRowContext(ctx, `
		SELECT `+itemColumns+` FROM stock_items
		WHERE store_id=$1 AND id=$2 FOR UPDATE`,
		m.StoreID, m.ItemID))
	if err != nil {
		return nil, err
	}

	newQty := item.QuantityOnHand + m.QuantityChange
	if newQty < 0 && !allowNegative {
		return nil, ErrInsufficientStock
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO stock_movements
		  (id, item_id, store_id, quantity_change, reason, note, recorded_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		m.ID, m.ItemID, m.StoreID, m.QuantityChange, m.Reason, m.Note, m.RecordedBy); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE stock_items SET quantity_on_hand=$1, updated_at=$2
		WHERE store_id=$3 AND id=$4`,
		newQty, time.Now().UTC(), m.StoreID, m.ItemID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	item.QuantityOnHand = newQty
	return item, nil
}

func (r *postgresRepo) ListRecentMovements(ctx context.Context, storeID, itemID uuid.UUID, limit int) ([]*Movement, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, store_id, quantity_change, reason, note, recorded_by, created_at
		FROM stock_movements WHERE store_id=$1 AND item_id=$2
		ORDER BY created_at DESC LIMIT $3`, storeID, itemID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var movements []*Movement
	for rows.Next() {
		m := &Movement{}
		if err := rows.Scan(&m.ID, &m.ItemID, &m.StoreID, &m.QuantityChange,
			&m.Reason, &m.Note, &m.RecordedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanItem(row rowScanner) (*StockItem, error) {
	i := &StockItem{}
	var categoryID sql.NullString
	var reorderPoint sql.NullInt64
	err := row.Scan(&i.ID, &i.StoreID, &i.SKU, &i.Name, &i.Description,
		&categoryID, &i.QuantityOnHand, &reorderPoint, &i.UnitPrice,
		&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		uid, err := uuid.Parse(categoryID.String)
		if err == nil {
			i.CategoryID = &uid
		}
	}
	if reorderPoint.Valid {
		rp := int(reorderPoint.Int64)
		i.ReorderPoint = &rp
	}
	return i, nil
}
