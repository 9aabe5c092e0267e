package sale

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const saleColumns = `id, store_id, ticket_id, customer_name, subtotal, tax, total,
	payment_method, payment_status, paid_at, created_by, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, s *Sale) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sales
		  (id, store_id, ticket_id, customer_name, subtotal, tax, total,
		   payment_method, payment_status, paid_at, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		s.ID, s.StoreID, s.TicketID, s.CustomerName, s.Subtotal, s.Tax, s.Total,
		s.PaymentMethod, s.PaymentStatus, s.PaidAt, s.CreatedBy)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*Sale, error) {
	return scanSale(r.db.QueryRowContext(ctx, `
		SELECT `+saleColumns+` FROM sales WHERE store_id=$1 AND id=$2`,
		storeID, id))
}

func (r *postgresRepo) List(ctx context.Context, storeID uuid.UUID, status string) ([]*Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE store_id=$1`
	args := []interface{}{storeID}
	if status != "" {
		query += ` AND payment_status=$2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sales []*Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	return sales, rows.Err()
}

func (r *postgresRepo) RefundSale(ctx context.Context, refund *Refund) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// The status guard in the WHERE clause makes the flip atomic: a
	// second refund matches zero rows.
	res, err := tx.ExecContext(ctx, `
		UPDATE sales SET payment_status=$1, updated_at=$2
		WHERE store_id=$3 AND id=$4 AND payment_status=$5`,
		StatusRefunded, time.Now().UTC(), refund.StoreID, refund.SaleID, StatusPaid)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyRefunded
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO refunds (id, sale_id, store_id, amount, reason, created_by)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		refund.ID, refund.SaleID, refund.StoreID, refund.Amount,
		refund.Reason, refund.CreatedBy); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *postgresRepo) GetRefundBySale(ctx context.Context, storeID, saleID uuid.UUID) (*Refund, error) {
	rf := &Refund{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, sale_id, store_id, amount, reason, created_by, created_at
		FROM refunds WHERE store_id=$1 AND sale_id=$2`,
		storeID, saleID).Scan(&rf.ID, &rf.SaleID, &rf.StoreID, &rf.Amount,
		&rf.Reason, &rf.CreatedBy, &rf.CreatedAt)
	if err != nil {
		return nil, err
	}
	return rf, nil
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanSale(row rowScanner) (*Sale, error) {
	s := &Sale{}
	var ticketID sql.NullString
	err := row.Scan(&s.ID, &s.StoreID, &ticketID, &s.CustomerName,
		&s.Subtotal, &s.Tax, &s.Total, &s.PaymentMethod, &s.PaymentStatus,
		&s.PaidAt, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if ticketID.Valid {
		uid, err := uuid.Parse(ticketID.String)
		if err == nil {
			s.TicketID = &uid
		}
	}
	return s, nil
}
