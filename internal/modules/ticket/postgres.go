package ticket

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

const ticketColumns = `id, store_id, title, description, status, technician_id,
	customer_name, customer_phone, estimated_cost, subtotal, tax, total,
	scheduled_at, started_at, completed_at, cancelled_at, created_by,
	created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, t *Ticket) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO tickets
		  (id, store_id, title, description, status, technician_id,
		   customer_name, customer_phone, estimated_cost, subtotal, tax, total,
		   scheduled_at, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		t.ID, t.StoreID, t.Title, t.Description, t.Status, t.TechnicianID,
		t.CustomerName, t.CustomerPhone, t.EstimatedCost, t.Subtotal, t.Tax, t.Total,
		t.ScheduledAt, t.CreatedBy)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, storeID, id uuid.UUID) (*Ticket, error) {
	return scanTicket(r.db.QueryRowContext(ctx, `
		SELECT `+ticketColumns+` FROM tickets WHERE store_id=$1 AND id=$2`,
		storeID, id))
}

func (r *postgresRepo) List(ctx context.Context, storeID uuid.UUID, f ListFilter) ([]*Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE store_id=$1`
	args := []interface{}{storeID}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(` AND status=$%d`, len(args))
	}
	if f.TechnicianID != nil {
		args = append(args, *f.TechnicianID)
		query += fmt.Sprintf(` AND technician_id=$%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tickets []*Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, t *Ticket) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE tickets SET
		  title=$1, description=$2, status=$3, technician_id=$4,
		  customer_name=$5, customer_phone=$6, estimated_cost=$7,
		  subtotal=$8, tax=$9, total=$10, scheduled_at=$11,
		  started_at=$12, completed_at=$13, cancelled_at=$14, updated_at=$15
		WHERE store_id=$16 AND id=$17`,
		t.Title, t.Description, t.Status, t.TechnicianID,
		t.CustomerName, t.CustomerPhone, t.EstimatedCost,
		t.Subtotal, t.Tax, t.Total, t.ScheduledAt,
		t.StartedAt, t.CompletedAt, t.CancelledAt, time.Now().UTC(),
		t.StoreID, t.ID)
	return err
}

func (r *postgresRepo) Delete(ctx context.Context, storeID, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM tickets WHERE store_id=$1 AND id=$2`, storeID, id)
	return err
}

func (r *postgresRepo) CreateNote(ctx context.Context, n *Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ticket_notes (id, ticket_id, store_id, author_id, body, visibility)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		n.ID, n.TicketID, n.StoreID, n.AuthorID, n.Body, n.Visibility)
	return err
}

func (r *postgresRepo) ListNotes(ctx context.Context, storeID, ticketID uuid.UUID) ([]*Note, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ticket_id, store_id, author_id, body, visibility, created_at
		FROM ticket_notes WHERE store_id=$1 AND ticket_id=$2
		ORDER BY created_at DESC`, storeID, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var notes []*Note
	for rows.Next() {
		n := &Note{}
		if err := rows.Scan(&n.ID, &n.TicketID, &n.StoreID, &n.AuthorID,
			&n.Body, &n.Visibility, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

type rowScanner interface{ Scan(dest ...interface{}) error }

func scanTicket(row rowScanner) (*Ticket, error) {
	t := &Ticket{}
	var technicianID sql.NullString
	err := row.Scan(&t.ID, &t.StoreID, &t.Title, &t.Description, &t.Status,
		&technicianID, &t.CustomerName, &t.CustomerPhone,
		&t.EstimatedCost, &t.Subtotal, &t.Tax, &t.Total,
		&t.ScheduledAt, &t.StartedAt, &t.CompletedAt, &t.CancelledAt,
		&t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if technicianID.Valid {
		uid, err := uuid.Parse(technicianID.String)
		if err == nil {
			t.TechnicianID = &uid
		}
	}
	return t, nil
}
