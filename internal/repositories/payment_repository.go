package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"construct-backend/internal/models"
)

type PaymentRepository struct {
	DB *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{DB: db}
}

const paymentColumns = `p.id, p.invoice_id, i.invoice_number, p.amount, p.payment_method,
	p.payment_date, p.transaction_reference, p.received_by, p.notes, p.created_at`

const paymentFrom = ` FROM payments p JOIN invoices i ON p.invoice_id = i.id `

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.InvoiceID, &p.InvoiceNumber, &p.Amount, &p.PaymentMethod,
		&p.PaymentDate, &p.TransactionReference, &p.ReceivedBy, &p.Notes, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Get retrieves a payment by ID
func (r *PaymentRepository) Get(ctx context.Context, id int) (*models.Payment, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+paymentColumns+paymentFrom+`WHERE p.id = $1`, id)
	return scanPayment(row)
}

// List returns all payments, newest first
func (r *PaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+paymentFrom+`ORDER BY p.payment_date DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

// ListByInvoice returns the payment history for an invoice
func (r *PaymentRepository) ListByInvoice(ctx context.Context, invoiceID int) ([]*models.Payment, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+paymentFrom+`
		 WHERE p.invoice_id = $1 ORDER BY p.payment_date DESC, p.id DESC`, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPayments(rows)
}

func collectPayments(rows pgx.Rows) ([]*models.Payment, error) {
	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.InvoiceID, &p.InvoiceNumber, &p.Amount, &p.PaymentMethod,
			&p.PaymentDate, &p.TransactionReference, &p.ReceivedBy, &p.Notes, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
