package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"construct-backend/internal/models"
)

type InvoiceRepository struct {
	DB *pgxpool.Pool
}

func NewInvoiceRepository(db *pgxpool.Pool) *InvoiceRepository {
	return &InvoiceRepository{DB: db}
}

const invoiceColumns = `i.id, i.job_id, i.customer_id, c.first_name || ' ' || c.last_name,
	i.invoice_number, i.invoice_date, i.due_date, i.labor_cost, i.material_cost,
	i.additional_costs, i.tax_rate, i.status, i.amount_paid, i.notes,
	i.created_at, i.updated_at`

const invoiceFrom = ` FROM invoices i JOIN customers c ON i.customer_id = c.id `

func scanInvoice(row pgx.Row) (*models.Invoice, error) {
	var i models.Invoice
	err := row.Scan(&i.ID, &i.JobID, &i.CustomerID, &i.CustomerName,
		&i.InvoiceNumber, &i.InvoiceDate, &i.DueDate, &i.LaborCost, &i.MaterialCost,
		&i.AdditionalCosts, &i.TaxRate, &i.Status, &i.AmountPaid, &i.Notes,
		&i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &i, nil
}

// Create raises a DRAFT invoice for a job. The invoice number is drawn
// from invoice_number_seq inside the same transaction as the insert, so
// concurrent creations can never collide or reuse a number.
func (r *InvoiceRepository) Create(ctx context.Context, req *models.CreateInvoiceRequest, invoiceDate, dueDate time.Time) (*models.Invoice, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var customerID int
	err = tx.QueryRow(ctx, `SELECT customer_id FROM jobs WHERE id = $1`, req.JobID).Scan(&customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE job_id = $1)`, req.JobID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrInvoiceExists
	}

	var seq int64
	if err := tx.QueryRow(ctx, `SELECT nextval('invoice_number_seq')`).Scan(&seq); err != nil {
		return nil, err
	}
	number := fmt.Sprintf("INV-%05d", seq)

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO invoices (job_id, customer_id, invoice_number, invoice_date, due_date,
		                       labor_cost, material_cost, additional_costs, tax_rate, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		req.JobID, customerID, number, invoiceDate, dueDate,
		req.LaborCost, req.MaterialCost, req.AdditionalCosts, req.TaxRate, req.Notes,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Get retrieves an invoice by ID
func (r *InvoiceRepository) Get(ctx context.Context, id int) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+invoiceColumns+invoiceFrom+`WHERE i.id = $1`, id)
	return scanInvoice(row)
}

// GetByNumber retrieves an invoice by its formatted number
func (r *InvoiceRepository) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+invoiceColumns+invoiceFrom+`WHERE i.invoice_number = $1`, number)
	return scanInvoice(row)
}

// GetByJob retrieves the invoice raised for a job, if any
func (r *InvoiceRepository) GetByJob(ctx context.Context, jobID int) (*models.Invoice, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+invoiceColumns+invoiceFrom+`WHERE i.job_id = $1`, jobID)
	return scanInvoice(row)
}

// GetWithPayments returns an invoice with derived amounts and its payment
// history, newest payment first.
func (r *InvoiceRepository) GetWithPayments(ctx context.Context, id int) (*models.InvoiceWithPayments, error) {
	invoice, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx,
		`SELECT `+paymentColumns+paymentFrom+`WHERE p.invoice_id = $1 ORDER BY p.payment_date DESC, p.id DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments, err := collectPayments(rows)
	if err != nil {
		return nil, err
	}

	return &models.InvoiceWithPayments{
		Invoice:    *invoice,
		Subtotal:   invoice.Subtotal(),
		TaxAmount:  invoice.TaxAmount(),
		Total:      invoice.TotalAmount(),
		BalanceDue: invoice.BalanceDue(),
		Payments:   payments,
	}, nil
}

// List returns all invoices, newest first
func (r *InvoiceRepository) List(ctx context.Context) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+invoiceColumns+invoiceFrom+`ORDER BY i.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// ListByStatus returns invoices in any of the given statuses
func (r *InvoiceRepository) ListByStatus(ctx context.Context, statuses ...string) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+invoiceColumns+invoiceFrom+`WHERE i.status = ANY($1) ORDER BY i.due_date, i.id`, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// ListByCustomer returns all invoices for a customer
func (r *InvoiceRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+invoiceColumns+invoiceFrom+`WHERE i.customer_id = $1 ORDER BY i.created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectInvoices(rows)
}

// UpdateStatus sets an invoice's status without touching amounts
func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int, status string) (*models.Invoice, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Update modifies the cost components of a DRAFT invoice
func (r *InvoiceRepository) Update(ctx context.Context, id int, req *models.CreateInvoiceRequest, dueDate time.Time) (*models.Invoice, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices
		 SET labor_cost = $2, material_cost = $3, additional_costs = $4,
		     tax_rate = $5, due_date = $6, notes = $7, updated_at = NOW()
		 WHERE id = $1 AND status = 'DRAFT'`,
		id, req.LaborCost, req.MaterialCost, req.AdditionalCosts, req.TaxRate, dueDate, req.Notes,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, models.ErrConflict
	}
	return r.Get(ctx, id)
}

// SweepOverdue flips SENT invoices whose due date has passed to OVERDUE
// and returns how many were flipped. Only SENT rows are touched, so
// running the sweep twice in a row reports zero the second time.
func (r *InvoiceRepository) SweepOverdue(ctx context.Context, today time.Time) (int, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE invoices SET status = 'OVERDUE', updated_at = NOW()
		 WHERE status = 'SENT' AND due_date < $1`, today)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ApplyPayment records a payment and settles the parent invoice in one
// transaction. The invoice row is locked first so concurrent payments
// serialize; amount_paid is then recomputed from the full payment set
// rather than incremented, and the invoice flips to PAID once the total
// is covered. A repeated transaction reference returns the payment
// already recorded instead of inserting a duplicate.
func (r *InvoiceRepository) ApplyPayment(ctx context.Context, req *models.CreatePaymentRequest, paymentDate time.Time) (*models.Payment, *models.Invoice, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(ctx, `SELECT `+invoiceColumns+invoiceFrom+`WHERE i.id = $1 FOR UPDATE OF i`, req.InvoiceID)
	invoice, err := scanInvoice(row)
	if err != nil {
		return nil, nil, err
	}
	if invoice.Status == models.InvoiceStatusCancelled {
		return nil, nil, fmt.Errorf("%w: cannot record payment on a cancelled invoice", models.ErrConflict)
	}

	if req.TransactionReference != "" {
		row := tx.QueryRow(ctx,
			`SELECT `+paymentColumns+paymentFrom+`
			 WHERE p.invoice_id = $1 AND p.transaction_reference = $2`,
			req.InvoiceID, req.TransactionReference)
		existing, err := scanPayment(row)
		if err == nil {
			return existing, invoice, tx.Commit(ctx)
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, nil, err
		}
	}

	var paymentID int
	err = tx.QueryRow(ctx,
		`INSERT INTO payments (invoice_id, amount, payment_method, payment_date,
		                       transaction_reference, received_by, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		req.InvoiceID, req.Amount, req.PaymentMethod, paymentDate,
		req.TransactionReference, req.ReceivedBy, req.Notes,
	).Scan(&paymentID)
	if err != nil {
		return nil, nil, err
	}

	var paid decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`, req.InvoiceID).Scan(&paid)
	if err != nil {
		return nil, nil, err
	}

	status := invoice.Status
	if paid.GreaterThanOrEqual(invoice.TotalAmount()) {
		status = models.InvoiceStatusPaid
	}
	_, err = tx.Exec(ctx,
		`UPDATE invoices SET amount_paid = $2, status = $3, updated_at = NOW() WHERE id = $1`,
		req.InvoiceID, paid, status)
	if err != nil {
		return nil, nil, err
	}

	row = tx.QueryRow(ctx, `SELECT `+paymentColumns+paymentFrom+`WHERE p.id = $1`, paymentID)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}
	invoice.AmountPaid = paid
	invoice.Status = status
	return payment, invoice, nil
}

// DeletePayment removes a recorded payment and recomputes the parent
// invoice's amount_paid. Payments on PAID invoices are immutable.
func (r *InvoiceRepository) DeletePayment(ctx context.Context, paymentID int) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var invoiceID int
	var status string
	err = tx.QueryRow(ctx,
		`SELECT p.invoice_id, i.status
		 FROM payments p JOIN invoices i ON p.invoice_id = i.id
		 WHERE p.id = $1
		 FOR UPDATE OF i`, paymentID).Scan(&invoiceID, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ErrNotFound
		}
		return err
	}
	if status == models.InvoiceStatusPaid {
		return fmt.Errorf("%w: payments on a settled invoice cannot be removed", models.ErrConflict)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE id = $1`, paymentID); err != nil {
		return err
	}
	_, err = tx.Exec(ctx,
		`UPDATE invoices
		 SET amount_paid = (SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1),
		     updated_at = NOW()
		 WHERE id = $1`, invoiceID)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func collectInvoices(rows pgx.Rows) ([]*models.Invoice, error) {
	var invoices []*models.Invoice
	for rows.Next() {
		var i models.Invoice
		err := rows.Scan(&i.ID, &i.JobID, &i.CustomerID, &i.CustomerName,
			&i.InvoiceNumber, &i.InvoiceDate, &i.DueDate, &i.LaborCost, &i.MaterialCost,
			&i.AdditionalCosts, &i.TaxRate, &i.Status, &i.AmountPaid, &i.Notes,
			&i.CreatedAt, &i.UpdatedAt)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, &i)
	}
	return invoices, rows.Err()
}
