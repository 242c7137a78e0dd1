package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"construct-backend/internal/cache"
	"construct-backend/internal/metrics"
	"construct-backend/internal/models"
	"construct-backend/internal/timeutil"
)

// InvoiceStore is the persistence surface the ledger drives. Implemented
// by repositories.InvoiceRepository; faked in tests.
type InvoiceStore interface {
	Create(ctx context.Context, req *models.CreateInvoiceRequest, invoiceDate, dueDate time.Time) (*models.Invoice, error)
	Get(ctx context.Context, id int) (*models.Invoice, error)
	GetByNumber(ctx context.Context, number string) (*models.Invoice, error)
	GetByJob(ctx context.Context, jobID int) (*models.Invoice, error)
	GetWithPayments(ctx context.Context, id int) (*models.InvoiceWithPayments, error)
	List(ctx context.Context) ([]*models.Invoice, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]*models.Invoice, error)
	ListByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error)
	Update(ctx context.Context, id int, req *models.CreateInvoiceRequest, dueDate time.Time) (*models.Invoice, error)
	UpdateStatus(ctx context.Context, id int, status string) (*models.Invoice, error)
	SweepOverdue(ctx context.Context, today time.Time) (int, error)
	ApplyPayment(ctx context.Context, req *models.CreatePaymentRequest, paymentDate time.Time) (*models.Payment, *models.Invoice, error)
	DeletePayment(ctx context.Context, paymentID int) error
}

// PaymentStore is the read surface for recorded payments
type PaymentStore interface {
	Get(ctx context.Context, id int) (*models.Payment, error)
	List(ctx context.Context) ([]*models.Payment, error)
	ListByInvoice(ctx context.Context, invoiceID int) ([]*models.Payment, error)
}

// LedgerService owns the invoice/payment state machine. All writes to
// invoices and payments go through here; nothing else flips a status.
type LedgerService struct {
	Invoices InvoiceStore
	Payments PaymentStore
}

func NewLedgerService(invoices InvoiceStore, payments PaymentStore) *LedgerService {
	return &LedgerService{Invoices: invoices, Payments: payments}
}

// CreateInvoice raises a DRAFT invoice for a job. Cost components must be
// non-negative and the tax rate within 0..100; the due date defaults to
// 30 days after the issue date.
func (s *LedgerService) CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if req.JobID <= 0 {
		return nil, fmt.Errorf("%w: job_id is required", models.ErrValidation)
	}
	if err := validateCosts(req); err != nil {
		return nil, err
	}

	invoiceDate := timeutil.Today()
	dueDate := invoiceDate.AddDate(0, 0, models.DueDateDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	invoice, err := s.Invoices.Create(ctx, req, invoiceDate, dueDate)
	if err != nil {
		return nil, err
	}
	log.Printf("[Ledger] Created invoice %s for job %d", invoice.InvoiceNumber, invoice.JobID)
	metrics.InvoicesCreatedTotal.Inc()
	cache.InvalidateDashboard(ctx)
	return invoice, nil
}

// GetInvoice returns an invoice with derived amounts and payment history
func (s *LedgerService) GetInvoice(ctx context.Context, id int) (*models.InvoiceWithPayments, error) {
	return s.Invoices.GetWithPayments(ctx, id)
}

// GetInvoiceByNumber returns an invoice by its formatted number
func (s *LedgerService) GetInvoiceByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	return s.Invoices.GetByNumber(ctx, number)
}

// ListInvoices returns all invoices
func (s *LedgerService) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.Invoices.List(ctx)
}

// ListInvoicesByCustomer returns a customer's invoices
func (s *LedgerService) ListInvoicesByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error) {
	return s.Invoices.ListByCustomer(ctx, customerID)
}

// ListUnpaidInvoices returns invoices awaiting payment
func (s *LedgerService) ListUnpaidInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.Invoices.ListByStatus(ctx, models.InvoiceStatusSent, models.InvoiceStatusOverdue)
}

// ListOverdueInvoices sweeps past-due SENT invoices to OVERDUE, then
// lists everything overdue. The sweep is the only writer of the OVERDUE
// status and touching only SENT rows keeps it idempotent.
func (s *LedgerService) ListOverdueInvoices(ctx context.Context) ([]*models.Invoice, error) {
	flipped, err := s.Invoices.SweepOverdue(ctx, timeutil.Today())
	if err != nil {
		return nil, err
	}
	if flipped > 0 {
		log.Printf("[Ledger] Marked %d invoices overdue", flipped)
		metrics.OverdueSweepFlips.Add(float64(flipped))
		cache.InvalidateDashboard(ctx)
	}
	return s.Invoices.ListByStatus(ctx, models.InvoiceStatusOverdue)
}

// SweepOverdue runs the overdue sweep and reports how many invoices flipped
func (s *LedgerService) SweepOverdue(ctx context.Context) (int, error) {
	flipped, err := s.Invoices.SweepOverdue(ctx, timeutil.Today())
	if err != nil {
		return 0, err
	}
	if flipped > 0 {
		metrics.OverdueSweepFlips.Add(float64(flipped))
		cache.InvalidateDashboard(ctx)
	}
	return flipped, nil
}

// UpdateInvoice edits the cost components of a DRAFT invoice
func (s *LedgerService) UpdateInvoice(ctx context.Context, id int, req *models.CreateInvoiceRequest) (*models.Invoice, error) {
	if err := validateCosts(req); err != nil {
		return nil, err
	}
	current, err := s.Invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dueDate := current.DueDate
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}
	invoice, err := s.Invoices.Update(ctx, id, req, dueDate)
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx)
	return invoice, nil
}

// MarkSent issues a DRAFT invoice to the customer
func (s *LedgerService) MarkSent(ctx context.Context, id int) (*models.Invoice, error) {
	invoice, err := s.Invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Status != models.InvoiceStatusDraft {
		return nil, fmt.Errorf("%w: only a DRAFT invoice can be sent, %s is %s",
			models.ErrConflict, invoice.InvoiceNumber, invoice.Status)
	}
	updated, err := s.Invoices.UpdateStatus(ctx, id, models.InvoiceStatusSent)
	if err != nil {
		return nil, err
	}
	log.Printf("[Ledger] Invoice %s sent", updated.InvoiceNumber)
	cache.InvalidateDashboard(ctx)
	return updated, nil
}

// CancelInvoice voids an unsettled invoice. PAID and CANCELLED are
// terminal, so only DRAFT, SENT and OVERDUE invoices can be cancelled.
func (s *LedgerService) CancelInvoice(ctx context.Context, id int) (*models.Invoice, error) {
	invoice, err := s.Invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch invoice.Status {
	case models.InvoiceStatusDraft, models.InvoiceStatusSent, models.InvoiceStatusOverdue:
	default:
		return nil, fmt.Errorf("%w: cannot cancel a %s invoice", models.ErrConflict, invoice.Status)
	}
	updated, err := s.Invoices.UpdateStatus(ctx, id, models.InvoiceStatusCancelled)
	if err != nil {
		return nil, err
	}
	log.Printf("[Ledger] Invoice %s cancelled", updated.InvoiceNumber)
	cache.InvalidateDashboard(ctx)
	return updated, nil
}

// RecordPayment applies a payment to an invoice. The amount must be
// positive and the method one of the accepted codes; the invoice flips
// to PAID once payments cover the total, and a repeated transaction
// reference is a no-op returning the original payment.
func (s *LedgerService) RecordPayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.Payment, *models.Invoice, error) {
	if req.InvoiceID <= 0 {
		return nil, nil, fmt.Errorf("%w: invoice_id is required", models.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive", models.ErrValidation)
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return nil, nil, fmt.Errorf("%w: unknown payment method %q", models.ErrValidation, req.PaymentMethod)
	}

	paymentDate := timeutil.Today()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment, invoice, err := s.Invoices.ApplyPayment(ctx, req, paymentDate)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[Ledger] Payment of %s recorded against %s (status %s, paid %s)",
		payment.Amount, invoice.InvoiceNumber, invoice.Status, invoice.AmountPaid)
	metrics.PaymentsRecordedTotal.Inc()
	cache.InvalidateDashboard(ctx)
	return payment, invoice, nil
}

// DeletePayment removes a mis-recorded payment and recomputes the parent
// invoice's paid amount. Refused once the invoice is PAID.
func (s *LedgerService) DeletePayment(ctx context.Context, id int) error {
	if err := s.Invoices.DeletePayment(ctx, id); err != nil {
		return err
	}
	log.Printf("[Ledger] Payment %d deleted", id)
	cache.InvalidateDashboard(ctx)
	return nil
}

// GetPayment returns a payment by ID
func (s *LedgerService) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	return s.Payments.Get(ctx, id)
}

// ListPayments returns all payments
func (s *LedgerService) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	return s.Payments.List(ctx)
}

// ListPaymentsByInvoice returns an invoice's payment history
func (s *LedgerService) ListPaymentsByInvoice(ctx context.Context, invoiceID int) ([]*models.Payment, error) {
	return s.Payments.ListByInvoice(ctx, invoiceID)
}

func validateCosts(req *models.CreateInvoiceRequest) error {
	if req.LaborCost.IsNegative() || req.MaterialCost.IsNegative() || req.AdditionalCosts.IsNegative() {
		return fmt.Errorf("%w: cost components must not be negative", models.ErrValidation)
	}
	if req.TaxRate.IsNegative() || req.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: tax rate must be between 0 and 100", models.ErrValidation)
	}
	return nil
}
