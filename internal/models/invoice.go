package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice statuses. The only transitions are
// DRAFT -> SENT -> {PAID, OVERDUE, CANCELLED} and OVERDUE -> PAID;
// PAID and CANCELLED are terminal. OVERDUE is only ever set by the
// reporting sweep, never by the ledger directly.
const (
	InvoiceStatusDraft     = "DRAFT"
	InvoiceStatusSent      = "SENT"
	InvoiceStatusPaid      = "PAID"
	InvoiceStatusOverdue   = "OVERDUE"
	InvoiceStatusCancelled = "CANCELLED"
)

// InvoiceStatusLabels maps invoice status codes to display names
var InvoiceStatusLabels = map[string]string{
	InvoiceStatusDraft:     "Draft",
	InvoiceStatusSent:      "Sent",
	InvoiceStatusPaid:      "Paid",
	InvoiceStatusOverdue:   "Overdue",
	InvoiceStatusCancelled: "Cancelled",
}

// DueDateDays is the default payment term applied when no due date is given.
const DueDateDays = 30

// Invoice represents an invoice raised against a completed job. The
// monetary fields below are the stored inputs; subtotal, tax, total and
// balance are always derived through the accessor methods so they cannot
// drift from the cost components.
type Invoice struct {
	ID              int             `json:"id"`
	JobID           int             `json:"job_id"`
	CustomerID      int             `json:"customer_id"`
	CustomerName    string          `json:"customer_name,omitempty"`
	InvoiceNumber   string          `json:"invoice_number"`
	InvoiceDate     time.Time       `json:"invoice_date"`
	DueDate         time.Time       `json:"due_date"`
	LaborCost       decimal.Decimal `json:"labor_cost"`
	MaterialCost    decimal.Decimal `json:"material_cost"`
	AdditionalCosts decimal.Decimal `json:"additional_costs"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Status          string          `json:"status"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Subtotal returns labor + material + additional costs, before tax.
func (i *Invoice) Subtotal() decimal.Decimal {
	return i.LaborCost.Add(i.MaterialCost).Add(i.AdditionalCosts)
}

// TaxAmount returns subtotal * tax_rate / 100.
func (i *Invoice) TaxAmount() decimal.Decimal {
	return i.Subtotal().Mul(i.TaxRate).Div(decimal.NewFromInt(100))
}

// TotalAmount returns the invoice total including tax.
func (i *Invoice) TotalAmount() decimal.Decimal {
	return i.Subtotal().Add(i.TaxAmount())
}

// BalanceDue returns total - amount paid. Negative only when an invoice
// has been overpaid, which is carried as a customer credit.
func (i *Invoice) BalanceDue() decimal.Decimal {
	return i.TotalAmount().Sub(i.AmountPaid)
}

// IsOverdue reports whether the invoice is past due. Only SENT and
// OVERDUE invoices can be overdue; drafts and settled invoices never are.
func (i *Invoice) IsOverdue(today time.Time) bool {
	if i.Status != InvoiceStatusSent && i.Status != InvoiceStatusOverdue {
		return false
	}
	return today.After(i.DueDate)
}

// InvoiceWithPayments includes the payment history for detail views
type InvoiceWithPayments struct {
	Invoice
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxAmount  decimal.Decimal `json:"tax_amount"`
	Total      decimal.Decimal `json:"total_amount"`
	BalanceDue decimal.Decimal `json:"balance_due"`
	Payments   []*Payment      `json:"payments"`
}

// CreateInvoiceRequest represents the request to raise an invoice for a job
type CreateInvoiceRequest struct {
	JobID           int             `json:"job_id"`
	LaborCost       decimal.Decimal `json:"labor_cost"`
	MaterialCost    decimal.Decimal `json:"material_cost"`
	AdditionalCosts decimal.Decimal `json:"additional_costs"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	DueDate         *time.Time      `json:"due_date"`
	Notes           string          `json:"notes"`
}
