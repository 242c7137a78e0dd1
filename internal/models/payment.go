package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods
const (
	PaymentMethodCash         = "CASH"
	PaymentMethodCheque       = "CHEQUE"
	PaymentMethodBankTransfer = "BANK_TRANSFER"
	PaymentMethodCreditCard   = "CREDIT_CARD"
	PaymentMethodDebitCard    = "DEBIT_CARD"
	PaymentMethodMobileMoney  = "MOBILE_MONEY"
)

// PaymentMethodLabels maps payment method codes to display names
var PaymentMethodLabels = map[string]string{
	PaymentMethodCash:         "Cash",
	PaymentMethodCheque:       "Cheque",
	PaymentMethodBankTransfer: "Bank Transfer",
	PaymentMethodCreditCard:   "Credit Card",
	PaymentMethodDebitCard:    "Debit Card",
	PaymentMethodMobileMoney:  "Mobile Money",
}

// ValidPaymentMethod reports whether method is one of the accepted codes
func ValidPaymentMethod(method string) bool {
	_, ok := PaymentMethodLabels[method]
	return ok
}

// Payment represents a payment recorded against an invoice. Payments are
// append-only events; the parent invoice's amount_paid is recomputed from
// the full payment set whenever one is applied.
type Payment struct {
	ID                   int             `json:"id"`
	InvoiceID            int             `json:"invoice_id"`
	InvoiceNumber        string          `json:"invoice_number,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	PaymentMethod        string          `json:"payment_method"`
	PaymentDate          time.Time       `json:"payment_date"`
	TransactionReference string          `json:"transaction_reference"`
	ReceivedBy           string          `json:"received_by"`
	Notes                string          `json:"notes"`
	CreatedAt            time.Time       `json:"created_at"`
}

// CreatePaymentRequest represents the request to record a payment
type CreatePaymentRequest struct {
	InvoiceID            int             `json:"invoice_id"`
	Amount               decimal.Decimal `json:"amount"`
	PaymentMethod        string          `json:"payment_method"`
	PaymentDate          *time.Time      `json:"payment_date"`
	TransactionReference string          `json:"transaction_reference"`
	ReceivedBy           string          `json:"received_by"`
	Notes                string          `json:"notes"`
}
