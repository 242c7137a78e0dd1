package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newInvoiceFixture() *Invoice {
	return &Invoice{
		ID:              1,
		JobID:           1,
		InvoiceNumber:   "INV-00001",
		InvoiceDate:     time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		DueDate:         time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		LaborCost:       decimal.NewFromInt(10000),
		MaterialCost:    decimal.NewFromInt(5000),
		AdditionalCosts: decimal.Zero,
		TaxRate:         decimal.NewFromInt(16),
		Status:          InvoiceStatusSent,
		AmountPaid:      decimal.Zero,
	}
}

func TestInvoiceDerivedAmounts(t *testing.T) {
	inv := newInvoiceFixture()

	assert.True(t, inv.Subtotal().Equal(decimal.NewFromInt(15000)), "subtotal = %s", inv.Subtotal())
	assert.True(t, inv.TaxAmount().Equal(decimal.NewFromInt(2400)), "tax = %s", inv.TaxAmount())
	assert.True(t, inv.TotalAmount().Equal(decimal.NewFromInt(17400)), "total = %s", inv.TotalAmount())
	assert.True(t, inv.BalanceDue().Equal(decimal.NewFromInt(17400)), "balance = %s", inv.BalanceDue())
}

func TestInvoiceBalanceAfterPartialPayment(t *testing.T) {
	inv := newInvoiceFixture()
	inv.AmountPaid = decimal.NewFromInt(5000)

	assert.True(t, inv.BalanceDue().Equal(decimal.NewFromInt(12400)), "balance = %s", inv.BalanceDue())
}

func TestInvoiceBalanceWhenOverpaid(t *testing.T) {
	inv := newInvoiceFixture()
	inv.AmountPaid = decimal.NewFromInt(20000)

	// Overpayment is carried as a negative balance (customer credit)
	assert.True(t, inv.BalanceDue().Equal(decimal.NewFromInt(-2600)), "balance = %s", inv.BalanceDue())
}

func TestInvoiceZeroTaxRate(t *testing.T) {
	inv := newInvoiceFixture()
	inv.TaxRate = decimal.Zero

	assert.True(t, inv.TaxAmount().IsZero())
	assert.True(t, inv.TotalAmount().Equal(decimal.NewFromInt(15000)))
}

func TestInvoiceIsOverdue(t *testing.T) {
	due := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	before := due.AddDate(0, 0, -1)
	after := due.AddDate(0, 0, 1)

	tests := []struct {
		name   string
		status string
		today  time.Time
		want   bool
	}{
		{"sent before due date", InvoiceStatusSent, before, false},
		{"sent on due date", InvoiceStatusSent, due, false},
		{"sent past due date", InvoiceStatusSent, after, true},
		{"overdue past due date", InvoiceStatusOverdue, after, true},
		{"draft past due date", InvoiceStatusDraft, after, false},
		{"paid past due date", InvoiceStatusPaid, after, false},
		{"cancelled past due date", InvoiceStatusCancelled, after, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := newInvoiceFixture()
			inv.Status = tt.status
			inv.DueDate = due
			assert.Equal(t, tt.want, inv.IsOverdue(tt.today))
		})
	}
}

func TestValidPaymentMethod(t *testing.T) {
	assert.True(t, ValidPaymentMethod(PaymentMethodCash))
	assert.True(t, ValidPaymentMethod(PaymentMethodBankTransfer))
	assert.False(t, ValidPaymentMethod("BARTER"))
	assert.False(t, ValidPaymentMethod(""))
}

func TestMaterialTotalCost(t *testing.T) {
	m := &Material{
		Quantity: decimal.NewFromFloat(2.5),
		UnitCost: decimal.NewFromInt(400),
	}
	assert.True(t, m.TotalCost().Equal(decimal.NewFromInt(1000)), "total = %s", m.TotalCost())
}
