package services

import (
	"context"
	"fmt"
	"time"

	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construct-backend/internal/models"
	"construct-backend/internal/timeutil"
)

// fakeLedgerStore is an in-memory InvoiceStore and PaymentStore mirroring
// the repository's transactional behavior, so the state machine can be
// exercised without a database.
type fakeLedgerStore struct {
	invoices map[int]*models.Invoice
	payments map[int]*models.Payment
	nextInv  int
	nextPay  int
	seq      int
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{
		invoices: make(map[int]*models.Invoice),
		payments: make(map[int]*models.Payment),
		nextInv:  1,
		nextPay:  1,
	}
}

func (f *fakeLedgerStore) Create(ctx context.Context, req *models.CreateInvoiceRequest, invoiceDate, dueDate time.Time) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.JobID == req.JobID {
			return nil, models.ErrInvoiceExists
		}
	}
	f.seq++
	inv := &models.Invoice{
		ID:              f.nextInv,
		JobID:           req.JobID,
		CustomerID:      1,
		InvoiceNumber:   fmt.Sprintf("INV-%05d", f.seq),
		InvoiceDate:     invoiceDate,
		DueDate:         dueDate,
		LaborCost:       req.LaborCost,
		MaterialCost:    req.MaterialCost,
		AdditionalCosts: req.AdditionalCosts,
		TaxRate:         req.TaxRate,
		Status:          models.InvoiceStatusDraft,
		AmountPaid:      decimal.Zero,
		Notes:           req.Notes,
	}
	f.invoices[inv.ID] = inv
	f.nextInv++
	return inv, nil
}

func (f *fakeLedgerStore) Get(ctx context.Context, id int) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeLedgerStore) GetByNumber(ctx context.Context, number string) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.InvoiceNumber == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeLedgerStore) GetByJob(ctx context.Context, jobID int) (*models.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.JobID == jobID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeLedgerStore) GetWithPayments(ctx context.Context, id int) (*models.InvoiceWithPayments, error) {
	inv, err := f.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &models.InvoiceWithPayments{
		Invoice:    *inv,
		Subtotal:   inv.Subtotal(),
		TaxAmount:  inv.TaxAmount(),
		Total:      inv.TotalAmount(),
		BalanceDue: inv.BalanceDue(),
	}
	for _, p := range f.payments {
		if p.InvoiceID == id {
			cp := *p
			out.Payments = append(out.Payments, &cp)
		}
	}
	return out, nil
}

func (f *fakeLedgerStore) List(ctx context.Context) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		cp := *inv
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeLedgerStore) ListByStatus(ctx context.Context, statuses ...string) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		for _, s := range statuses {
			if inv.Status == s {
				cp := *inv
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeLedgerStore) ListByCustomer(ctx context.Context, customerID int) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		if inv.CustomerID == customerID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLedgerStore) Update(ctx context.Context, id int, req *models.CreateInvoiceRequest, dueDate time.Time) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if inv.Status != models.InvoiceStatusDraft {
		return nil, models.ErrConflict
	}
	inv.LaborCost = req.LaborCost
	inv.MaterialCost = req.MaterialCost
	inv.AdditionalCosts = req.AdditionalCosts
	inv.TaxRate = req.TaxRate
	inv.DueDate = dueDate
	inv.Notes = req.Notes
	cp := *inv
	return &cp, nil
}

func (f *fakeLedgerStore) UpdateStatus(ctx context.Context, id int, status string) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	inv.Status = status
	cp := *inv
	return &cp, nil
}

func (f *fakeLedgerStore) SweepOverdue(ctx context.Context, today time.Time) (int, error) {
	flipped := 0
	for _, inv := range f.invoices {
		if inv.Status == models.InvoiceStatusSent && inv.DueDate.Before(today) {
			inv.Status = models.InvoiceStatusOverdue
			flipped++
		}
	}
	return flipped, nil
}

func (f *fakeLedgerStore) ApplyPayment(ctx context.Context, req *models.CreatePaymentRequest, paymentDate time.Time) (*models.Payment, *models.Invoice, error) {
	inv, ok := f.invoices[req.InvoiceID]
	if !ok {
		return nil, nil, models.ErrNotFound
	}
	if inv.Status == models.InvoiceStatusCancelled {
		return nil, nil, fmt.Errorf("%w: invoice is %s", models.ErrConflict, inv.Status)
	}

	if req.TransactionReference != "" {
		for _, p := range f.payments {
			if p.InvoiceID == req.InvoiceID && p.TransactionReference == req.TransactionReference {
				cp, ci := *p, *inv
				return &cp, &ci, nil
			}
		}
	}

	payment := &models.Payment{
		ID:                   f.nextPay,
		InvoiceID:            req.InvoiceID,
		InvoiceNumber:        inv.InvoiceNumber,
		Amount:               req.Amount,
		PaymentMethod:        req.PaymentMethod,
		PaymentDate:          paymentDate,
		TransactionReference: req.TransactionReference,
		ReceivedBy:           req.ReceivedBy,
		Notes:                req.Notes,
	}
	f.payments[payment.ID] = payment
	f.nextPay++

	paid := decimal.Zero
	for _, p := range f.payments {
		if p.InvoiceID == req.InvoiceID {
			paid = paid.Add(p.Amount)
		}
	}
	inv.AmountPaid = paid
	if paid.GreaterThanOrEqual(inv.TotalAmount()) {
		inv.Status = models.InvoiceStatusPaid
	}

	cp, ci := *payment, *inv
	return &cp, &ci, nil
}

func (f *fakeLedgerStore) DeletePayment(ctx context.Context, paymentID int) error {
	p, ok := f.payments[paymentID]
	if !ok {
		return models.ErrNotFound
	}
	inv := f.invoices[p.InvoiceID]
	if inv.Status == models.InvoiceStatusPaid {
		return fmt.Errorf("%w: invoice %s is settled", models.ErrConflict, inv.InvoiceNumber)
	}
	delete(f.payments, paymentID)

	paid := decimal.Zero
	for _, q := range f.payments {
		if q.InvoiceID == p.InvoiceID {
			paid = paid.Add(q.Amount)
		}
	}
	inv.AmountPaid = paid
	return nil
}

func (f *fakeLedgerStore) ListByInvoice(ctx context.Context, invoiceID int) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLedgerStore) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	return f.listAllPayments()
}

func (f *fakeLedgerStore) listAllPayments() ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

// fakePaymentReader adapts fakeLedgerStore to the PaymentStore interface
type fakePaymentReader struct{ store *fakeLedgerStore }

func (f *fakePaymentReader) Get(ctx context.Context, id int) (*models.Payment, error) {
	p, ok := f.store.payments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentReader) List(ctx context.Context) ([]*models.Payment, error) {
	return f.store.listAllPayments()
}

func (f *fakePaymentReader) ListByInvoice(ctx context.Context, invoiceID int) ([]*models.Payment, error) {
	return f.store.ListByInvoice(ctx, invoiceID)
}

func newTestLedger() (*LedgerService, *fakeLedgerStore) {
	store := newFakeLedgerStore()
	return NewLedgerService(store, &fakePaymentReader{store: store}), store
}

func frozenClock(t *testing.T, at time.Time) {
	t.Helper()
	timeutil.SetNow(func() time.Time { return at })
	t.Cleanup(func() { timeutil.SetNow(nil) })
}

func invoiceRequest(jobID int) *models.CreateInvoiceRequest {
	return &models.CreateInvoiceRequest{
		JobID:        jobID,
		LaborCost:    decimal.NewFromInt(10000),
		MaterialCost: decimal.NewFromInt(5000),
		TaxRate:      decimal.NewFromInt(16),
	}
}

func TestCreateInvoiceAssignsSequentialNumbers(t *testing.T) {
	frozenClock(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ledger, _ := newTestLedger()
	ctx := context.Background()

	first, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)
	second, err := ledger.CreateInvoice(ctx, invoiceRequest(2))
	require.NoError(t, err)

	assert.Equal(t, "INV-00001", first.InvoiceNumber)
	assert.Equal(t, "INV-00002", second.InvoiceNumber)
	assert.Equal(t, models.InvoiceStatusDraft, first.Status)
}

func TestCreateInvoiceDefaultsDueDate(t *testing.T) {
	frozenClock(t, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ledger, _ := newTestLedger()

	inv, err := ledger.CreateInvoice(context.Background(), invoiceRequest(1))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), inv.InvoiceDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), inv.DueDate)
}

func TestCreateInvoiceRejectsSecondInvoiceForJob(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	_, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)

	_, err = ledger.CreateInvoice(ctx, invoiceRequest(1))
	assert.ErrorIs(t, err, models.ErrInvoiceExists)
}

func TestCreateInvoiceValidation(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.CreateInvoiceRequest
	}{
		{"missing job", &models.CreateInvoiceRequest{}},
		{"negative labor cost", &models.CreateInvoiceRequest{JobID: 1, LaborCost: decimal.NewFromInt(-1)}},
		{"negative material cost", &models.CreateInvoiceRequest{JobID: 1, MaterialCost: decimal.NewFromInt(-1)}},
		{"tax rate over 100", &models.CreateInvoiceRequest{JobID: 1, TaxRate: decimal.NewFromInt(101)}},
		{"negative tax rate", &models.CreateInvoiceRequest{JobID: 1, TaxRate: decimal.NewFromInt(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.CreateInvoice(ctx, tt.req)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestMarkSentTransitions(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	inv, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)

	sent, err := ledger.MarkSent(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, sent.Status)

	// Sending twice is a conflict
	_, err = ledger.MarkSent(ctx, inv.ID)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestCancelInvoiceGuards(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	inv, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)

	cancelled, err := ledger.CancelInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusCancelled, cancelled.Status)

	// Terminal states cannot be cancelled again
	_, err = ledger.CancelInvoice(ctx, inv.ID)
	assert.ErrorIs(t, err, models.ErrConflict)

	paid, err := ledger.CreateInvoice(ctx, invoiceRequest(2))
	require.NoError(t, err)
	store.invoices[paid.ID].Status = models.InvoiceStatusPaid
	_, err = ledger.CancelInvoice(ctx, paid.ID)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestUpdateInvoiceOnlyDraft(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	inv, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)

	req := invoiceRequest(1)
	req.LaborCost = decimal.NewFromInt(12000)
	updated, err := ledger.UpdateInvoice(ctx, inv.ID, req)
	require.NoError(t, err)
	assert.True(t, updated.LaborCost.Equal(decimal.NewFromInt(12000)))

	_, err = ledger.MarkSent(ctx, inv.ID)
	require.NoError(t, err)

	_, err = ledger.UpdateInvoice(ctx, inv.ID, req)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestRecordPaymentFlipsToPaid(t *testing.T) {
	frozenClock(t, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	ledger, _ := newTestLedger()
	ctx := context.Background()

	inv, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)
	_, err = ledger.MarkSent(ctx, inv.ID)
	require.NoError(t, err)

	// Partial payment leaves the invoice SENT
	payment, updated, err := ledger.RecordPayment(ctx, &models.CreatePaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(7400),
		PaymentMethod: models.PaymentMethodBankTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusSent, updated.Status)
	assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(7400)))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), payment.PaymentDate)

	// Second payment covers the 17400 total
	_, updated, err = ledger.RecordPayment(ctx, &models.CreatePaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(10000),
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, updated.Status)
	assert.True(t, updated.BalanceDue().IsZero())
}

func TestRecordPaymentOverpaymentBecomesCredit(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	inv, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)
	_, err = ledger.MarkSent(ctx, inv.ID)
	require.NoError(t, err)

	_, updated, err := ledger.RecordPayment(ctx, &models.CreatePaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(20000),
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, updated.Status)
	assert.True(t, updated.BalanceDue().Equal(decimal.NewFromInt(-2600)), "balance = %s", updated.BalanceDue())
}

func TestRecordPaymentOnDraftKeepsDraftStatus(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	draft, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)

	// A partial payment on a draft is recorded but never advances the status.
	_, updated, err := ledger.RecordPayment(ctx, &models.CreatePaymentRequest{
		InvoiceID:     draft.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusDraft, updated.Status)
	assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(100)))
}

func TestRecordPaymentRejectsCancelled(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	draft, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)
	_, err = ledger.CancelInvoice(ctx, draft.ID)
	require.NoError(t, err)

	_, _, err = ledger.RecordPayment(ctx, &models.CreatePaymentRequest{
		InvoiceID:     draft.ID,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: models.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestRecordPaymentValidation(t *testing.T) {
	ledger, _ := newTestLedger()
	ctx := context.Background()

	tests := []struct {
		name string
		req  *models.CreatePaymentRequest
	}{
		{"missing invoice", &models.CreatePaymentRequest{Amount: decimal.NewFromInt(100), PaymentMethod: models.PaymentMethodCash}},
		{"zero amount", &models.CreatePaymentRequest{InvoiceID: 1, PaymentMethod: models.PaymentMethodCash}},
		{"negative amount", &models.CreatePaymentRequest{InvoiceID: 1, Amount: decimal.NewFromInt(-5), PaymentMethod: models.PaymentMethodCash}},
		{"unknown method", &models.CreatePaymentRequest{InvoiceID: 1, Amount: decimal.NewFromInt(5), PaymentMethod: "BARTER"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ledger.RecordPayment(ctx, tt.req)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}
}

func TestRecordPaymentIdempotentReference(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	inv, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)
	_, err = ledger.MarkSent(ctx, inv.ID)
	require.NoError(t, err)

	req := &models.CreatePaymentRequest{
		InvoiceID:            inv.ID,
		Amount:               decimal.NewFromInt(5000),
		PaymentMethod:        models.PaymentMethodBankTransfer,
		TransactionReference: "TXN-42",
	}
	first, _, err := ledger.RecordPayment(ctx, req)
	require.NoError(t, err)

	// Replaying the same reference returns the original payment
	second, updated, err := ledger.RecordPayment(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, updated.AmountPaid.Equal(decimal.NewFromInt(5000)))
	assert.Len(t, store.payments, 1)
}

func TestOverdueSweepIsIdempotent(t *testing.T) {
	frozenClock(t, time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC))
	ledger, store := newTestLedger()
	ctx := context.Background()

	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	inv, err := ledger.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		JobID:     1,
		LaborCost: decimal.NewFromInt(1000),
		DueDate:   &due,
	})
	require.NoError(t, err)
	_, err = ledger.MarkSent(ctx, inv.ID)
	require.NoError(t, err)

	// Draft invoices never flip, even past due
	draftDue := due
	_, err = ledger.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		JobID:     2,
		LaborCost: decimal.NewFromInt(1000),
		DueDate:   &draftDue,
	})
	require.NoError(t, err)

	flipped, err := ledger.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, flipped)
	assert.Equal(t, models.InvoiceStatusOverdue, store.invoices[inv.ID].Status)

	// Second sweep finds nothing to do
	flipped, err = ledger.SweepOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, flipped)
}

func TestOverduePaymentSettlesInvoice(t *testing.T) {
	frozenClock(t, time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC))
	ledger, _ := newTestLedger()
	ctx := context.Background()

	due := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	inv, err := ledger.CreateInvoice(ctx, &models.CreateInvoiceRequest{
		JobID:     1,
		LaborCost: decimal.NewFromInt(1000),
		DueDate:   &due,
	})
	require.NoError(t, err)
	_, err = ledger.MarkSent(ctx, inv.ID)
	require.NoError(t, err)

	overdue, err := ledger.ListOverdueInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, overdue, 1)

	_, updated, err := ledger.RecordPayment(ctx, &models.CreatePaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(1000),
		PaymentMethod: models.PaymentMethodCheque,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, updated.Status)
}

func TestDeletePaymentRecomputesAndGuardsPaid(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	inv, err := ledger.CreateInvoice(ctx, invoiceRequest(1))
	require.NoError(t, err)
	_, err = ledger.MarkSent(ctx, inv.ID)
	require.NoError(t, err)

	partial, _, err := ledger.RecordPayment(ctx, &models.CreatePaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(5000),
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)

	require.NoError(t, ledger.DeletePayment(ctx, partial.ID))
	assert.True(t, store.invoices[inv.ID].AmountPaid.IsZero())

	// Settle the invoice, then refuse deletion
	settling, _, err := ledger.RecordPayment(ctx, &models.CreatePaymentRequest{
		InvoiceID:     inv.ID,
		Amount:        decimal.NewFromInt(17400),
		PaymentMethod: models.PaymentMethodCash,
	})
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusPaid, store.invoices[inv.ID].Status)

	err = ledger.DeletePayment(ctx, settling.ID)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestListUnpaidInvoices(t *testing.T) {
	ledger, store := newTestLedger()
	ctx := context.Background()

	for job := 1; job <= 4; job++ {
		inv, err := ledger.CreateInvoice(ctx, invoiceRequest(job))
		require.NoError(t, err)
		switch job {
		case 1:
			store.invoices[inv.ID].Status = models.InvoiceStatusSent
		case 2:
			store.invoices[inv.ID].Status = models.InvoiceStatusOverdue
		case 3:
			store.invoices[inv.ID].Status = models.InvoiceStatusPaid
		}
	}

	unpaid, err := ledger.ListUnpaidInvoices(ctx)
	require.NoError(t, err)
	assert.Len(t, unpaid, 2)
}
