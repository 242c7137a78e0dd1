package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"construct-backend/internal/models"
	"construct-backend/internal/services"
	"construct-backend/pkg/utils"
)

type PaymentHandler struct {
	Ledger *services.LedgerService
}

func NewPaymentHandler(ledger *services.LedgerService) *PaymentHandler {
	return &PaymentHandler{Ledger: ledger}
}

// RecordPayment applies a payment to an invoice. The response carries
// both the payment and the invoice it settled against, so the caller
// sees the resulting status and balance without a second round trip.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	payment, invoice, err := h.Ledger.RecordPayment(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"payment": payment,
		"invoice": invoice,
	})
}

// GetPayment retrieves a payment by ID
func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}
	payment, err := h.Ledger.GetPayment(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payment)
}

// ListPayments returns all payments, optionally filtered by ?invoice_id=
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	if invoiceStr := r.URL.Query().Get("invoice_id"); invoiceStr != "" {
		invoiceID, err := strconv.Atoi(invoiceStr)
		if err != nil {
			utils.ErrorMessage(w, http.StatusBadRequest, "Invalid invoice_id")
			return
		}
		payments, err := h.Ledger.ListPaymentsByInvoice(r.Context(), invoiceID)
		if err != nil {
			utils.Error(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, payments)
		return
	}

	payments, err := h.Ledger.ListPayments(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, payments)
}

// DeletePayment removes a mis-recorded payment. Refused once the
// parent invoice is PAID.
func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid payment ID")
		return
	}
	if err := h.Ledger.DeletePayment(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusNoContent, nil)
}
