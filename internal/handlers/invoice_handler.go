package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"construct-backend/internal/models"
	"construct-backend/internal/repositories"
	"construct-backend/internal/services"
	"construct-backend/pkg/utils"
)

type InvoiceHandler struct {
	Ledger       *services.LedgerService
	Reports      *services.ReportService
	CustomerRepo *repositories.CustomerRepository
}

func NewInvoiceHandler(ledger *services.LedgerService, reports *services.ReportService, customerRepo *repositories.CustomerRepository) *InvoiceHandler {
	return &InvoiceHandler{Ledger: ledger, Reports: reports, CustomerRepo: customerRepo}
}

// CreateInvoice raises a DRAFT invoice for a job
func (h *InvoiceHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	invoice, err := h.Ledger.CreateInvoice(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, invoice)
}

// GetInvoice retrieves an invoice with derived amounts and payments
func (h *InvoiceHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	invoice, err := h.Ledger.GetInvoice(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

// GetInvoiceByNumber retrieves an invoice by its formatted number
func (h *InvoiceHandler) GetInvoiceByNumber(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]
	if number == "" {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid invoice number")
		return
	}
	invoice, err := h.Ledger.GetInvoiceByNumber(r.Context(), number)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

// ListInvoices returns all invoices
func (h *InvoiceHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Ledger.ListInvoices(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

// ListOverdue sweeps past-due SENT invoices to OVERDUE, then lists them
func (h *InvoiceHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Ledger.ListOverdueInvoices(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

// ListUnpaid returns invoices awaiting payment
func (h *InvoiceHandler) ListUnpaid(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.Ledger.ListUnpaidInvoices(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

// UpdateInvoice edits the cost components of a DRAFT invoice
func (h *InvoiceHandler) UpdateInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	var req models.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	invoice, err := h.Ledger.UpdateInvoice(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

// MarkSent issues a DRAFT invoice
func (h *InvoiceHandler) MarkSent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	invoice, err := h.Ledger.MarkSent(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

// CancelInvoice voids an unsettled invoice
func (h *InvoiceHandler) CancelInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	invoice, err := h.Ledger.CancelInvoice(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoice)
}

// GetInvoicePDF renders a printable invoice PDF
func (h *InvoiceHandler) GetInvoicePDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid invoice ID")
		return
	}
	invoice, err := h.Ledger.GetInvoice(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	customer, err := h.CustomerRepo.Get(r.Context(), invoice.CustomerID)
	if err != nil {
		utils.Error(w, err)
		return
	}

	pdf, err := h.Reports.GenerateInvoicePDF(invoice, customer)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.Binary(w, "application/pdf", fmt.Sprintf("%s.pdf", invoice.InvoiceNumber), pdf)
}
