package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"construct-backend/internal/models"
	"construct-backend/internal/repositories"
	"construct-backend/pkg/utils"
)

type CustomerHandler struct {
	Repo         *repositories.CustomerRepository
	EstimateRepo *repositories.EstimateRepository
	JobRepo      *repositories.JobRepository
	InvoiceRepo  *repositories.InvoiceRepository
}

func NewCustomerHandler(
	repo *repositories.CustomerRepository,
	estimateRepo *repositories.EstimateRepository,
	jobRepo *repositories.JobRepository,
	invoiceRepo *repositories.InvoiceRepository,
) *CustomerHandler {
	return &CustomerHandler{Repo: repo, EstimateRepo: estimateRepo, JobRepo: jobRepo, InvoiceRepo: invoiceRepo}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		utils.ErrorMessage(w, http.StatusBadRequest, "first_name, last_name and email are required")
		return
	}

	customer, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, customer)
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	customer, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

// ListCustomers returns all customers, or a search when ?q= is given
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	var (
		customers []*models.Customer
		err       error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		customers, err = h.Repo.Search(r.Context(), q)
	} else {
		customers, err = h.Repo.List(r.Context())
	}
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customers)
}

// UpdateCustomer modifies an existing customer
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	var req models.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	customer, err := h.Repo.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, customer)
}

// DeleteCustomer removes a customer
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusNoContent, nil)
}

// GetCustomerEstimates returns a customer's estimates
func (h *CustomerHandler) GetCustomerEstimates(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	estimates, err := h.EstimateRepo.ListByCustomer(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, estimates)
}

// GetCustomerJobs returns a customer's jobs
func (h *CustomerHandler) GetCustomerJobs(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	jobs, err := h.JobRepo.ListByCustomer(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, jobs)
}

// GetCustomerInvoices returns a customer's invoices
func (h *CustomerHandler) GetCustomerInvoices(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid customer ID")
		return
	}
	invoices, err := h.InvoiceRepo.ListByCustomer(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, invoices)
}

func pathID(r *http.Request, key string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[key])
}
