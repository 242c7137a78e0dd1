package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"construct-backend/internal/handlers"
)

func NewRouter(
	customerHandler *handlers.CustomerHandler,
	workerHandler *handlers.WorkerHandler,
	estimateHandler *handlers.EstimateHandler,
	jobHandler *handlers.JobHandler,
	supplierHandler *handlers.SupplierHandler,
	materialHandler *handlers.MaterialHandler,
	invoiceHandler *handlers.InvoiceHandler,
	paymentHandler *handlers.PaymentHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/search", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")
	customersAPI.HandleFunc("/{id}/estimates", customerHandler.GetCustomerEstimates).Methods("GET")
	customersAPI.HandleFunc("/{id}/jobs", customerHandler.GetCustomerJobs).Methods("GET")
	customersAPI.HandleFunc("/{id}/invoices", customerHandler.GetCustomerInvoices).Methods("GET")

	// API routes - Workers
	workersAPI := r.PathPrefix("/api/workers").Subrouter()
	workersAPI.HandleFunc("", workerHandler.ListWorkers).Methods("GET")
	workersAPI.HandleFunc("", workerHandler.CreateWorker).Methods("POST")
	workersAPI.HandleFunc("/available", workerHandler.ListAvailableWorkers).Methods("GET")
	workersAPI.HandleFunc("/{id}", workerHandler.GetWorker).Methods("GET")
	workersAPI.HandleFunc("/{id}", workerHandler.UpdateWorker).Methods("PUT")
	workersAPI.HandleFunc("/{id}", workerHandler.DeleteWorker).Methods("DELETE")

	// API routes - Estimates
	estimatesAPI := r.PathPrefix("/api/estimates").Subrouter()
	estimatesAPI.HandleFunc("", estimateHandler.ListEstimates).Methods("GET")
	estimatesAPI.HandleFunc("", estimateHandler.CreateEstimate).Methods("POST")
	estimatesAPI.HandleFunc("/pending_visits", estimateHandler.ListPendingVisits).Methods("GET")
	estimatesAPI.HandleFunc("/accepted", estimateHandler.ListAccepted).Methods("GET")
	estimatesAPI.HandleFunc("/{id}", estimateHandler.GetEstimate).Methods("GET")
	estimatesAPI.HandleFunc("/{id}/status", estimateHandler.UpdateStatus).Methods("POST")
	estimatesAPI.HandleFunc("/{id}", estimateHandler.DeleteEstimate).Methods("DELETE")

	// API routes - Jobs (completion raises the draft invoice)
	jobsAPI := r.PathPrefix("/api/jobs").Subrouter()
	jobsAPI.HandleFunc("", jobHandler.ListJobs).Methods("GET")
	jobsAPI.HandleFunc("", jobHandler.CreateJob).Methods("POST")
	jobsAPI.HandleFunc("/upcoming", jobHandler.ListUpcoming).Methods("GET")
	jobsAPI.HandleFunc("/in_progress", jobHandler.ListInProgress).Methods("GET")
	jobsAPI.HandleFunc("/needs_confirmation", jobHandler.ListNeedingConfirmation).Methods("GET")
	jobsAPI.HandleFunc("/{id}", jobHandler.GetJob).Methods("GET")
	jobsAPI.HandleFunc("/{id}/confirm", jobHandler.ConfirmJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}/start", jobHandler.StartJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}/complete", jobHandler.CompleteJob).Methods("POST")
	jobsAPI.HandleFunc("/{id}", jobHandler.DeleteJob).Methods("DELETE")

	// API routes - Suppliers
	suppliersAPI := r.PathPrefix("/api/suppliers").Subrouter()
	suppliersAPI.HandleFunc("", supplierHandler.ListSuppliers).Methods("GET")
	suppliersAPI.HandleFunc("", supplierHandler.CreateSupplier).Methods("POST")
	suppliersAPI.HandleFunc("/{id}", supplierHandler.GetSupplier).Methods("GET")
	suppliersAPI.HandleFunc("/{id}", supplierHandler.UpdateSupplier).Methods("PUT")
	suppliersAPI.HandleFunc("/{id}/active", supplierHandler.SetSupplierActive).Methods("PATCH")
	suppliersAPI.HandleFunc("/{id}", supplierHandler.DeleteSupplier).Methods("DELETE")

	// API routes - Materials
	materialsAPI := r.PathPrefix("/api/materials").Subrouter()
	materialsAPI.HandleFunc("", materialHandler.ListMaterials).Methods("GET")
	materialsAPI.HandleFunc("", materialHandler.CreateMaterial).Methods("POST")
	materialsAPI.HandleFunc("/pending_delivery", materialHandler.ListPendingDelivery).Methods("GET")
	materialsAPI.HandleFunc("/top_by_cost", materialHandler.TopByCost).Methods("GET")
	materialsAPI.HandleFunc("/{id}", materialHandler.GetMaterial).Methods("GET")
	materialsAPI.HandleFunc("/{id}", materialHandler.UpdateMaterial).Methods("PUT")
	materialsAPI.HandleFunc("/{id}/order", materialHandler.MarkOrdered).Methods("POST")
	materialsAPI.HandleFunc("/{id}/deliver", materialHandler.MarkDelivered).Methods("POST")
	materialsAPI.HandleFunc("/{id}", materialHandler.DeleteMaterial).Methods("DELETE")

	// API routes - Invoices
	invoicesAPI := r.PathPrefix("/api/invoices").Subrouter()
	invoicesAPI.HandleFunc("", invoiceHandler.ListInvoices).Methods("GET")
	invoicesAPI.HandleFunc("", invoiceHandler.CreateInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/overdue", invoiceHandler.ListOverdue).Methods("GET")
	invoicesAPI.HandleFunc("/unpaid", invoiceHandler.ListUnpaid).Methods("GET")
	invoicesAPI.HandleFunc("/number/{number}", invoiceHandler.GetInvoiceByNumber).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.GetInvoice).Methods("GET")
	invoicesAPI.HandleFunc("/{id}", invoiceHandler.UpdateInvoice).Methods("PUT")
	invoicesAPI.HandleFunc("/{id}/send", invoiceHandler.MarkSent).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/cancel", invoiceHandler.CancelInvoice).Methods("POST")
	invoicesAPI.HandleFunc("/{id}/pdf", invoiceHandler.GetInvoicePDF).Methods("GET")

	// API routes - Payments
	paymentsAPI := r.PathPrefix("/api/payments").Subrouter()
	paymentsAPI.HandleFunc("", paymentHandler.ListPayments).Methods("GET")
	paymentsAPI.HandleFunc("", paymentHandler.RecordPayment).Methods("POST")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.GetPayment).Methods("GET")
	paymentsAPI.HandleFunc("/{id}", paymentHandler.DeletePayment).Methods("DELETE")

	// API routes - Dashboard
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.HandleFunc("/stats", dashboardHandler.GetStats).Methods("GET")
	dashboardAPI.HandleFunc("/charts", dashboardHandler.GetCharts).Methods("GET")
	dashboardAPI.HandleFunc("/export", dashboardHandler.Export).Methods("POST")
	dashboardAPI.HandleFunc("/reports", dashboardHandler.GetReports).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")
	r.HandleFunc("/ready", healthHandler.Ready).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
