package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the point-in-time aggregate served to the dashboard.
// All numbers are derived; nothing here is a source of truth.
type DashboardStats struct {
	ActiveJobs           int             `json:"active_jobs"`
	ScheduledJobs        int             `json:"scheduled_jobs"`
	CompletedJobs        int             `json:"completed_jobs"`
	PendingEstimates     int             `json:"pending_estimates"`
	AcceptedEstimates    int             `json:"accepted_estimates"`
	PaidInvoices         int             `json:"paid_invoices"`
	OverdueInvoices      int             `json:"overdue_invoices"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	PendingRevenue       decimal.Decimal `json:"pending_revenue"`
	WorkerAvailability   float64         `json:"worker_availability"`
	WorkerCounts         WorkerCounts    `json:"worker_counts"`
	MaterialSpend        decimal.Decimal `json:"material_spend"`
	AverageJobDuration   int             `json:"average_job_duration"`
	CustomerSatisfaction float64         `json:"customer_satisfaction"`
	RecentActivity       []ActivityItem  `json:"recent_activity"`
	LastUpdated          time.Time       `json:"last_updated"`
}

// WorkerCounts breaks down the workforce for the availability ratio
type WorkerCounts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

// ActivityItem is one row of the merged recent-activity feed
type ActivityItem struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ChartSeries is a labeled data series for one dashboard chart. Rendering
// is left to the consumer; builders that find no data return nil instead
// of an empty series.
type ChartSeries struct {
	Key    string       `json:"key"`
	Title  string       `json:"title"`
	Kind   string       `json:"kind"` // pie, bar, line, hbar
	Labels []string     `json:"labels"`
	Values []float64    `json:"values"`
	Extra  []ChartExtra `json:"extra,omitempty"`
}

// ChartExtra carries a secondary series for combo charts
type ChartExtra struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// SummaryReport mirrors the original high-level system summary
type SummaryReport struct {
	TotalCustomers  int             `json:"total_customers"`
	TotalJobs       int             `json:"total_jobs"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	ActiveJobs      int             `json:"active_jobs"`
	PendingInvoices int             `json:"pending_invoices"`
}

// CustomerReport is one row of the per-customer report
type CustomerReport struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	TotalJobs     int             `json:"total_jobs"`
	CompletedJobs int             `json:"completed_jobs"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
}

// FinancialReport summarises invoice money state
type FinancialReport struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	PendingRevenue decimal.Decimal `json:"pending_revenue"`
	TotalInvoices  int             `json:"total_invoices"`
	PaidInvoices   int             `json:"paid_invoices"`
	UnpaidInvoices int             `json:"unpaid_invoices"`
}
