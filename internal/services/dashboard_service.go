package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"construct-backend/internal/cache"
	"construct-backend/internal/models"
	"construct-backend/internal/repositories"
	"construct-backend/internal/timeutil"
)

// DashboardStore is the aggregate query surface behind the dashboard
type DashboardStore interface {
	CountJobsByStatus(ctx context.Context) (map[string]int, error)
	CountEstimatesByStatus(ctx context.Context) (map[string]int, error)
	CountInvoicesByStatus(ctx context.Context) (map[string]int, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	PendingRevenue(ctx context.Context) (decimal.Decimal, error)
	WorkerCounts(ctx context.Context) (models.WorkerCounts, error)
	MaterialSpend(ctx context.Context) (decimal.Decimal, error)
	AverageJobDurationDays(ctx context.Context) (int, error)
	CountPastDueInvoices(ctx context.Context, today time.Time) (int, error)
	RecentActivity(ctx context.Context, limit int) ([]models.ActivityItem, error)
	RevenueTrend(ctx context.Context, months int) ([]repositories.MonthlyValue, error)
	MonthlyCompletions(ctx context.Context, months int) ([]repositories.MonthlyValue, error)
	WorkerTypeDistribution(ctx context.Context) ([]repositories.LabeledValue, error)
	WorkerCostBreakdown(ctx context.Context) ([]repositories.LabeledValue, error)
	WorkerProductivity(ctx context.Context) ([]repositories.LabeledValue, error)
	TopMaterialSpend(ctx context.Context, limit int) ([]repositories.LabeledValue, error)
	CustomerCompletionRates(ctx context.Context) ([]repositories.LabeledValue, error)
	CountCustomers(ctx context.Context) (int, error)
	CustomerReports(ctx context.Context) ([]*models.CustomerReport, error)
}

// DashboardService aggregates the read-only numbers behind the
// dashboard, charts and reports. Stats snapshots are cached for five
// minutes; ledger and job writes invalidate the cache.
type DashboardService struct {
	Store DashboardStore
}

func NewDashboardService(store DashboardStore) *DashboardService {
	return &DashboardService{Store: store}
}

const recentActivityLimit = 6

// Stats assembles the dashboard snapshot. Empty tables produce zeros,
// never errors.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	if cached, ok := cache.GetDashboardStats(ctx); ok {
		return cached, nil
	}

	jobCounts, err := s.Store.CountJobsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("job counts: %w", err)
	}
	estimateCounts, err := s.Store.CountEstimatesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("estimate counts: %w", err)
	}
	invoiceCounts, err := s.Store.CountInvoicesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("invoice counts: %w", err)
	}
	totalRevenue, err := s.Store.TotalRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("total revenue: %w", err)
	}
	pendingRevenue, err := s.Store.PendingRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("pending revenue: %w", err)
	}
	workerCounts, err := s.Store.WorkerCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("worker counts: %w", err)
	}
	materialSpend, err := s.Store.MaterialSpend(ctx)
	if err != nil {
		return nil, fmt.Errorf("material spend: %w", err)
	}
	avgDuration, err := s.Store.AverageJobDurationDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("job duration: %w", err)
	}
	pastDue, err := s.Store.CountPastDueInvoices(ctx, timeutil.Today())
	if err != nil {
		return nil, fmt.Errorf("past-due invoices: %w", err)
	}
	activity, err := s.Store.RecentActivity(ctx, recentActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	availability := 0.0
	if workerCounts.Total > 0 {
		availability = float64(workerCounts.Available) / float64(workerCounts.Total) * 100
	}

	// Satisfaction is the share of all jobs that reached completion.
	totalJobs := 0
	for _, n := range jobCounts {
		totalJobs += n
	}
	satisfaction := 0.0
	if totalJobs > 0 {
		satisfaction = float64(jobCounts[models.JobStatusCompleted]) / float64(totalJobs) * 100
	}

	stats := &models.DashboardStats{
		ActiveJobs:           jobCounts[models.JobStatusInProgress],
		ScheduledJobs:        jobCounts[models.JobStatusScheduled] + jobCounts[models.JobStatusConfirmed],
		CompletedJobs:        jobCounts[models.JobStatusCompleted],
		PendingEstimates:     estimateCounts[models.EstimateStatusPending],
		AcceptedEstimates:    estimateCounts[models.EstimateStatusAccepted],
		PaidInvoices:         invoiceCounts[models.InvoiceStatusPaid],
		OverdueInvoices:      pastDue,
		TotalRevenue:         totalRevenue,
		PendingRevenue:       pendingRevenue,
		WorkerAvailability:   availability,
		WorkerCounts:         workerCounts,
		MaterialSpend:        materialSpend,
		AverageJobDuration:   avgDuration,
		CustomerSatisfaction: satisfaction,
		RecentActivity:       activity,
		LastUpdated:          timeutil.Now(),
	}

	cache.SetDashboardStats(ctx, stats)
	return stats, nil
}

// Charts builds every dashboard chart series, consulting the per-chart
// cache first. Builders that find no data contribute nothing; an empty
// system yields an empty slice.
func (s *DashboardService) Charts(ctx context.Context) ([]*models.ChartSeries, error) {
	builders := []struct {
		key   string
		build func(context.Context) (*models.ChartSeries, error)
	}{
		{"job_status", s.JobStatusChart},
		{"invoice_status", s.InvoiceStatusChart},
		{"revenue_trend", s.RevenueTrendChart},
		{"top_materials", s.TopMaterialsChart},
		{"worker_cost", s.WorkerCostChart},
		{"worker_types", s.WorkerTypeChart},
		{"worker_productivity", s.WorkerProductivityChart},
		{"monthly_completion", s.MonthlyCompletionChart},
		{"customer_completion", s.CustomerCompletionChart},
	}

	var charts []*models.ChartSeries
	for _, b := range builders {
		if series, ok := cache.GetChart(ctx, b.key); ok {
			charts = append(charts, series)
			continue
		}
		series, err := b.build(ctx)
		if err != nil {
			return nil, err
		}
		if series != nil {
			cache.SetChart(ctx, b.key, series)
			charts = append(charts, series)
		}
	}
	return charts, nil
}

// JobStatusChart is the job status distribution pie
func (s *DashboardService) JobStatusChart(ctx context.Context) (*models.ChartSeries, error) {
	counts, err := s.Store.CountJobsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	order := []string{models.JobStatusScheduled, models.JobStatusConfirmed,
		models.JobStatusInProgress, models.JobStatusCompleted, models.JobStatusCancelled}
	return buildStatusSeries("job_status", "Job Status Distribution", "pie", counts, order, models.JobStatusLabels), nil
}

// InvoiceStatusChart is the invoice status distribution pie
func (s *DashboardService) InvoiceStatusChart(ctx context.Context) (*models.ChartSeries, error) {
	counts, err := s.Store.CountInvoicesByStatus(ctx)
	if err != nil {
		return nil, err
	}
	order := []string{models.InvoiceStatusDraft, models.InvoiceStatusSent,
		models.InvoiceStatusPaid, models.InvoiceStatusOverdue, models.InvoiceStatusCancelled}
	return buildStatusSeries("invoice_status", "Invoice Status Distribution", "pie", counts, order, models.InvoiceStatusLabels), nil
}

// RevenueTrendChart is the 6-month payment revenue line
func (s *DashboardService) RevenueTrendChart(ctx context.Context) (*models.ChartSeries, error) {
	trend, err := s.Store.RevenueTrend(ctx, 6)
	if err != nil {
		return nil, err
	}
	return buildMonthlySeries("revenue_trend", "Revenue Trend (6 Months)", "line", trend), nil
}

// TopMaterialsChart ranks material spend, largest first
func (s *DashboardService) TopMaterialsChart(ctx context.Context) (*models.ChartSeries, error) {
	data, err := s.Store.TopMaterialSpend(ctx, 10)
	if err != nil {
		return nil, err
	}
	return buildLabeledSeries("top_materials", "Top Materials by Cost", "hbar", data), nil
}

// WorkerCostChart shows the average hourly rate per trade
func (s *DashboardService) WorkerCostChart(ctx context.Context) (*models.ChartSeries, error) {
	data, err := s.Store.WorkerCostBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	return buildLabeledSeries("worker_cost", "Worker Cost Breakdown", "bar", s.labelWorkerTypes(data)), nil
}

// WorkerTypeChart shows the workforce split by trade
func (s *DashboardService) WorkerTypeChart(ctx context.Context) (*models.ChartSeries, error) {
	data, err := s.Store.WorkerTypeDistribution(ctx)
	if err != nil {
		return nil, err
	}
	return buildLabeledSeries("worker_types", "Worker Type Distribution", "pie", s.labelWorkerTypes(data)), nil
}

// WorkerProductivityChart counts completed jobs per worker
func (s *DashboardService) WorkerProductivityChart(ctx context.Context) (*models.ChartSeries, error) {
	data, err := s.Store.WorkerProductivity(ctx)
	if err != nil {
		return nil, err
	}
	return buildLabeledSeries("worker_productivity", "Worker Productivity", "hbar", data), nil
}

// MonthlyCompletionChart counts jobs completed per month over a year
func (s *DashboardService) MonthlyCompletionChart(ctx context.Context) (*models.ChartSeries, error) {
	data, err := s.Store.MonthlyCompletions(ctx, 12)
	if err != nil {
		return nil, err
	}
	return buildMonthlySeries("monthly_completion", "Monthly Job Completion", "bar", data), nil
}

// CustomerCompletionChart shows per-customer completion rates
func (s *DashboardService) CustomerCompletionChart(ctx context.Context) (*models.ChartSeries, error) {
	data, err := s.Store.CustomerCompletionRates(ctx)
	if err != nil {
		return nil, err
	}
	return buildLabeledSeries("customer_completion", "Customer Completion Rates", "bar", data), nil
}

func (s *DashboardService) labelWorkerTypes(data []repositories.LabeledValue) []repositories.LabeledValue {
	out := make([]repositories.LabeledValue, len(data))
	for i, lv := range data {
		label := lv.Label
		if display, ok := models.WorkerTypeLabels[label]; ok {
			label = display
		}
		out[i] = repositories.LabeledValue{Label: label, Value: lv.Value}
	}
	return out
}

// SummaryReport returns the high-level system summary
func (s *DashboardService) SummaryReport(ctx context.Context) (*models.SummaryReport, error) {
	customers, err := s.Store.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}
	jobCounts, err := s.Store.CountJobsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	revenue, err := s.Store.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	invoiceCounts, err := s.Store.CountInvoicesByStatus(ctx)
	if err != nil {
		return nil, err
	}

	totalJobs := 0
	for _, n := range jobCounts {
		totalJobs += n
	}
	return &models.SummaryReport{
		TotalCustomers: customers,
		TotalJobs:      totalJobs,
		TotalRevenue:   revenue,
		ActiveJobs:     jobCounts[models.JobStatusInProgress],
		PendingInvoices: invoiceCounts[models.InvoiceStatusSent] +
			invoiceCounts[models.InvoiceStatusOverdue],
	}, nil
}

// CustomerReport returns per-customer job counts and spend
func (s *DashboardService) CustomerReport(ctx context.Context) ([]*models.CustomerReport, error) {
	return s.Store.CustomerReports(ctx)
}

// FinancialReport summarises invoice money state
func (s *DashboardService) FinancialReport(ctx context.Context) (*models.FinancialReport, error) {
	revenue, err := s.Store.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.Store.PendingRevenue(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.Store.CountInvoicesByStatus(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return &models.FinancialReport{
		TotalRevenue:   revenue,
		PendingRevenue: pending,
		TotalInvoices:  total,
		PaidInvoices:   counts[models.InvoiceStatusPaid],
		UnpaidInvoices: counts[models.InvoiceStatusSent] + counts[models.InvoiceStatusOverdue],
	}, nil
}

// Report dispatches the reports endpoint by type
func (s *DashboardService) Report(ctx context.Context, reportType string) (interface{}, error) {
	switch reportType {
	case "summary", "":
		return s.SummaryReport(ctx)
	case "customer":
		return s.CustomerReport(ctx)
	case "financial":
		return s.FinancialReport(ctx)
	default:
		log.Printf("[Dashboard] Unknown report type %q requested", reportType)
		return nil, fmt.Errorf("%w: unknown report type %q", models.ErrValidation, reportType)
	}
}

// buildStatusSeries turns status counts into a labeled series, keeping
// the given order and skipping absent statuses. Nil when nothing counted.
func buildStatusSeries(key, title, kind string, counts map[string]int, order []string, labels map[string]string) *models.ChartSeries {
	series := &models.ChartSeries{Key: key, Title: title, Kind: kind}
	for _, status := range order {
		n, ok := counts[status]
		if !ok || n == 0 {
			continue
		}
		label := status
		if display, ok := labels[status]; ok {
			label = display
		}
		series.Labels = append(series.Labels, label)
		series.Values = append(series.Values, float64(n))
	}
	if len(series.Labels) == 0 {
		return nil
	}
	return series
}

func buildLabeledSeries(key, title, kind string, data []repositories.LabeledValue) *models.ChartSeries {
	if len(data) == 0 {
		return nil
	}
	series := &models.ChartSeries{Key: key, Title: title, Kind: kind}
	for _, lv := range data {
		series.Labels = append(series.Labels, lv.Label)
		series.Values = append(series.Values, lv.Value)
	}
	return series
}

func buildMonthlySeries(key, title, kind string, data []repositories.MonthlyValue) *models.ChartSeries {
	if len(data) == 0 {
		return nil
	}
	series := &models.ChartSeries{Key: key, Title: title, Kind: kind}
	for _, mv := range data {
		series.Labels = append(series.Labels, mv.Month.Format("Jan 2006"))
		series.Values = append(series.Values, mv.Value)
	}
	return series
}
