package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construct-backend/internal/models"
	"construct-backend/internal/repositories"
)

// fakeDashboardStore returns canned aggregates; the zero value mimics an
// empty database.
type fakeDashboardStore struct {
	jobCounts       map[string]int
	estimateCounts  map[string]int
	invoiceCounts   map[string]int
	totalRevenue    decimal.Decimal
	pendingRevenue  decimal.Decimal
	workerCounts    models.WorkerCounts
	materialSpend   decimal.Decimal
	avgDuration     int
	pastDue         int
	activity        []models.ActivityItem
	revenueTrend    []repositories.MonthlyValue
	completions     []repositories.MonthlyValue
	workerTypes     []repositories.LabeledValue
	workerCosts     []repositories.LabeledValue
	productivity    []repositories.LabeledValue
	topMaterials    []repositories.LabeledValue
	completionRates []repositories.LabeledValue
	customers       int
	customerReports []*models.CustomerReport
}

func (f *fakeDashboardStore) CountJobsByStatus(ctx context.Context) (map[string]int, error) {
	if f.jobCounts == nil {
		return map[string]int{}, nil
	}
	return f.jobCounts, nil
}

func (f *fakeDashboardStore) CountEstimatesByStatus(ctx context.Context) (map[string]int, error) {
	if f.estimateCounts == nil {
		return map[string]int{}, nil
	}
	return f.estimateCounts, nil
}

func (f *fakeDashboardStore) CountInvoicesByStatus(ctx context.Context) (map[string]int, error) {
	if f.invoiceCounts == nil {
		return map[string]int{}, nil
	}
	return f.invoiceCounts, nil
}

func (f *fakeDashboardStore) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	return f.totalRevenue, nil
}

func (f *fakeDashboardStore) PendingRevenue(ctx context.Context) (decimal.Decimal, error) {
	return f.pendingRevenue, nil
}

func (f *fakeDashboardStore) WorkerCounts(ctx context.Context) (models.WorkerCounts, error) {
	return f.workerCounts, nil
}

func (f *fakeDashboardStore) MaterialSpend(ctx context.Context) (decimal.Decimal, error) {
	return f.materialSpend, nil
}

func (f *fakeDashboardStore) AverageJobDurationDays(ctx context.Context) (int, error) {
	return f.avgDuration, nil
}

func (f *fakeDashboardStore) CountPastDueInvoices(ctx context.Context, today time.Time) (int, error) {
	return f.pastDue, nil
}

func (f *fakeDashboardStore) RecentActivity(ctx context.Context, limit int) ([]models.ActivityItem, error) {
	if len(f.activity) > limit {
		return f.activity[:limit], nil
	}
	return f.activity, nil
}

func (f *fakeDashboardStore) RevenueTrend(ctx context.Context, months int) ([]repositories.MonthlyValue, error) {
	return f.revenueTrend, nil
}

func (f *fakeDashboardStore) MonthlyCompletions(ctx context.Context, months int) ([]repositories.MonthlyValue, error) {
	return f.completions, nil
}

func (f *fakeDashboardStore) WorkerTypeDistribution(ctx context.Context) ([]repositories.LabeledValue, error) {
	return f.workerTypes, nil
}

func (f *fakeDashboardStore) WorkerCostBreakdown(ctx context.Context) ([]repositories.LabeledValue, error) {
	return f.workerCosts, nil
}

func (f *fakeDashboardStore) WorkerProductivity(ctx context.Context) ([]repositories.LabeledValue, error) {
	return f.productivity, nil
}

func (f *fakeDashboardStore) TopMaterialSpend(ctx context.Context, limit int) ([]repositories.LabeledValue, error) {
	return f.topMaterials, nil
}

func (f *fakeDashboardStore) CustomerCompletionRates(ctx context.Context) ([]repositories.LabeledValue, error) {
	return f.completionRates, nil
}

func (f *fakeDashboardStore) CountCustomers(ctx context.Context) (int, error) {
	return f.customers, nil
}

func (f *fakeDashboardStore) CustomerReports(ctx context.Context) ([]*models.CustomerReport, error) {
	return f.customerReports, nil
}

func TestStatsAssemblesSnapshot(t *testing.T) {
	store := &fakeDashboardStore{
		jobCounts: map[string]int{
			models.JobStatusScheduled:  2,
			models.JobStatusConfirmed:  1,
			models.JobStatusInProgress: 3,
			models.JobStatusCompleted:  5,
		},
		estimateCounts: map[string]int{
			models.EstimateStatusPending:  4,
			models.EstimateStatusAccepted: 2,
		},
		invoiceCounts: map[string]int{
			models.InvoiceStatusPaid:    6,
			models.InvoiceStatusOverdue: 1,
		},
		totalRevenue:   decimal.NewFromInt(120000),
		pendingRevenue: decimal.NewFromInt(34800),
		workerCounts:   models.WorkerCounts{Total: 8, Available: 6},
		materialSpend:  decimal.NewFromInt(42000),
		avgDuration:    12,
		pastDue:        1,
		activity: []models.ActivityItem{
			{Type: "job", Title: "Kitchen remodel", Status: "COMPLETED", Timestamp: time.Now()},
		},
	}
	svc := NewDashboardService(store)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, stats.ActiveJobs)
	assert.Equal(t, 3, stats.ScheduledJobs, "scheduled counts confirmed jobs too")
	assert.Equal(t, 5, stats.CompletedJobs)
	assert.Equal(t, 4, stats.PendingEstimates)
	assert.Equal(t, 2, stats.AcceptedEstimates)
	assert.Equal(t, 6, stats.PaidInvoices)
	assert.Equal(t, 1, stats.OverdueInvoices)
	assert.InDelta(t, 75.0, stats.WorkerAvailability, 0.01)
	assert.Equal(t, 12, stats.AverageJobDuration)
	assert.InDelta(t, 45.45, stats.CustomerSatisfaction, 0.01, "5 completed of 11 jobs")
	assert.Len(t, stats.RecentActivity, 1)
}

func TestStatsSatisfactionIsCompletedShareOfAllJobs(t *testing.T) {
	store := &fakeDashboardStore{
		jobCounts: map[string]int{
			models.JobStatusScheduled:  2,
			models.JobStatusInProgress: 3,
			models.JobStatusCompleted:  5,
		},
	}
	svc := NewDashboardService(store)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 50.0, stats.CustomerSatisfaction, 0.01)
}

func TestStatsCountPastDueSentInvoicesAsOverdue(t *testing.T) {
	// One SENT invoice is past due but the sweep has not flipped it yet;
	// the dashboard must still count it alongside the flipped one.
	store := &fakeDashboardStore{
		invoiceCounts: map[string]int{
			models.InvoiceStatusSent:    3,
			models.InvoiceStatusOverdue: 1,
		},
		pastDue: 2,
	}
	svc := NewDashboardService(store)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.OverdueInvoices)
}

func TestStatsEmptySystemYieldsZeros(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardStore{})

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.ActiveJobs)
	assert.Zero(t, stats.WorkerAvailability)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Empty(t, stats.RecentActivity)
}

func TestChartsSkipEmptySeries(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardStore{})

	charts, err := svc.Charts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, charts)
}

func TestChartsBuildPopulatedSeries(t *testing.T) {
	store := &fakeDashboardStore{
		jobCounts: map[string]int{
			models.JobStatusInProgress: 2,
			models.JobStatusCompleted:  3,
		},
		workerTypes: []repositories.LabeledValue{
			{Label: models.WorkerTypeElectrician, Value: 3},
			{Label: models.WorkerTypePlumber, Value: 2},
		},
		revenueTrend: []repositories.MonthlyValue{
			{Month: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), Value: 15000},
			{Month: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Value: 17400},
		},
	}
	svc := NewDashboardService(store)

	charts, err := svc.Charts(context.Background())
	require.NoError(t, err)
	require.Len(t, charts, 3)

	byKey := make(map[string]*models.ChartSeries)
	for _, c := range charts {
		byKey[c.Key] = c
	}

	jobChart := byKey["job_status"]
	require.NotNil(t, jobChart)
	assert.Equal(t, []string{"In Progress", "Completed"}, jobChart.Labels)
	assert.Equal(t, []float64{2, 3}, jobChart.Values)

	typeChart := byKey["worker_types"]
	require.NotNil(t, typeChart)
	assert.Equal(t, []string{"Electrician", "Plumber"}, typeChart.Labels, "codes mapped to display names")

	trend := byKey["revenue_trend"]
	require.NotNil(t, trend)
	assert.Equal(t, []string{"Feb 2025", "Mar 2025"}, trend.Labels)
	assert.Equal(t, []float64{15000, 17400}, trend.Values)
}

func TestSummaryReport(t *testing.T) {
	store := &fakeDashboardStore{
		customers: 9,
		jobCounts: map[string]int{
			models.JobStatusInProgress: 2,
			models.JobStatusCompleted:  7,
		},
		invoiceCounts: map[string]int{
			models.InvoiceStatusSent:    3,
			models.InvoiceStatusOverdue: 1,
			models.InvoiceStatusPaid:    5,
		},
		totalRevenue: decimal.NewFromInt(250000),
	}
	svc := NewDashboardService(store)

	report, err := svc.SummaryReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9, report.TotalCustomers)
	assert.Equal(t, 9, report.TotalJobs)
	assert.Equal(t, 2, report.ActiveJobs)
	assert.Equal(t, 4, report.PendingInvoices)
	assert.True(t, report.TotalRevenue.Equal(decimal.NewFromInt(250000)))
}

func TestFinancialReport(t *testing.T) {
	store := &fakeDashboardStore{
		totalRevenue:   decimal.NewFromInt(100000),
		pendingRevenue: decimal.NewFromInt(20000),
		invoiceCounts: map[string]int{
			models.InvoiceStatusPaid:      4,
			models.InvoiceStatusSent:      2,
			models.InvoiceStatusOverdue:   1,
			models.InvoiceStatusCancelled: 1,
		},
	}
	svc := NewDashboardService(store)

	report, err := svc.FinancialReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, report.TotalInvoices)
	assert.Equal(t, 4, report.PaidInvoices)
	assert.Equal(t, 3, report.UnpaidInvoices)
}

func TestReportDispatcher(t *testing.T) {
	svc := NewDashboardService(&fakeDashboardStore{
		customerReports: []*models.CustomerReport{{ID: 1, Name: "Jane Mwangi"}},
	})
	ctx := context.Background()

	report, err := svc.Report(ctx, "summary")
	require.NoError(t, err)
	assert.IsType(t, &models.SummaryReport{}, report)

	report, err = svc.Report(ctx, "")
	require.NoError(t, err)
	assert.IsType(t, &models.SummaryReport{}, report)

	report, err = svc.Report(ctx, "customer")
	require.NoError(t, err)
	assert.IsType(t, []*models.CustomerReport{}, report)

	report, err = svc.Report(ctx, "financial")
	require.NoError(t, err)
	assert.IsType(t, &models.FinancialReport{}, report)

	_, err = svc.Report(ctx, "payroll")
	assert.ErrorIs(t, err, models.ErrValidation)
}
