package services

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construct-backend/internal/models"
)

func reportFixture() (*models.DashboardStats, []*models.ChartSeries) {
	stats := &models.DashboardStats{
		ActiveJobs:         2,
		ScheduledJobs:      3,
		CompletedJobs:      10,
		PendingEstimates:   1,
		PaidInvoices:       8,
		TotalRevenue:       decimal.NewFromInt(250000),
		PendingRevenue:     decimal.NewFromInt(34800),
		WorkerAvailability: 75,
		MaterialSpend:      decimal.NewFromInt(42000),
		RecentActivity: []models.ActivityItem{
			{Type: "job", Title: "Kitchen remodel", Status: "COMPLETED",
				Timestamp: time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)},
		},
	}
	charts := []*models.ChartSeries{
		{Key: "job_status", Title: "Job Status Distribution", Kind: "pie",
			Labels: []string{"In Progress", "Completed"}, Values: []float64{2, 10}},
		{Key: "revenue_trend", Title: "Revenue Trend (6 Months)", Kind: "line",
			Labels: []string{"Feb 2025", "Mar 2025"}, Values: []float64{15000, 17400}},
	}
	return stats, charts
}

func TestBuildPDFReport(t *testing.T) {
	svc := NewReportService()
	stats, charts := reportFixture()

	out, err := svc.BuildPDFReport(stats, charts, nil)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestBuildPDFReportRejectsBadImage(t *testing.T) {
	svc := NewReportService()
	stats, charts := reportFixture()

	_, err := svc.BuildPDFReport(stats, charts, map[string]string{
		"job_status": "not base64!!!",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job_status")
}

func TestBuildCSVWorkbook(t *testing.T) {
	svc := NewReportService()
	stats, charts := reportFixture()

	out, err := svc.BuildCSVWorkbook(stats, charts)
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)

	sheets := make(map[string][][]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		rows, err := csv.NewReader(rc).ReadAll()
		rc.Close()
		require.NoError(t, err)
		sheets[f.Name] = rows
	}

	require.Contains(t, sheets, "summary.csv")
	require.Contains(t, sheets, "recent_activity.csv")
	require.Contains(t, sheets, "job_status.csv")
	require.Contains(t, sheets, "revenue_trend.csv")

	summary := sheets["summary.csv"]
	assert.Equal(t, []string{"Metric", "Value"}, summary[0])
	assert.Contains(t, summary, []string{"Total Revenue", "250000.00"})
	assert.Contains(t, summary, []string{"Active Jobs", "2"})

	activity := sheets["recent_activity.csv"]
	require.Len(t, activity, 2)
	assert.Equal(t, "Kitchen remodel", activity[1][1])

	trend := sheets["revenue_trend.csv"]
	assert.Equal(t, []string{"Feb 2025", "15000.00"}, trend[1])
	assert.Equal(t, []string{"Mar 2025", "17400.00"}, trend[2])
}

func TestGenerateInvoicePDF(t *testing.T) {
	svc := NewReportService()
	invoice := &models.InvoiceWithPayments{
		Invoice: models.Invoice{
			InvoiceNumber: "INV-00042",
			InvoiceDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			DueDate:       time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			LaborCost:     decimal.NewFromInt(10000),
			MaterialCost:  decimal.NewFromInt(5000),
			TaxRate:       decimal.NewFromInt(16),
			Status:        models.InvoiceStatusSent,
			AmountPaid:    decimal.NewFromInt(7400),
		},
		Subtotal:   decimal.NewFromInt(15000),
		TaxAmount:  decimal.NewFromInt(2400),
		Total:      decimal.NewFromInt(17400),
		BalanceDue: decimal.NewFromInt(10000),
		Payments: []*models.Payment{
			{Amount: decimal.NewFromInt(7400), PaymentMethod: models.PaymentMethodBankTransfer,
				PaymentDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), TransactionReference: "TXN-1"},
		},
	}
	customer := &models.Customer{
		FirstName: "Jane",
		LastName:  "Mwangi",
		Email:     "jane@example.com",
		Phone:     "0712345678",
		City:      "Nairobi",
	}

	out, err := svc.GenerateInvoicePDF(invoice, customer)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
