package services

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"

	"construct-backend/internal/models"
	"construct-backend/internal/timeutil"
)

// ExportRequest is the body of the dashboard export endpoint. Charts are
// rendered client-side; the caller may attach the rendered PNGs, keyed
// by chart key, for embedding in the PDF.
type ExportRequest struct {
	Format string            `json:"format"`
	Images map[string]string `json:"images,omitempty"`
}

// ReportService builds the PDF and CSV exports. It holds no state; all
// inputs come from the dashboard and ledger services.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildPDFReport renders the dashboard snapshot as a PDF: a summary page
// followed by one page per chart with the caller-supplied PNG embedded.
// Charts without an image get their data as a table instead.
func (s *ReportService) BuildPDFReport(stats *models.DashboardStats, charts []*models.ChartSeries, images map[string]string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Construction Business Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Business summary box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Business Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Active Jobs: %d", stats.ActiveJobs), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Scheduled Jobs: %d", stats.ScheduledJobs), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Completed Jobs: %d", stats.CompletedJobs), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Pending Estimates: %d", stats.PendingEstimates), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Paid Invoices: %d", stats.PaidInvoices), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Overdue Invoices: %d", stats.OverdueInvoices), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Total Revenue: %s", stats.TotalRevenue.StringFixed(2)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Pending Revenue: %s", stats.PendingRevenue.StringFixed(2)), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Worker Availability: %.1f%%", stats.WorkerAvailability), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Material Spend: %s", stats.MaterialSpend.StringFixed(2)), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Recent activity
	if len(stats.RecentActivity) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Recent Activity", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(30, 7, "Type", "1", 0, "C", true, 0, "")
		pdf.CellFormat(90, 7, "Title", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Status", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "When", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, item := range stats.RecentActivity {
			pdf.CellFormat(30, 6, item.Type, "1", 0, "C", false, 0, "")
			pdf.CellFormat(90, 6, item.Title, "1", 0, "L", false, 0, "")
			pdf.CellFormat(35, 6, item.Status, "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, item.Timestamp.Format("02-Jan-2006"), "1", 1, "C", false, 0, "")
		}
	}

	for _, chart := range charts {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(190, 10, chart.Title, "", 1, "C", false, 0, "")
		pdf.Ln(3)

		if encoded, ok := images[chart.Key]; ok {
			raw, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return nil, fmt.Errorf("chart image %s: %w", chart.Key, err)
			}
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(chart.Key, opts, bytes.NewReader(raw))
			pdf.ImageOptions(chart.Key, 20, pdf.GetY(), 170, 0, false, opts, 0, "")
		} else {
			writeChartTable(pdf, chart)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("pdf generation failed: %v", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeChartTable(pdf *gofpdf.Fpdf, chart *models.ChartSeries) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(120, 7, "Label", "1", 0, "C", true, 0, "")
	pdf.CellFormat(70, 7, "Value", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, label := range chart.Labels {
		pdf.CellFormat(120, 6, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 6, strconv.FormatFloat(chart.Values[i], 'f', 2, 64), "1", 1, "R", false, 0, "")
	}
}

// BuildCSVWorkbook packs the dashboard snapshot into a zip of CSV
// sheets: a summary sheet, the recent-activity feed and one sheet per
// chart series.
func (s *ReportService) BuildCSVWorkbook(stats *models.DashboardStats, charts []*models.ChartSeries) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	summary := [][]string{
		{"Metric", "Value"},
		{"Active Jobs", strconv.Itoa(stats.ActiveJobs)},
		{"Scheduled Jobs", strconv.Itoa(stats.ScheduledJobs)},
		{"Completed Jobs", strconv.Itoa(stats.CompletedJobs)},
		{"Pending Estimates", strconv.Itoa(stats.PendingEstimates)},
		{"Accepted Estimates", strconv.Itoa(stats.AcceptedEstimates)},
		{"Paid Invoices", strconv.Itoa(stats.PaidInvoices)},
		{"Overdue Invoices", strconv.Itoa(stats.OverdueInvoices)},
		{"Total Revenue", stats.TotalRevenue.StringFixed(2)},
		{"Pending Revenue", stats.PendingRevenue.StringFixed(2)},
		{"Worker Availability %", strconv.FormatFloat(stats.WorkerAvailability, 'f', 1, 64)},
		{"Material Spend", stats.MaterialSpend.StringFixed(2)},
		{"Average Job Duration (days)", strconv.Itoa(stats.AverageJobDuration)},
		{"Customer Satisfaction %", strconv.FormatFloat(stats.CustomerSatisfaction, 'f', 1, 64)},
	}
	if err := writeCSVSheet(zw, "summary.csv", summary); err != nil {
		return nil, err
	}

	activity := [][]string{{"Type", "Title", "Status", "Timestamp"}}
	for _, item := range stats.RecentActivity {
		activity = append(activity, []string{
			item.Type, item.Title, item.Status, item.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}
	if err := writeCSVSheet(zw, "recent_activity.csv", activity); err != nil {
		return nil, err
	}

	for _, chart := range charts {
		rows := [][]string{{"Label", "Value"}}
		for i, label := range chart.Labels {
			rows = append(rows, []string{label, strconv.FormatFloat(chart.Values[i], 'f', 2, 64)})
		}
		if err := writeCSVSheet(zw, chart.Key+".csv", rows); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCSVSheet(zw *zip.Writer, name string, rows [][]string) error {
	f, err := zw.Create(name)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// GenerateInvoicePDF renders a printable invoice with the cost
// breakdown, payment history and outstanding balance.
func (s *ReportService) GenerateInvoicePDF(invoice *models.InvoiceWithPayments, customer *models.Customer) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Invoice %s", invoice.InvoiceNumber), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Issued: %s    Due: %s",
		invoice.InvoiceDate.Format("02-Jan-2006"), invoice.DueDate.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Status: %s", models.InvoiceStatusLabels[invoice.Status]), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Customer box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Billed To", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", customer.FullName()), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Email: %s", customer.Email), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s", customer.Phone), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("City: %s", customer.City), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Cost breakdown
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Cost Breakdown", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(130, 7, "Labor", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, invoice.LaborCost.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(130, 7, "Materials", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, invoice.MaterialCost.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(130, 7, "Additional Costs", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, invoice.AdditionalCosts.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(130, 7, "Subtotal", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, invoice.Subtotal.StringFixed(2), "1", 1, "R", false, 0, "")
	pdf.CellFormat(130, 7, fmt.Sprintf("Tax (%s%%)", invoice.TaxRate.StringFixed(2)), "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, invoice.TaxAmount.StringFixed(2), "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(130, 8, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(60, 8, invoice.Total.StringFixed(2), "1", 1, "R", true, 0, "")
	pdf.Ln(5)

	// Payment history
	if len(invoice.Payments) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(190, 8, "Payments Received", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(35, 7, "Date", "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 7, "Method", "1", 0, "C", true, 0, "")
		pdf.CellFormat(60, 7, "Reference", "1", 0, "C", true, 0, "")
		pdf.CellFormat(55, 7, "Amount", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, p := range invoice.Payments {
			pdf.CellFormat(35, 6, p.PaymentDate.Format("02-Jan-2006"), "1", 0, "C", false, 0, "")
			pdf.CellFormat(40, 6, models.PaymentMethodLabels[p.PaymentMethod], "1", 0, "L", false, 0, "")
			pdf.CellFormat(60, 6, p.TransactionReference, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, p.Amount.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Balance banner
	pdf.SetFont("Arial", "B", 14)
	balanceText := fmt.Sprintf("Balance Due: %s", invoice.BalanceDue.StringFixed(2))
	if invoice.BalanceDue.Sign() < 0 {
		balanceText = fmt.Sprintf("Credit Balance: %s", invoice.BalanceDue.Neg().StringFixed(2))
		pdf.SetFillColor(220, 245, 220)
	} else if invoice.BalanceDue.Sign() == 0 {
		balanceText = "Paid in Full"
		pdf.SetFillColor(220, 245, 220)
	} else {
		pdf.SetFillColor(250, 230, 220)
	}
	pdf.CellFormat(190, 10, balanceText, "1", 1, "C", true, 0, "")

	if pdf.Err() {
		return nil, fmt.Errorf("pdf generation failed: %v", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
