package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"construct-backend/internal/models"
)

// DashboardRepository serves the read-only aggregates behind the
// dashboard, charts and reports. Nothing in here mutates state except
// the overdue sweep, which lives on InvoiceRepository.
type DashboardRepository struct {
	DB *pgxpool.Pool
}

func NewDashboardRepository(db *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{DB: db}
}

// LabeledValue is one label/value pair of an aggregate result, ordered
// as the query returned it.
type LabeledValue struct {
	Label string
	Value float64
}

// MonthlyValue is an aggregate bucketed by calendar month
type MonthlyValue struct {
	Month time.Time
	Value float64
}

// invoiceTotalExpr derives the invoice total in SQL the same way
// Invoice.TotalAmount does in Go: (labor + material + additional) * (1 + tax/100).
const invoiceTotalExpr = `(labor_cost + material_cost + additional_costs) * (1 + tax_rate / 100)`

// CountJobsByStatus returns job counts keyed by status
func (r *DashboardRepository) CountJobsByStatus(ctx context.Context) (map[string]int, error) {
	return r.countByStatus(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
}

// CountEstimatesByStatus returns estimate counts keyed by status
func (r *DashboardRepository) CountEstimatesByStatus(ctx context.Context) (map[string]int, error) {
	return r.countByStatus(ctx, `SELECT status, COUNT(*) FROM estimates GROUP BY status`)
}

// CountInvoicesByStatus returns invoice counts keyed by status
func (r *DashboardRepository) CountInvoicesByStatus(ctx context.Context) (map[string]int, error) {
	return r.countByStatus(ctx, `SELECT status, COUNT(*) FROM invoices GROUP BY status`)
}

func (r *DashboardRepository) countByStatus(ctx context.Context, query string) (map[string]int, error) {
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// TotalRevenue sums the totals of PAID invoices
func (r *DashboardRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(`+invoiceTotalExpr+`), 0) FROM invoices WHERE status = 'PAID'`).Scan(&total)
	return total, err
}

// PendingRevenue sums the outstanding balance of unsettled invoices
func (r *DashboardRepository) PendingRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(`+invoiceTotalExpr+` - amount_paid), 0)
		 FROM invoices WHERE status NOT IN ('PAID', 'CANCELLED')`).Scan(&total)
	return total, err
}

// WorkerCounts returns total and currently available workers
func (r *DashboardRepository) WorkerCounts(ctx context.Context) (models.WorkerCounts, error) {
	var wc models.WorkerCounts
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE is_available) FROM workers`).Scan(&wc.Total, &wc.Available)
	return wc, err
}

// MaterialSpend sums quantity * unit_cost across all material orders
func (r *DashboardRepository) MaterialSpend(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity * unit_cost), 0) FROM materials`).Scan(&total)
	return total, err
}

// AverageJobDurationDays averages actual duration over completed jobs
// that have both actual dates. Zero when no job qualifies.
func (r *DashboardRepository) AverageJobDurationDays(ctx context.Context) (int, error) {
	var days *float64
	err := r.DB.QueryRow(ctx,
		`SELECT AVG(actual_end_date - actual_start_date)
		 FROM jobs
		 WHERE status = 'COMPLETED' AND actual_start_date IS NOT NULL AND actual_end_date IS NOT NULL`).Scan(&days)
	if err != nil {
		return 0, err
	}
	if days == nil {
		return 0, nil
	}
	return int(*days + 0.5), nil
}

// CountPastDueInvoices counts invoices whose due date has passed,
// whether or not the overdue sweep has flipped them yet. The sweep only
// runs on the overdue listing, so counting flipped rows alone would
// undercount between sweeps.
func (r *DashboardRepository) CountPastDueInvoices(ctx context.Context, today time.Time) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM invoices
		 WHERE status IN ('SENT', 'OVERDUE') AND due_date < $1`, today).Scan(&n)
	return n, err
}

// RecentActivity merges the most recently updated jobs and invoices
// into one feed, newest first, capped at limit.
func (r *DashboardRepository) RecentActivity(ctx context.Context, limit int) ([]models.ActivityItem, error) {
	rows, err := r.DB.Query(ctx,
		`(SELECT 'job', job_title, status, updated_at FROM jobs ORDER BY updated_at DESC LIMIT 5)
		 UNION ALL
		 (SELECT 'invoice', invoice_number, status, updated_at FROM invoices ORDER BY updated_at DESC LIMIT 5)
		 ORDER BY 4 DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ActivityItem
	for rows.Next() {
		var it models.ActivityItem
		if err := rows.Scan(&it.Type, &it.Title, &it.Status, &it.Timestamp); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// RevenueTrend buckets payment amounts by calendar month for the last
// `months` months, oldest first. Months with no payments are absent.
func (r *DashboardRepository) RevenueTrend(ctx context.Context, months int) ([]MonthlyValue, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT date_trunc('month', payment_date)::date, SUM(amount)::float8
		 FROM payments
		 WHERE payment_date >= date_trunc('month', CURRENT_DATE) - ($1 - 1) * INTERVAL '1 month'
		 GROUP BY 1 ORDER BY 1`, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMonthly(rows)
}

// MonthlyCompletions counts jobs completed per calendar month for the
// last `months` months, oldest first.
func (r *DashboardRepository) MonthlyCompletions(ctx context.Context, months int) ([]MonthlyValue, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT date_trunc('month', actual_end_date)::date, COUNT(*)::float8
		 FROM jobs
		 WHERE status = 'COMPLETED' AND actual_end_date IS NOT NULL
		   AND actual_end_date >= date_trunc('month', CURRENT_DATE) - ($1 - 1) * INTERVAL '1 month'
		 GROUP BY 1 ORDER BY 1`, months)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMonthly(rows)
}

// WorkerTypeDistribution counts workers per trade
func (r *DashboardRepository) WorkerTypeDistribution(ctx context.Context) ([]LabeledValue, error) {
	return r.labeled(ctx,
		`SELECT worker_type, COUNT(*)::float8 FROM workers GROUP BY worker_type ORDER BY worker_type`)
}

// WorkerCostBreakdown averages the hourly rate per trade
func (r *DashboardRepository) WorkerCostBreakdown(ctx context.Context) ([]LabeledValue, error) {
	return r.labeled(ctx,
		`SELECT worker_type, AVG(hourly_rate)::float8 FROM workers GROUP BY worker_type ORDER BY worker_type`)
}

// WorkerProductivity counts completed jobs per worker, busiest first
func (r *DashboardRepository) WorkerProductivity(ctx context.Context) ([]LabeledValue, error) {
	return r.labeled(ctx,
		`SELECT w.first_name || ' ' || w.last_name, COUNT(*)::float8
		 FROM workers w
		 JOIN job_workers jw ON jw.worker_id = w.id
		 JOIN jobs j ON j.id = jw.job_id AND j.status = 'COMPLETED'
		 GROUP BY w.id, w.first_name, w.last_name
		 ORDER BY 2 DESC, 1`)
}

// TopMaterialSpend aggregates spend per material name, largest first
func (r *DashboardRepository) TopMaterialSpend(ctx context.Context, limit int) ([]LabeledValue, error) {
	if limit < 1 {
		limit = 1
	}
	return r.labeled(ctx,
		`SELECT name, SUM(quantity * unit_cost)::float8
		 FROM materials GROUP BY name ORDER BY 2 DESC LIMIT $1`, limit)
}

// CustomerCompletionRates returns per-customer completion percentages
// for customers with at least one job.
func (r *DashboardRepository) CustomerCompletionRates(ctx context.Context) ([]LabeledValue, error) {
	return r.labeled(ctx,
		`SELECT c.first_name || ' ' || c.last_name,
		        COUNT(*) FILTER (WHERE j.status = 'COMPLETED')::float8 / COUNT(*)::float8 * 100
		 FROM customers c
		 JOIN jobs j ON j.customer_id = c.id
		 GROUP BY c.id, c.first_name, c.last_name
		 ORDER BY 2 DESC, 1`)
}

// CountCustomers returns the total customer count
func (r *DashboardRepository) CountCustomers(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

// CustomerReports returns the per-customer report rows: job counts and
// total spent (payments received on their invoices).
func (r *DashboardRepository) CustomerReports(ctx context.Context) ([]*models.CustomerReport, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT c.id, c.first_name || ' ' || c.last_name, c.email,
		        (SELECT COUNT(*) FROM jobs j WHERE j.customer_id = c.id),
		        (SELECT COUNT(*) FROM jobs j WHERE j.customer_id = c.id AND j.status = 'COMPLETED'),
		        COALESCE((SELECT SUM(i.amount_paid) FROM invoices i WHERE i.customer_id = c.id), 0)
		 FROM customers c
		 ORDER BY 6 DESC, 2`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.CustomerReport
	for rows.Next() {
		var cr models.CustomerReport
		err := rows.Scan(&cr.ID, &cr.Name, &cr.Email, &cr.TotalJobs, &cr.CompletedJobs, &cr.TotalSpent)
		if err != nil {
			return nil, err
		}
		reports = append(reports, &cr)
	}
	return reports, rows.Err()
}

func (r *DashboardRepository) labeled(ctx context.Context, query string, args ...any) ([]LabeledValue, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LabeledValue
	for rows.Next() {
		var lv LabeledValue
		if err := rows.Scan(&lv.Label, &lv.Value); err != nil {
			return nil, err
		}
		out = append(out, lv)
	}
	return out, rows.Err()
}

func collectMonthly(rows pgx.Rows) ([]MonthlyValue, error) {
	var out []MonthlyValue
	for rows.Next() {
		var mv MonthlyValue
		if err := rows.Scan(&mv.Month, &mv.Value); err != nil {
			return nil, err
		}
		out = append(out, mv)
	}
	return out, rows.Err()
}
