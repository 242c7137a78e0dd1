package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"construct-backend/internal/models"
)

type EstimateRepository struct {
	DB *pgxpool.Pool
}

func NewEstimateRepository(db *pgxpool.Pool) *EstimateRepository {
	return &EstimateRepository{DB: db}
}

const estimateColumns = `e.id, e.customer_id, c.first_name || ' ' || c.last_name,
	e.work_description, e.property_visit_date, e.detailed_work_description,
	e.estimated_cost, e.estimated_duration_days, e.status,
	e.estimate_sent_date, e.response_date, e.notes, e.created_at, e.updated_at`

const estimateFrom = ` FROM estimates e JOIN customers c ON e.customer_id = c.id `

func scanEstimate(row pgx.Row) (*models.Estimate, error) {
	var e models.Estimate
	err := row.Scan(&e.ID, &e.CustomerID, &e.CustomerName, &e.WorkDescription,
		&e.PropertyVisitDate, &e.DetailedWorkDescription, &e.EstimatedCost,
		&e.EstimatedDurationDays, &e.Status, &e.EstimateSentDate, &e.ResponseDate,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create inserts a new estimate in PENDING status
func (r *EstimateRepository) Create(ctx context.Context, req *models.CreateEstimateRequest) (*models.Estimate, error) {
	var id int
	err := r.DB.QueryRow(ctx,
		`INSERT INTO estimates (customer_id, work_description, estimated_cost, estimated_duration_days, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		req.CustomerID, req.WorkDescription, req.EstimatedCost, req.EstimatedDurationDays, req.Notes,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Get retrieves an estimate by ID
func (r *EstimateRepository) Get(ctx context.Context, id int) (*models.Estimate, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+estimateColumns+estimateFrom+`WHERE e.id = $1`, id)
	return scanEstimate(row)
}

// List returns all estimates, newest first
func (r *EstimateRepository) List(ctx context.Context) ([]*models.Estimate, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+estimateColumns+estimateFrom+`ORDER BY e.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEstimates(rows)
}

// ListByStatus returns estimates with the given status
func (r *EstimateRepository) ListByStatus(ctx context.Context, status string) ([]*models.Estimate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+estimateColumns+estimateFrom+`WHERE e.status = $1 ORDER BY e.created_at DESC`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEstimates(rows)
}

// ListByCustomer returns all estimates for a customer
func (r *EstimateRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Estimate, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+estimateColumns+estimateFrom+`WHERE e.customer_id = $1 ORDER BY e.created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEstimates(rows)
}

// UpdateStatus moves an estimate through its workflow, stamping the
// matching date column for SENT and ACCEPTED/REJECTED transitions.
func (r *EstimateRepository) UpdateStatus(ctx context.Context, id int, status string, when time.Time) (*models.Estimate, error) {
	var query string
	switch status {
	case models.EstimateStatusSent:
		query = `UPDATE estimates SET status = $2, estimate_sent_date = $3, updated_at = NOW() WHERE id = $1`
	case models.EstimateStatusAccepted, models.EstimateStatusRejected:
		query = `UPDATE estimates SET status = $2, response_date = $3, updated_at = NOW() WHERE id = $1`
	case models.EstimateStatusVisited:
		query = `UPDATE estimates SET status = $2, property_visit_date = $3, updated_at = NOW() WHERE id = $1`
	default:
		query = `UPDATE estimates SET status = $2, updated_at = NOW() WHERE id = $1`
	}

	tag, err := r.DB.Exec(ctx, query, id, status, when)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes an estimate
func (r *EstimateRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM estimates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func collectEstimates(rows pgx.Rows) ([]*models.Estimate, error) {
	var estimates []*models.Estimate
	for rows.Next() {
		var e models.Estimate
		err := rows.Scan(&e.ID, &e.CustomerID, &e.CustomerName, &e.WorkDescription,
			&e.PropertyVisitDate, &e.DetailedWorkDescription, &e.EstimatedCost,
			&e.EstimatedDurationDays, &e.Status, &e.EstimateSentDate, &e.ResponseDate,
			&e.Notes, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}
		estimates = append(estimates, &e)
	}
	return estimates, rows.Err()
}
