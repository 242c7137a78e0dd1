package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"construct-backend/internal/models"
)

type JobRepository struct {
	DB *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{DB: db}
}

const jobColumns = `j.id, j.estimate_id, j.customer_id, c.first_name || ' ' || c.last_name,
	j.job_title, j.description, j.scheduled_start_date, j.scheduled_end_date,
	j.actual_start_date, j.actual_end_date, j.status, j.confirmation_date,
	j.notes, j.created_at, j.updated_at`

const jobFrom = ` FROM jobs j JOIN customers c ON j.customer_id = c.id `

func scanJob(row pgx.Row) (*models.Job, error) {
	var j models.Job
	err := row.Scan(&j.ID, &j.EstimateID, &j.CustomerID, &j.CustomerName,
		&j.JobTitle, &j.Description, &j.ScheduledStartDate, &j.ScheduledEndDate,
		&j.ActualStartDate, &j.ActualEndDate, &j.Status, &j.ConfirmationDate,
		&j.Notes, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &j, nil
}

// Create schedules a job from an accepted estimate, assigning workers in
// the same transaction.
func (r *JobRepository) Create(ctx context.Context, req *models.CreateJobRequest) (*models.Job, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var id int
	err = tx.QueryRow(ctx,
		`INSERT INTO jobs (estimate_id, customer_id, job_title, description,
		                   scheduled_start_date, scheduled_end_date, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		req.EstimateID, req.CustomerID, req.JobTitle, req.Description,
		req.ScheduledStartDate, req.ScheduledEndDate, req.Notes,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	for _, workerID := range req.WorkerIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO job_workers (job_id, worker_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			id, workerID)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Get retrieves a job by ID including assigned worker IDs
func (r *JobRepository) Get(ctx context.Context, id int) (*models.Job, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+jobColumns+jobFrom+`WHERE j.id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `SELECT worker_id FROM job_workers WHERE job_id = $1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var workerID int
		if err := rows.Scan(&workerID); err != nil {
			return nil, err
		}
		job.WorkerIDs = append(job.WorkerIDs, workerID)
	}
	return job, rows.Err()
}

// List returns all jobs by scheduled start date
func (r *JobRepository) List(ctx context.Context) ([]*models.Job, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+jobColumns+jobFrom+`ORDER BY j.scheduled_start_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListByStatus returns jobs in any of the given statuses
func (r *JobRepository) ListByStatus(ctx context.Context, statuses ...string) ([]*models.Job, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+jobColumns+jobFrom+`WHERE j.status = ANY($1) ORDER BY j.scheduled_start_date`, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListByCustomer returns all jobs for a customer
func (r *JobRepository) ListByCustomer(ctx context.Context, customerID int) ([]*models.Job, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+jobColumns+jobFrom+`WHERE j.customer_id = $1 ORDER BY j.scheduled_start_date`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListUpcoming returns scheduled/confirmed jobs starting today or later
func (r *JobRepository) ListUpcoming(ctx context.Context, today time.Time) ([]*models.Job, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+jobColumns+jobFrom+`
		 WHERE j.scheduled_start_date >= $1 AND j.status IN ('SCHEDULED', 'CONFIRMED')
		 ORDER BY j.scheduled_start_date`, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// ListNeedingConfirmation returns scheduled jobs starting within the
// 1-5 day confirmation window.
func (r *JobRepository) ListNeedingConfirmation(ctx context.Context, today time.Time) ([]*models.Job, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+jobColumns+jobFrom+`
		 WHERE j.status = 'SCHEDULED'
		   AND j.scheduled_start_date BETWEEN $1 AND $2
		 ORDER BY j.scheduled_start_date`,
		today.AddDate(0, 0, 1), today.AddDate(0, 0, 5))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobs(rows)
}

// Confirm marks a job as confirmed by the customer
func (r *JobRepository) Confirm(ctx context.Context, id int, when time.Time) (*models.Job, error) {
	return r.setStatus(ctx, id,
		`UPDATE jobs SET status = 'CONFIRMED', confirmation_date = $2, updated_at = NOW() WHERE id = $1`, when)
}

// Start marks a job as in progress
func (r *JobRepository) Start(ctx context.Context, id int, when time.Time) (*models.Job, error) {
	return r.setStatus(ctx, id,
		`UPDATE jobs SET status = 'IN_PROGRESS', actual_start_date = $2, updated_at = NOW() WHERE id = $1`, when)
}

// Complete marks a job as completed
func (r *JobRepository) Complete(ctx context.Context, id int, when time.Time) (*models.Job, error) {
	return r.setStatus(ctx, id,
		`UPDATE jobs SET status = 'COMPLETED', actual_end_date = $2, updated_at = NOW() WHERE id = $1`, when)
}

func (r *JobRepository) setStatus(ctx context.Context, id int, query string, when time.Time) (*models.Job, error) {
	tag, err := r.DB.Exec(ctx, query, id, when)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a job and cascades to materials and its invoice
func (r *JobRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func collectJobs(rows pgx.Rows) ([]*models.Job, error) {
	var jobs []*models.Job
	for rows.Next() {
		var j models.Job
		err := rows.Scan(&j.ID, &j.EstimateID, &j.CustomerID, &j.CustomerName,
			&j.JobTitle, &j.Description, &j.ScheduledStartDate, &j.ScheduledEndDate,
			&j.ActualStartDate, &j.ActualEndDate, &j.Status, &j.ConfirmationDate,
			&j.Notes, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}
