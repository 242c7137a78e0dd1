package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"construct-backend/internal/models"
)

type WorkerRepository struct {
	DB *pgxpool.Pool
}

func NewWorkerRepository(db *pgxpool.Pool) *WorkerRepository {
	return &WorkerRepository{DB: db}
}

const workerColumns = `id, first_name, last_name, worker_type, phone, hourly_rate, experience_years, is_available, created_at, updated_at`

func scanWorker(row pgx.Row) (*models.Worker, error) {
	var w models.Worker
	err := row.Scan(&w.ID, &w.FirstName, &w.LastName, &w.WorkerType, &w.Phone,
		&w.HourlyRate, &w.ExperienceYears, &w.IsAvailable, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// Create inserts a new worker
func (r *WorkerRepository) Create(ctx context.Context, req *models.CreateWorkerRequest) (*models.Worker, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	row := r.DB.QueryRow(ctx,
		`INSERT INTO workers (first_name, last_name, worker_type, phone, hourly_rate, experience_years, is_available)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+workerColumns,
		req.FirstName, req.LastName, req.WorkerType, req.Phone, req.HourlyRate, req.ExperienceYears, available,
	)
	return scanWorker(row)
}

// Get retrieves a worker by ID
func (r *WorkerRepository) Get(ctx context.Context, id int) (*models.Worker, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id)
	return scanWorker(row)
}

// List returns all workers grouped by trade
func (r *WorkerRepository) List(ctx context.Context) ([]*models.Worker, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+workerColumns+` FROM workers ORDER BY worker_type, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWorkers(rows)
}

// ListAvailable returns workers currently available for assignment
func (r *WorkerRepository) ListAvailable(ctx context.Context) ([]*models.Worker, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+workerColumns+` FROM workers WHERE is_available ORDER BY worker_type, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWorkers(rows)
}

// Update modifies an existing worker
func (r *WorkerRepository) Update(ctx context.Context, id int, req *models.CreateWorkerRequest) (*models.Worker, error) {
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}
	row := r.DB.QueryRow(ctx,
		`UPDATE workers
		 SET first_name = $2, last_name = $3, worker_type = $4, phone = $5,
		     hourly_rate = $6, experience_years = $7, is_available = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+workerColumns,
		id, req.FirstName, req.LastName, req.WorkerType, req.Phone,
		req.HourlyRate, req.ExperienceYears, available,
	)
	return scanWorker(row)
}

// Delete removes a worker
func (r *WorkerRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM workers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func collectWorkers(rows pgx.Rows) ([]*models.Worker, error) {
	var workers []*models.Worker
	for rows.Next() {
		var w models.Worker
		err := rows.Scan(&w.ID, &w.FirstName, &w.LastName, &w.WorkerType, &w.Phone,
			&w.HourlyRate, &w.ExperienceYears, &w.IsAvailable, &w.CreatedAt, &w.UpdatedAt)
		if err != nil {
			return nil, err
		}
		workers = append(workers, &w)
	}
	return workers, rows.Err()
}
