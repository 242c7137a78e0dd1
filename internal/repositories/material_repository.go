package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"construct-backend/internal/models"
)

type MaterialRepository struct {
	DB *pgxpool.Pool
}

func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

const materialColumns = `m.id, m.job_id, j.job_title, m.supplier_id, COALESCE(s.name, ''),
	m.name, m.description, m.quantity, m.unit, m.unit_cost,
	m.order_date, m.expected_delivery_date, m.actual_delivery_date,
	m.is_delivered, m.notes, m.created_at, m.updated_at`

const materialFrom = ` FROM materials m
	JOIN jobs j ON m.job_id = j.id
	LEFT JOIN suppliers s ON m.supplier_id = s.id `

func scanMaterial(row pgx.Row) (*models.Material, error) {
	var m models.Material
	err := row.Scan(&m.ID, &m.JobID, &m.JobTitle, &m.SupplierID, &m.SupplierName,
		&m.Name, &m.Description, &m.Quantity, &m.Unit, &m.UnitCost,
		&m.OrderDate, &m.ExpectedDeliveryDate, &m.ActualDeliveryDate,
		&m.IsDelivered, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// Create records a material order against a job
func (r *MaterialRepository) Create(ctx context.Context, req *models.CreateMaterialRequest) (*models.Material, error) {
	var id int
	err := r.DB.QueryRow(ctx,
		`INSERT INTO materials (job_id, supplier_id, name, description, quantity, unit, unit_cost, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		req.JobID, req.SupplierID, req.Name, req.Description, req.Quantity, req.Unit, req.UnitCost, req.Notes,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Get retrieves a material by ID
func (r *MaterialRepository) Get(ctx context.Context, id int) (*models.Material, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+materialColumns+materialFrom+`WHERE m.id = $1`, id)
	return scanMaterial(row)
}

// List returns all materials, newest first
func (r *MaterialRepository) List(ctx context.Context) ([]*models.Material, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+materialColumns+materialFrom+`ORDER BY m.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMaterials(rows)
}

// ListByJob returns the materials ordered for a job
func (r *MaterialRepository) ListByJob(ctx context.Context, jobID int) ([]*models.Material, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+materialColumns+materialFrom+`WHERE m.job_id = $1 ORDER BY m.created_at DESC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMaterials(rows)
}

// ListPendingDelivery returns ordered materials not yet delivered
func (r *MaterialRepository) ListPendingDelivery(ctx context.Context) ([]*models.Material, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+materialColumns+materialFrom+`
		 WHERE NOT m.is_delivered AND m.order_date IS NOT NULL
		 ORDER BY m.expected_delivery_date NULLS LAST`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMaterials(rows)
}

// Update modifies an existing material order
func (r *MaterialRepository) Update(ctx context.Context, id int, req *models.CreateMaterialRequest) (*models.Material, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE materials
		 SET supplier_id = $2, name = $3, description = $4, quantity = $5,
		     unit = $6, unit_cost = $7, notes = $8, updated_at = NOW()
		 WHERE id = $1`,
		id, req.SupplierID, req.Name, req.Description, req.Quantity, req.Unit, req.UnitCost, req.Notes,
	)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.Get(ctx, id)
}

// MarkOrdered stamps the order and expected delivery dates
func (r *MaterialRepository) MarkOrdered(ctx context.Context, id int, orderDate time.Time, expected *time.Time) (*models.Material, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE materials SET order_date = $2, expected_delivery_date = $3, updated_at = NOW() WHERE id = $1`,
		id, orderDate, expected)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.Get(ctx, id)
}

// MarkDelivered records the actual delivery of a material order
func (r *MaterialRepository) MarkDelivered(ctx context.Context, id int, when time.Time) (*models.Material, error) {
	tag, err := r.DB.Exec(ctx,
		`UPDATE materials SET is_delivered = TRUE, actual_delivery_date = $2, updated_at = NOW() WHERE id = $1`,
		id, when)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, models.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes a material order
func (r *MaterialRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// TopByCost returns the most expensive material orders ranked by
// quantity * unit_cost. The limit is clamped to 1..50.
func (r *MaterialRepository) TopByCost(ctx context.Context, limit int) ([]*models.MaterialCostSummary, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}
	rows, err := r.DB.Query(ctx,
		`SELECT m.id, m.name, m.unit, m.quantity, m.unit_cost,
		        m.quantity * m.unit_cost AS total_cost,
		        COALESCE(s.name, ''), m.job_id, j.job_title
		 `+materialFrom+`
		 ORDER BY total_cost DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.MaterialCostSummary
	for rows.Next() {
		var s models.MaterialCostSummary
		err := rows.Scan(&s.ID, &s.Name, &s.Unit, &s.Quantity, &s.UnitCost,
			&s.TotalCost, &s.Supplier, &s.JobID, &s.JobTitle)
		if err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func collectMaterials(rows pgx.Rows) ([]*models.Material, error) {
	var materials []*models.Material
	for rows.Next() {
		var m models.Material
		err := rows.Scan(&m.ID, &m.JobID, &m.JobTitle, &m.SupplierID, &m.SupplierName,
			&m.Name, &m.Description, &m.Quantity, &m.Unit, &m.UnitCost,
			&m.OrderDate, &m.ExpectedDeliveryDate, &m.ActualDeliveryDate,
			&m.IsDelivered, &m.Notes, &m.CreatedAt, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		materials = append(materials, &m)
	}
	return materials, rows.Err()
}
