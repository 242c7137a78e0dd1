package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"construct-backend/internal/models"
)

type SupplierRepository struct {
	DB *pgxpool.Pool
}

func NewSupplierRepository(db *pgxpool.Pool) *SupplierRepository {
	return &SupplierRepository{DB: db}
}

const supplierColumns = `id, name, contact_person, email, phone, address, website, is_active, created_at, updated_at`

func scanSupplier(row pgx.Row) (*models.Supplier, error) {
	var s models.Supplier
	err := row.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone,
		&s.Address, &s.Website, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Create inserts a new supplier
func (r *SupplierRepository) Create(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	row := r.DB.QueryRow(ctx,
		`INSERT INTO suppliers (name, contact_person, email, phone, address, website)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+supplierColumns,
		req.Name, req.ContactPerson, req.Email, req.Phone, req.Address, req.Website,
	)
	return scanSupplier(row)
}

// Get retrieves a supplier by ID
func (r *SupplierRepository) Get(ctx context.Context, id int) (*models.Supplier, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id)
	return scanSupplier(row)
}

// List returns suppliers, active first, alphabetically
func (r *SupplierRepository) List(ctx context.Context) ([]*models.Supplier, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers ORDER BY is_active DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSuppliers(rows)
}

// Update modifies an existing supplier
func (r *SupplierRepository) Update(ctx context.Context, id int, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE suppliers
		 SET name = $2, contact_person = $3, email = $4, phone = $5,
		     address = $6, website = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+supplierColumns,
		id, req.Name, req.ContactPerson, req.Email, req.Phone, req.Address, req.Website,
	)
	return scanSupplier(row)
}

// SetActive toggles whether a supplier can be attached to new materials
func (r *SupplierRepository) SetActive(ctx context.Context, id int, active bool) (*models.Supplier, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE suppliers SET is_active = $2, updated_at = NOW() WHERE id = $1 RETURNING `+supplierColumns,
		id, active,
	)
	return scanSupplier(row)
}

// Delete removes a supplier; materials keep their rows with supplier unset
func (r *SupplierRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func collectSuppliers(rows pgx.Rows) ([]*models.Supplier, error) {
	var suppliers []*models.Supplier
	for rows.Next() {
		var s models.Supplier
		err := rows.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone,
			&s.Address, &s.Website, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, &s)
	}
	return suppliers, rows.Err()
}
