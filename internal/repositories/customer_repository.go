package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"construct-backend/internal/models"
)

type CustomerRepository struct {
	DB *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

const customerColumns = `id, first_name, last_name, email, phone, address, city, postal_code, created_at, updated_at`

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.Address, &c.City, &c.PostalCode, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new customer
func (r *CustomerRepository) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`INSERT INTO customers (first_name, last_name, email, phone, address, city, postal_code)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+customerColumns,
		req.FirstName, req.LastName, req.Email, req.Phone, req.Address, req.City, req.PostalCode,
	)
	customer, err := scanCustomer(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// Get retrieves a customer by ID
func (r *CustomerRepository) Get(ctx context.Context, id int) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
	return scanCustomer(row)
}

// List returns all customers, newest first
func (r *CustomerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// Search finds customers matching name, email, phone or city
func (r *CustomerRepository) Search(ctx context.Context, query string) ([]*models.Customer, error) {
	pattern := "%" + query + "%"
	rows, err := r.DB.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		 WHERE first_name ILIKE $1 OR last_name ILIKE $1 OR email ILIKE $1
		    OR phone ILIKE $1 OR city ILIKE $1
		 ORDER BY created_at DESC`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCustomers(rows)
}

// Update modifies an existing customer
func (r *CustomerRepository) Update(ctx context.Context, id int, req *models.CreateCustomerRequest) (*models.Customer, error) {
	row := r.DB.QueryRow(ctx,
		`UPDATE customers
		 SET first_name = $2, last_name = $3, email = $4, phone = $5,
		     address = $6, city = $7, postal_code = $8, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+customerColumns,
		id, req.FirstName, req.LastName, req.Email, req.Phone, req.Address, req.City, req.PostalCode,
	)
	return scanCustomer(row)
}

// Delete removes a customer and cascades to estimates, jobs and invoices
func (r *CustomerRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func collectCustomers(rows pgx.Rows) ([]*models.Customer, error) {
	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
			&c.Address, &c.City, &c.PostalCode, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}
