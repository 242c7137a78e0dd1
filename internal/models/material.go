package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material represents building materials ordered for a job
type Material struct {
	ID                   int             `json:"id"`
	JobID                int             `json:"job_id"`
	JobTitle             string          `json:"job_title,omitempty"`
	SupplierID           *int            `json:"supplier_id"`
	SupplierName         string          `json:"supplier_name,omitempty"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Quantity             decimal.Decimal `json:"quantity"`
	Unit                 string          `json:"unit"`
	UnitCost             decimal.Decimal `json:"unit_cost"`
	OrderDate            *time.Time      `json:"order_date"`
	ExpectedDeliveryDate *time.Time      `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time      `json:"actual_delivery_date"`
	IsDelivered          bool            `json:"is_delivered"`
	Notes                string          `json:"notes"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// TotalCost returns quantity * unit cost
func (m *Material) TotalCost() decimal.Decimal {
	return m.Quantity.Mul(m.UnitCost)
}

// CreateMaterialRequest represents the request to add a material to a job
type CreateMaterialRequest struct {
	JobID       int             `json:"job_id"`
	SupplierID  *int            `json:"supplier_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	Notes       string          `json:"notes"`
}

// MaterialCostSummary is a ranked entry in the top-materials-by-cost listing
type MaterialCostSummary struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	TotalCost decimal.Decimal `json:"total_cost"`
	Supplier  string          `json:"supplier,omitempty"`
	JobID     int             `json:"job_id"`
	JobTitle  string          `json:"job_title,omitempty"`
}
