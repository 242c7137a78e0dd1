package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Worker types
const (
	WorkerTypeBricklayer  = "BRICKLAYER"
	WorkerTypeCarpenter   = "CARPENTER"
	WorkerTypePlumber     = "PLUMBER"
	WorkerTypeElectrician = "ELECTRICIAN"
	WorkerTypePainter     = "PAINTER"
	WorkerTypeGeneral     = "GENERAL"
)

// WorkerTypeLabels maps worker type codes to display names
var WorkerTypeLabels = map[string]string{
	WorkerTypeBricklayer:  "Bricklayer",
	WorkerTypeCarpenter:   "Carpenter",
	WorkerTypePlumber:     "Plumber",
	WorkerTypeElectrician: "Electrician",
	WorkerTypePainter:     "Painter",
	WorkerTypeGeneral:     "General Worker",
}

// Worker represents a skilled worker
type Worker struct {
	ID              int             `json:"id"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	WorkerType      string          `json:"worker_type"`
	Phone           string          `json:"phone"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	ExperienceYears int             `json:"experience_years"`
	IsAvailable     bool            `json:"is_available"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FullName returns the worker's display name
func (w *Worker) FullName() string {
	return w.FirstName + " " + w.LastName
}

// CreateWorkerRequest represents the request to create a worker
type CreateWorkerRequest struct {
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	WorkerType      string          `json:"worker_type"`
	Phone           string          `json:"phone"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	ExperienceYears int             `json:"experience_years"`
	IsAvailable     *bool           `json:"is_available"`
}
