package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estimate statuses
const (
	EstimateStatusPending  = "PENDING"
	EstimateStatusVisited  = "VISITED"
	EstimateStatusSent     = "SENT"
	EstimateStatusAccepted = "ACCEPTED"
	EstimateStatusRejected = "REJECTED"
)

// EstimateStatusLabels maps estimate status codes to display names
var EstimateStatusLabels = map[string]string{
	EstimateStatusPending:  "Pending Visit",
	EstimateStatusVisited:  "Property Visited",
	EstimateStatusSent:     "Estimate Sent",
	EstimateStatusAccepted: "Accepted",
	EstimateStatusRejected: "Rejected",
}

// Estimate represents a cost estimate for proposed work
type Estimate struct {
	ID                      int             `json:"id"`
	CustomerID              int             `json:"customer_id"`
	CustomerName            string          `json:"customer_name,omitempty"`
	WorkDescription         string          `json:"work_description"`
	PropertyVisitDate       *time.Time      `json:"property_visit_date"`
	DetailedWorkDescription string          `json:"detailed_work_description"`
	EstimatedCost           decimal.Decimal `json:"estimated_cost"`
	EstimatedDurationDays   int             `json:"estimated_duration_days"`
	Status                  string          `json:"status"`
	EstimateSentDate        *time.Time      `json:"estimate_sent_date"`
	ResponseDate            *time.Time      `json:"response_date"`
	Notes                   string          `json:"notes"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// CreateEstimateRequest represents the request to create an estimate
type CreateEstimateRequest struct {
	CustomerID            int             `json:"customer_id"`
	WorkDescription       string          `json:"work_description"`
	EstimatedCost         decimal.Decimal `json:"estimated_cost"`
	EstimatedDurationDays int             `json:"estimated_duration_days"`
	Notes                 string          `json:"notes"`
}
