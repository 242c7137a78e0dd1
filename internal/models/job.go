package models

import "time"

// Job statuses
const (
	JobStatusScheduled  = "SCHEDULED"
	JobStatusConfirmed  = "CONFIRMED"
	JobStatusInProgress = "IN_PROGRESS"
	JobStatusCompleted  = "COMPLETED"
	JobStatusCancelled  = "CANCELLED"
)

// JobStatusLabels maps job status codes to display names
var JobStatusLabels = map[string]string{
	JobStatusScheduled:  "Scheduled",
	JobStatusConfirmed:  "Confirmed",
	JobStatusInProgress: "In Progress",
	JobStatusCompleted:  "Completed",
	JobStatusCancelled:  "Cancelled",
}

// Job represents a scheduled building job
type Job struct {
	ID                 int        `json:"id"`
	EstimateID         int        `json:"estimate_id"`
	CustomerID         int        `json:"customer_id"`
	CustomerName       string     `json:"customer_name,omitempty"`
	JobTitle           string     `json:"job_title"`
	Description        string     `json:"description"`
	ScheduledStartDate time.Time  `json:"scheduled_start_date"`
	ScheduledEndDate   time.Time  `json:"scheduled_end_date"`
	ActualStartDate    *time.Time `json:"actual_start_date"`
	ActualEndDate      *time.Time `json:"actual_end_date"`
	Status             string     `json:"status"`
	ConfirmationDate   *time.Time `json:"confirmation_date"`
	WorkerIDs          []int      `json:"worker_ids,omitempty"`
	Notes              string     `json:"notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CreateJobRequest represents the request to schedule a job
type CreateJobRequest struct {
	EstimateID         int       `json:"estimate_id"`
	CustomerID         int       `json:"customer_id"`
	JobTitle           string    `json:"job_title"`
	Description        string    `json:"description"`
	ScheduledStartDate time.Time `json:"scheduled_start_date"`
	ScheduledEndDate   time.Time `json:"scheduled_end_date"`
	WorkerIDs          []int     `json:"worker_ids"`
	Notes              string    `json:"notes"`
}
