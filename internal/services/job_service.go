package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"construct-backend/internal/cache"
	"construct-backend/internal/models"
	"construct-backend/internal/timeutil"
)

// JobStore is the persistence surface for the job workflow
type JobStore interface {
	Create(ctx context.Context, req *models.CreateJobRequest) (*models.Job, error)
	Get(ctx context.Context, id int) (*models.Job, error)
	List(ctx context.Context) ([]*models.Job, error)
	ListByStatus(ctx context.Context, statuses ...string) ([]*models.Job, error)
	ListByCustomer(ctx context.Context, customerID int) ([]*models.Job, error)
	ListUpcoming(ctx context.Context, today time.Time) ([]*models.Job, error)
	ListNeedingConfirmation(ctx context.Context, today time.Time) ([]*models.Job, error)
	Confirm(ctx context.Context, id int, when time.Time) (*models.Job, error)
	Start(ctx context.Context, id int, when time.Time) (*models.Job, error)
	Complete(ctx context.Context, id int, when time.Time) (*models.Job, error)
	Delete(ctx context.Context, id int) error
}

// EstimateStore is the slice of the estimate repository the job
// workflow needs.
type EstimateStore interface {
	Get(ctx context.Context, id int) (*models.Estimate, error)
}

// MaterialStore is the slice of the material repository the job
// workflow needs.
type MaterialStore interface {
	ListByJob(ctx context.Context, jobID int) ([]*models.Material, error)
}

// JobService runs the scheduling workflow. Completing a job raises the
// DRAFT invoice through the ledger, seeded from the accepted estimate
// and the materials ordered for the job.
type JobService struct {
	Jobs      JobStore
	Estimates EstimateStore
	Materials MaterialStore
	Ledger    *LedgerService
}

func NewJobService(jobs JobStore, estimates EstimateStore, materials MaterialStore, ledger *LedgerService) *JobService {
	return &JobService{Jobs: jobs, Estimates: estimates, Materials: materials, Ledger: ledger}
}

// CreateJob schedules a job from an accepted estimate
func (s *JobService) CreateJob(ctx context.Context, req *models.CreateJobRequest) (*models.Job, error) {
	if req.JobTitle == "" {
		return nil, fmt.Errorf("%w: job_title is required", models.ErrValidation)
	}
	if req.ScheduledEndDate.Before(req.ScheduledStartDate) {
		return nil, fmt.Errorf("%w: scheduled end date precedes start date", models.ErrValidation)
	}

	estimate, err := s.Estimates.Get(ctx, req.EstimateID)
	if err != nil {
		return nil, fmt.Errorf("estimate lookup: %w", err)
	}
	if estimate.Status != models.EstimateStatusAccepted {
		return nil, fmt.Errorf("%w: estimate %d is %s, only accepted estimates can be scheduled",
			models.ErrConflict, estimate.ID, estimate.Status)
	}
	if req.CustomerID == 0 {
		req.CustomerID = estimate.CustomerID
	}

	job, err := s.Jobs.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	log.Printf("[Jobs] Scheduled job %d (%s) for customer %d", job.ID, job.JobTitle, job.CustomerID)
	cache.InvalidateDashboard(ctx)
	return job, nil
}

// GetJob returns a job by ID
func (s *JobService) GetJob(ctx context.Context, id int) (*models.Job, error) {
	return s.Jobs.Get(ctx, id)
}

// ListJobs returns all jobs
func (s *JobService) ListJobs(ctx context.Context) ([]*models.Job, error) {
	return s.Jobs.List(ctx)
}

// ListJobsByCustomer returns a customer's jobs
func (s *JobService) ListJobsByCustomer(ctx context.Context, customerID int) ([]*models.Job, error) {
	return s.Jobs.ListByCustomer(ctx, customerID)
}

// ListInProgress returns jobs currently underway
func (s *JobService) ListInProgress(ctx context.Context) ([]*models.Job, error) {
	return s.Jobs.ListByStatus(ctx, models.JobStatusInProgress)
}

// ListUpcoming returns jobs scheduled from today onward
func (s *JobService) ListUpcoming(ctx context.Context) ([]*models.Job, error) {
	return s.Jobs.ListUpcoming(ctx, timeutil.Today())
}

// ListNeedingConfirmation returns jobs starting soon that the customer
// has not confirmed yet.
func (s *JobService) ListNeedingConfirmation(ctx context.Context) ([]*models.Job, error) {
	return s.Jobs.ListNeedingConfirmation(ctx, timeutil.Today())
}

// ConfirmJob records customer confirmation of the start date
func (s *JobService) ConfirmJob(ctx context.Context, id int) (*models.Job, error) {
	job, err := s.Jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusScheduled {
		return nil, fmt.Errorf("%w: job %d is %s, only a scheduled job can be confirmed",
			models.ErrConflict, id, job.Status)
	}
	confirmed, err := s.Jobs.Confirm(ctx, id, timeutil.Today())
	if err != nil {
		return nil, err
	}
	cache.InvalidateDashboard(ctx)
	return confirmed, nil
}

// StartJob moves a job to IN_PROGRESS and stamps the actual start date
func (s *JobService) StartJob(ctx context.Context, id int) (*models.Job, error) {
	job, err := s.Jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusScheduled && job.Status != models.JobStatusConfirmed {
		return nil, fmt.Errorf("%w: job %d is %s and cannot be started", models.ErrConflict, id, job.Status)
	}
	started, err := s.Jobs.Start(ctx, id, timeutil.Today())
	if err != nil {
		return nil, err
	}
	log.Printf("[Jobs] Job %d started", id)
	cache.InvalidateDashboard(ctx)
	return started, nil
}

// CompleteJob finishes a job and raises its DRAFT invoice: labor from
// the accepted estimate, materials from the orders recorded against the
// job. If an invoice already exists the completion still stands.
func (s *JobService) CompleteJob(ctx context.Context, id int) (*models.Job, error) {
	job, err := s.Jobs.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status != models.JobStatusInProgress {
		return nil, fmt.Errorf("%w: job %d is %s, only a job in progress can be completed",
			models.ErrConflict, id, job.Status)
	}

	completed, err := s.Jobs.Complete(ctx, id, timeutil.Today())
	if err != nil {
		return nil, err
	}
	log.Printf("[Jobs] Job %d completed", id)

	if _, err := s.Ledger.CreateInvoice(ctx, s.draftInvoiceRequest(ctx, completed)); err != nil {
		if errors.Is(err, models.ErrInvoiceExists) {
			log.Printf("[Jobs] Job %d already invoiced", id)
		} else {
			log.Printf("[Jobs] Failed to raise invoice for job %d: %v", id, err)
		}
	}

	cache.InvalidateDashboard(ctx)
	return completed, nil
}

func (s *JobService) draftInvoiceRequest(ctx context.Context, job *models.Job) *models.CreateInvoiceRequest {
	labor := decimal.Zero
	if estimate, err := s.Estimates.Get(ctx, job.EstimateID); err == nil {
		labor = estimate.EstimatedCost
	}

	materialCost := decimal.Zero
	if materials, err := s.Materials.ListByJob(ctx, job.ID); err == nil {
		for _, m := range materials {
			materialCost = materialCost.Add(m.TotalCost())
		}
	}

	return &models.CreateInvoiceRequest{
		JobID:        job.ID,
		LaborCost:    labor,
		MaterialCost: materialCost,
		Notes:        fmt.Sprintf("Raised on completion of %s", job.JobTitle),
	}
}

// DeleteJob removes a job and everything hanging off it
func (s *JobService) DeleteJob(ctx context.Context, id int) error {
	if err := s.Jobs.Delete(ctx, id); err != nil {
		return err
	}
	cache.InvalidateDashboard(ctx)
	return nil
}
