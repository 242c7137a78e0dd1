package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"construct-backend/internal/models"
)

type fakeJobStore struct {
	jobs   map[int]*models.Job
	nextID int
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[int]*models.Job), nextID: 1}
}

func (f *fakeJobStore) Create(ctx context.Context, req *models.CreateJobRequest) (*models.Job, error) {
	job := &models.Job{
		ID:                 f.nextID,
		EstimateID:         req.EstimateID,
		CustomerID:         req.CustomerID,
		JobTitle:           req.JobTitle,
		Description:        req.Description,
		ScheduledStartDate: req.ScheduledStartDate,
		ScheduledEndDate:   req.ScheduledEndDate,
		Status:             models.JobStatusScheduled,
		WorkerIDs:          req.WorkerIDs,
	}
	f.jobs[job.ID] = job
	f.nextID++
	return job, nil
}

func (f *fakeJobStore) Get(ctx context.Context, id int) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *job
	return &cp, nil
}

func (f *fakeJobStore) List(ctx context.Context) ([]*models.Job, error) {
	var out []*models.Job
	for _, job := range f.jobs {
		cp := *job
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeJobStore) ListByStatus(ctx context.Context, statuses ...string) ([]*models.Job, error) {
	var out []*models.Job
	for _, job := range f.jobs {
		for _, s := range statuses {
			if job.Status == s {
				cp := *job
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeJobStore) ListByCustomer(ctx context.Context, customerID int) ([]*models.Job, error) {
	var out []*models.Job
	for _, job := range f.jobs {
		if job.CustomerID == customerID {
			cp := *job
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeJobStore) ListUpcoming(ctx context.Context, today time.Time) ([]*models.Job, error) {
	var out []*models.Job
	for _, job := range f.jobs {
		if (job.Status == models.JobStatusScheduled || job.Status == models.JobStatusConfirmed) &&
			!job.ScheduledStartDate.Before(today) {
			cp := *job
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeJobStore) ListNeedingConfirmation(ctx context.Context, today time.Time) ([]*models.Job, error) {
	var out []*models.Job
	for _, job := range f.jobs {
		days := int(job.ScheduledStartDate.Sub(today).Hours() / 24)
		if job.Status == models.JobStatusScheduled && days >= 1 && days <= 5 {
			cp := *job
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeJobStore) Confirm(ctx context.Context, id int, when time.Time) (*models.Job, error) {
	return f.setStatus(id, models.JobStatusConfirmed, func(j *models.Job) { j.ConfirmationDate = &when })
}

func (f *fakeJobStore) Start(ctx context.Context, id int, when time.Time) (*models.Job, error) {
	return f.setStatus(id, models.JobStatusInProgress, func(j *models.Job) { j.ActualStartDate = &when })
}

func (f *fakeJobStore) Complete(ctx context.Context, id int, when time.Time) (*models.Job, error) {
	return f.setStatus(id, models.JobStatusCompleted, func(j *models.Job) { j.ActualEndDate = &when })
}

func (f *fakeJobStore) setStatus(id int, status string, stamp func(*models.Job)) (*models.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	job.Status = status
	stamp(job)
	cp := *job
	return &cp, nil
}

func (f *fakeJobStore) Delete(ctx context.Context, id int) error {
	if _, ok := f.jobs[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.jobs, id)
	return nil
}

type fakeEstimateStore struct {
	estimates map[int]*models.Estimate
}

func (f *fakeEstimateStore) Get(ctx context.Context, id int) (*models.Estimate, error) {
	e, ok := f.estimates[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

type fakeMaterialStore struct {
	materials []*models.Material
}

func (f *fakeMaterialStore) ListByJob(ctx context.Context, jobID int) ([]*models.Material, error) {
	var out []*models.Material
	for _, m := range f.materials {
		if m.JobID == jobID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func newTestJobService() (*JobService, *fakeJobStore, *fakeEstimateStore, *fakeMaterialStore, *fakeLedgerStore) {
	jobs := newFakeJobStore()
	estimates := &fakeEstimateStore{estimates: map[int]*models.Estimate{
		1: {ID: 1, CustomerID: 7, Status: models.EstimateStatusAccepted, EstimatedCost: decimal.NewFromInt(10000)},
		2: {ID: 2, CustomerID: 7, Status: models.EstimateStatusPending, EstimatedCost: decimal.NewFromInt(8000)},
	}}
	materials := &fakeMaterialStore{}
	ledgerStore := newFakeLedgerStore()
	ledger := NewLedgerService(ledgerStore, &fakePaymentReader{store: ledgerStore})
	return NewJobService(jobs, estimates, materials, ledger), jobs, estimates, materials, ledgerStore
}

func jobRequest(estimateID int) *models.CreateJobRequest {
	return &models.CreateJobRequest{
		EstimateID:         estimateID,
		JobTitle:           "Kitchen remodel",
		ScheduledStartDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		ScheduledEndDate:   time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateJobRequiresAcceptedEstimate(t *testing.T) {
	svc, _, _, _, _ := newTestJobService()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, jobRequest(1))
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusScheduled, job.Status)
	assert.Equal(t, 7, job.CustomerID, "customer inherited from estimate")

	_, err = svc.CreateJob(ctx, jobRequest(2))
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestCreateJobValidation(t *testing.T) {
	svc, _, _, _, _ := newTestJobService()
	ctx := context.Background()

	req := jobRequest(1)
	req.JobTitle = ""
	_, err := svc.CreateJob(ctx, req)
	assert.ErrorIs(t, err, models.ErrValidation)

	req = jobRequest(1)
	req.ScheduledEndDate = req.ScheduledStartDate.AddDate(0, 0, -1)
	_, err = svc.CreateJob(ctx, req)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestJobLifecycleTransitions(t *testing.T) {
	frozenClock(t, time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC))
	svc, _, _, _, _ := newTestJobService()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, jobRequest(1))
	require.NoError(t, err)

	confirmed, err := svc.ConfirmJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusConfirmed, confirmed.Status)
	require.NotNil(t, confirmed.ConfirmationDate)

	// A confirmed job cannot be confirmed again
	_, err = svc.ConfirmJob(ctx, job.ID)
	assert.ErrorIs(t, err, models.ErrConflict)

	started, err := svc.StartJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInProgress, started.Status)
	require.NotNil(t, started.ActualStartDate)

	completed, err := svc.CompleteJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	require.NotNil(t, completed.ActualEndDate)
}

func TestStartJobStraightFromScheduled(t *testing.T) {
	svc, _, _, _, _ := newTestJobService()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, jobRequest(1))
	require.NoError(t, err)

	started, err := svc.StartJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInProgress, started.Status)

	// In-progress jobs cannot start again
	_, err = svc.StartJob(ctx, job.ID)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestCompleteJobRequiresInProgress(t *testing.T) {
	svc, _, _, _, _ := newTestJobService()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, jobRequest(1))
	require.NoError(t, err)

	_, err = svc.CompleteJob(ctx, job.ID)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestCompleteJobRaisesDraftInvoice(t *testing.T) {
	svc, _, _, materials, ledgerStore := newTestJobService()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, jobRequest(1))
	require.NoError(t, err)
	materials.materials = []*models.Material{
		{JobID: job.ID, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(300)},
		{JobID: job.ID, Quantity: decimal.NewFromInt(4), UnitCost: decimal.NewFromInt(500)},
	}

	_, err = svc.StartJob(ctx, job.ID)
	require.NoError(t, err)
	_, err = svc.CompleteJob(ctx, job.ID)
	require.NoError(t, err)

	inv, err := ledgerStore.GetByJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusDraft, inv.Status)
	assert.True(t, inv.LaborCost.Equal(decimal.NewFromInt(10000)), "labor from estimate, got %s", inv.LaborCost)
	assert.True(t, inv.MaterialCost.Equal(decimal.NewFromInt(5000)), "materials summed, got %s", inv.MaterialCost)
}

func TestCompleteJobToleratesExistingInvoice(t *testing.T) {
	svc, jobs, _, _, ledgerStore := newTestJobService()
	ctx := context.Background()

	job, err := svc.CreateJob(ctx, jobRequest(1))
	require.NoError(t, err)
	_, err = svc.StartJob(ctx, job.ID)
	require.NoError(t, err)

	// Invoice already raised for this job
	_, err = ledgerStore.Create(ctx, &models.CreateInvoiceRequest{JobID: job.ID}, time.Now(), time.Now())
	require.NoError(t, err)

	completed, err := svc.CompleteJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	assert.Equal(t, models.JobStatusCompleted, jobs.jobs[job.ID].Status)
}
