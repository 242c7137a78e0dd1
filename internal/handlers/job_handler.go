package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"construct-backend/internal/models"
	"construct-backend/internal/services"
	"construct-backend/pkg/utils"
)

type JobHandler struct {
	Service *services.JobService
}

func NewJobHandler(s *services.JobService) *JobHandler {
	return &JobHandler{Service: s}
}

// CreateJob schedules a job from an accepted estimate
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	job, err := h.Service.CreateJob(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, job)
}

// GetJob retrieves a job by ID
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid job ID")
		return
	}
	job, err := h.Service.GetJob(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, job)
}

// ListJobs returns all jobs
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.ListJobs(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, jobs)
}

// ListUpcoming returns jobs scheduled from today onward
func (h *JobHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.ListUpcoming(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, jobs)
}

// ListInProgress returns jobs currently underway
func (h *JobHandler) ListInProgress(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.ListInProgress(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, jobs)
}

// ListNeedingConfirmation returns jobs starting soon without customer
// confirmation.
func (h *JobHandler) ListNeedingConfirmation(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.Service.ListNeedingConfirmation(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, jobs)
}

// ConfirmJob records the customer's confirmation of the start date
func (h *JobHandler) ConfirmJob(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.ConfirmJob)
}

// StartJob moves a job to IN_PROGRESS
func (h *JobHandler) StartJob(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.StartJob)
}

// CompleteJob finishes a job and raises its draft invoice
func (h *JobHandler) CompleteJob(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.CompleteJob)
}

func (h *JobHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int) (*models.Job, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid job ID")
		return
	}
	job, err := fn(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, job)
}

// DeleteJob removes a job
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid job ID")
		return
	}
	if err := h.Service.DeleteJob(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusNoContent, nil)
}
