package handlers

import (
	"encoding/json"
	"net/http"

	"construct-backend/internal/models"
	"construct-backend/internal/repositories"
	"construct-backend/pkg/utils"
)

type WorkerHandler struct {
	Repo *repositories.WorkerRepository
}

func NewWorkerHandler(repo *repositories.WorkerRepository) *WorkerHandler {
	return &WorkerHandler{Repo: repo}
}

// CreateWorker adds a worker to the workforce
func (h *WorkerHandler) CreateWorker(w http.ResponseWriter, r *http.Request) {
	var req models.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		utils.ErrorMessage(w, http.StatusBadRequest, "first_name and last_name are required")
		return
	}
	if _, ok := models.WorkerTypeLabels[req.WorkerType]; !ok {
		utils.ErrorMessage(w, http.StatusBadRequest, "Unknown worker type")
		return
	}

	worker, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, worker)
}

// GetWorker retrieves a worker by ID
func (h *WorkerHandler) GetWorker(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}
	worker, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, worker)
}

// ListWorkers returns all workers
func (h *WorkerHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Repo.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, workers)
}

// ListAvailableWorkers returns workers open for assignment
func (h *WorkerHandler) ListAvailableWorkers(w http.ResponseWriter, r *http.Request) {
	workers, err := h.Repo.ListAvailable(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, workers)
}

// UpdateWorker modifies an existing worker
func (h *WorkerHandler) UpdateWorker(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}
	var req models.CreateWorkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	worker, err := h.Repo.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, worker)
}

// DeleteWorker removes a worker
func (h *WorkerHandler) DeleteWorker(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid worker ID")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusNoContent, nil)
}
