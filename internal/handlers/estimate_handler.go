package handlers

import (
	"encoding/json"
	"net/http"

	"construct-backend/internal/models"
	"construct-backend/internal/repositories"
	"construct-backend/internal/timeutil"
	"construct-backend/pkg/utils"
)

type EstimateHandler struct {
	Repo *repositories.EstimateRepository
}

func NewEstimateHandler(repo *repositories.EstimateRepository) *EstimateHandler {
	return &EstimateHandler{Repo: repo}
}

// CreateEstimate records a new estimate request in PENDING status
func (h *EstimateHandler) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CustomerID <= 0 {
		utils.ErrorMessage(w, http.StatusBadRequest, "customer_id is required")
		return
	}
	if req.EstimatedCost.IsNegative() {
		utils.ErrorMessage(w, http.StatusBadRequest, "estimated_cost must not be negative")
		return
	}
	if req.EstimatedDurationDays < 1 {
		req.EstimatedDurationDays = 1
	}

	estimate, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, estimate)
}

// GetEstimate retrieves an estimate by ID
func (h *EstimateHandler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid estimate ID")
		return
	}
	estimate, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, estimate)
}

// ListEstimates returns all estimates
func (h *EstimateHandler) ListEstimates(w http.ResponseWriter, r *http.Request) {
	estimates, err := h.Repo.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, estimates)
}

// ListPendingVisits returns estimates still awaiting a property visit
func (h *EstimateHandler) ListPendingVisits(w http.ResponseWriter, r *http.Request) {
	estimates, err := h.Repo.ListByStatus(r.Context(), models.EstimateStatusPending)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, estimates)
}

// ListAccepted returns accepted estimates ready to be scheduled
func (h *EstimateHandler) ListAccepted(w http.ResponseWriter, r *http.Request) {
	estimates, err := h.Repo.ListByStatus(r.Context(), models.EstimateStatusAccepted)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, estimates)
}

// UpdateStatus moves an estimate through its workflow
func (h *EstimateHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid estimate ID")
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if _, ok := models.EstimateStatusLabels[body.Status]; !ok {
		utils.ErrorMessage(w, http.StatusBadRequest, "Unknown estimate status")
		return
	}

	estimate, err := h.Repo.UpdateStatus(r.Context(), id, body.Status, timeutil.Today())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, estimate)
}

// DeleteEstimate removes an estimate
func (h *EstimateHandler) DeleteEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid estimate ID")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusNoContent, nil)
}
