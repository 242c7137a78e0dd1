package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"construct-backend/internal/models"
	"construct-backend/internal/repositories"
	"construct-backend/internal/timeutil"
	"construct-backend/pkg/utils"
)

type MaterialHandler struct {
	Repo *repositories.MaterialRepository
}

func NewMaterialHandler(repo *repositories.MaterialRepository) *MaterialHandler {
	return &MaterialHandler{Repo: repo}
}

// CreateMaterial records a material order against a job
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.JobID <= 0 {
		utils.ErrorMessage(w, http.StatusBadRequest, "job_id is required")
		return
	}
	if req.Name == "" {
		utils.ErrorMessage(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity.IsNegative() || req.UnitCost.IsNegative() {
		utils.ErrorMessage(w, http.StatusBadRequest, "quantity and unit_cost must not be negative")
		return
	}

	material, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, material)
}

// GetMaterial retrieves a material by ID
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid material ID")
		return
	}
	material, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, material)
}

// ListMaterials returns all materials, optionally filtered by ?job_id=
func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	if jobStr := r.URL.Query().Get("job_id"); jobStr != "" {
		jobID, err := strconv.Atoi(jobStr)
		if err != nil {
			utils.ErrorMessage(w, http.StatusBadRequest, "Invalid job_id")
			return
		}
		materials, err := h.Repo.ListByJob(r.Context(), jobID)
		if err != nil {
			utils.Error(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, materials)
		return
	}

	materials, err := h.Repo.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, materials)
}

// ListPendingDelivery returns ordered materials not yet delivered
func (h *MaterialHandler) ListPendingDelivery(w http.ResponseWriter, r *http.Request) {
	materials, err := h.Repo.ListPendingDelivery(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, materials)
}

// TopByCost ranks material orders by total cost. ?limit= is clamped
// to 1..50 inside the repository.
func (h *MaterialHandler) TopByCost(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			utils.ErrorMessage(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	summaries, err := h.Repo.TopByCost(r.Context(), limit)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summaries)
}

// UpdateMaterial modifies an existing material order
func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid material ID")
		return
	}
	var req models.CreateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	material, err := h.Repo.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, material)
}

// MarkOrdered stamps the order date and expected delivery
func (h *MaterialHandler) MarkOrdered(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid material ID")
		return
	}
	var body struct {
		ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	material, err := h.Repo.MarkOrdered(r.Context(), id, timeutil.Today(), body.ExpectedDeliveryDate)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, material)
}

// MarkDelivered records the delivery of a material order
func (h *MaterialHandler) MarkDelivered(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid material ID")
		return
	}
	material, err := h.Repo.MarkDelivered(r.Context(), id, timeutil.Today())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, material)
}

// DeleteMaterial removes a material order
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid material ID")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusNoContent, nil)
}
