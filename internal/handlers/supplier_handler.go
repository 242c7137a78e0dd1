package handlers

import (
	"encoding/json"
	"net/http"

	"construct-backend/internal/models"
	"construct-backend/internal/repositories"
	"construct-backend/pkg/utils"
)

type SupplierHandler struct {
	Repo *repositories.SupplierRepository
}

func NewSupplierHandler(repo *repositories.SupplierRepository) *SupplierHandler {
	return &SupplierHandler{Repo: repo}
}

// CreateSupplier registers a materials supplier
func (h *SupplierHandler) CreateSupplier(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		utils.ErrorMessage(w, http.StatusBadRequest, "name is required")
		return
	}
	supplier, err := h.Repo.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, supplier)
}

// GetSupplier retrieves a supplier by ID
func (h *SupplierHandler) GetSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}
	supplier, err := h.Repo.Get(r.Context(), id)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, supplier)
}

// ListSuppliers returns all suppliers
func (h *SupplierHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.Repo.List(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, suppliers)
}

// UpdateSupplier modifies an existing supplier
func (h *SupplierHandler) UpdateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}
	var req models.CreateSupplierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	supplier, err := h.Repo.Update(r.Context(), id, &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, supplier)
}

// SetSupplierActive toggles a supplier's active flag
func (h *SupplierHandler) SetSupplierActive(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}
	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	supplier, err := h.Repo.SetActive(r.Context(), id, body.IsActive)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, supplier)
}

// DeleteSupplier removes a supplier
func (h *SupplierHandler) DeleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.ErrorMessage(w, http.StatusBadRequest, "Invalid supplier ID")
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusNoContent, nil)
}
