package handlers

import (
	"net/http"

	"construct-backend/internal/health"
	"construct-backend/pkg/utils"
)

type HealthHandler struct {
	Checker *health.HealthChecker
}

func NewHealthHandler(checker *health.HealthChecker) *HealthHandler {
	return &HealthHandler{Checker: checker}
}

// Health reports service and dependency health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.Checker.CheckBasic()
	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// Ready is the readiness probe; it only gates on the database
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.Checker.Ready() {
		utils.ErrorMessage(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
