package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"construct-backend/internal/models"
	"construct-backend/internal/services"
	"construct-backend/internal/timeutil"
	"construct-backend/pkg/utils"
)

type DashboardHandler struct {
	Dashboard *services.DashboardService
	Reports   *services.ReportService
}

func NewDashboardHandler(dashboard *services.DashboardService, reports *services.ReportService) *DashboardHandler {
	return &DashboardHandler{Dashboard: dashboard, Reports: reports}
}

// GetStats returns the dashboard snapshot
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

// GetCharts returns every chart series with data
func (h *DashboardHandler) GetCharts(w http.ResponseWriter, r *http.Request) {
	charts, err := h.Dashboard.Charts(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	if charts == nil {
		charts = []*models.ChartSeries{}
	}
	utils.JSON(w, http.StatusOK, charts)
}

// Export renders the dashboard as a downloadable PDF or CSV workbook
func (h *DashboardHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req services.ExportRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Format == "" {
		req.Format = r.URL.Query().Get("format")
	}

	stats, err := h.Dashboard.Stats(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}
	charts, err := h.Dashboard.Charts(r.Context())
	if err != nil {
		utils.Error(w, err)
		return
	}

	stamp := timeutil.Now().Format("20060102")
	switch req.Format {
	case "pdf":
		data, err := h.Reports.BuildPDFReport(stats, charts, req.Images)
		if err != nil {
			utils.Error(w, err)
			return
		}
		utils.Binary(w, "application/pdf", fmt.Sprintf("dashboard_%s.pdf", stamp), data)
	case "csv", "excel":
		data, err := h.Reports.BuildCSVWorkbook(stats, charts)
		if err != nil {
			utils.Error(w, err)
			return
		}
		utils.Binary(w, "application/zip", fmt.Sprintf("dashboard_%s.zip", stamp), data)
	default:
		utils.ErrorMessage(w, http.StatusBadRequest,
			fmt.Sprintf("Unsupported export format %q, expected pdf or csv", req.Format))
	}
}

// GetReports serves the summary, customer and financial reports,
// selected by ?type=
func (h *DashboardHandler) GetReports(w http.ResponseWriter, r *http.Request) {
	report, err := h.Dashboard.Report(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, report)
}
