package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BackofficeService/internal/api/handlers"
	reportsService "github.com/m04kA/SMC-BackofficeService/internal/service/reports"
	"github.com/m04kA/SMC-BackofficeService/internal/service/reports/models"
)

const (
	msgInvalidPeriod = "некорректный период отчёта, ожидается startDate и endDate в формате YYYY-MM-DD"
	msgInvalidInput  = "некорректные входные данные"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleDashboard GET /api/v1/reports/dashboard
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	req := periodFromQuery(r)

	result, err := h.service.Dashboard(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleRevenue GET /api/v1/reports/revenue
func (h *Handler) HandleRevenue(w http.ResponseWriter, r *http.Request) {
	req := &models.RevenueReportRequest{
		PeriodRequest: *periodFromQuery(r),
		GroupBy:       r.URL.Query().Get("groupBy"),
	}

	result, err := h.service.RevenueReport(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleTopPackages GET /api/v1/reports/top-packages
func (h *Handler) HandleTopPackages(w http.ResponseWriter, r *http.Request) {
	req := &models.TopPackagesRequest{PeriodRequest: *periodFromQuery(r)}
	if value := r.URL.Query().Get("limit"); value != "" {
		limit, err := strconv.Atoi(value)
		if err != nil {
			h.logger.Warn("GET /reports/top-packages - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.TopPackages(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleExport GET /api/v1/reports/export
func (h *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	req := periodFromQuery(r)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition",
		`attachment; filename="bookings_`+req.StartDate+`_`+req.EndDate+`.csv"`)

	if err := h.service.ExportBookingsCSV(r.Context(), req, w); err != nil {
		// Заголовки уже могли уйти клиенту, отдаём ошибку только в лог
		h.logger.Error("GET /reports/export - Failed to export bookings: %v", err)
		return
	}

	h.logger.Info("GET /reports/export - Bookings exported: period=%s..%s", req.StartDate, req.EndDate)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reportsService.ErrInvalidPeriod):
		handlers.RespondBadRequest(w, msgInvalidPeriod)
	case errors.Is(err, reportsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s %s - Report service error: %v", r.Method, r.URL.Path, err)
		handlers.RespondInternalError(w)
	}
}

func periodFromQuery(r *http.Request) *models.PeriodRequest {
	query := r.URL.Query()
	return &models.PeriodRequest{
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	}
}
