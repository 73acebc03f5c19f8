package staff

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BackofficeService/internal/api/handlers"
	reviewsService "github.com/m04kA/SMC-BackofficeService/internal/service/reviews"
	staffService "github.com/m04kA/SMC-BackofficeService/internal/service/staff"
	"github.com/m04kA/SMC-BackofficeService/internal/service/staff/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgStaffNotFound      = "сотрудник не найден"
	msgInvalidInput       = "некорректные входные данные"
	msgInvalidFilter      = "некорректные параметры фильтра"
)

type Handler struct {
	service StaffService
	reviews ReviewService
	logger  Logger
}

func NewHandler(service StaffService, reviews ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		reviews: reviews,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/staff
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	member, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, staffService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /staff - Failed to create staff: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff - Staff created: staff_id=%d", member.ID)
	handlers.RespondJSON(w, http.StatusCreated, member)
}

// HandleGet GET /api/v1/staff/{staffId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	staffID, ok := h.staffID(w, r)
	if !ok {
		return
	}

	member, err := h.service.GetByID(r.Context(), staffID)
	if err != nil {
		h.respondServiceError(w, r, staffID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, member)
}

// HandleList GET /api/v1/staff
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListStaffRequest{
		ActiveOnly: query.Get("activeOnly") == "true",
	}
	if role := query.Get("role"); role != "" {
		req.Role = &role
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, staffService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /staff - Failed to list staff: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/staff/{staffId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	staffID, ok := h.staffID(w, r)
	if !ok {
		return
	}

	var req models.UpdateStaffRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /staff/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	member, err := h.service.Update(r.Context(), staffID, &req)
	if err != nil {
		h.respondServiceError(w, r, staffID, err)
		return
	}

	h.logger.Info("PUT /staff/{id} - Staff updated: staff_id=%d", staffID)
	handlers.RespondJSON(w, http.StatusOK, member)
}

// HandleDeactivate DELETE /api/v1/staff/{staffId}
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	staffID, ok := h.staffID(w, r)
	if !ok {
		return
	}

	if err := h.service.Deactivate(r.Context(), staffID); err != nil {
		h.respondServiceError(w, r, staffID, err)
		return
	}

	h.logger.Info("DELETE /staff/{id} - Staff deactivated: staff_id=%d", staffID)
	handlers.RespondNoContent(w)
}

// HandleBookings GET /api/v1/staff/{staffId}/bookings
func (h *Handler) HandleBookings(w http.ResponseWriter, r *http.Request) {
	staffID, ok := h.staffID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetBookings(r.Context(), staffID, bookingsRequestFromQuery(r))
	if err != nil {
		h.respondServiceError(w, r, staffID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleStats GET /api/v1/staff/{staffId}/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	staffID, ok := h.staffID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetStats(r.Context(), staffID, bookingsRequestFromQuery(r))
	if err != nil {
		h.respondServiceError(w, r, staffID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleReviews GET /api/v1/staff/{staffId}/reviews
func (h *Handler) HandleReviews(w http.ResponseWriter, r *http.Request) {
	staffID, ok := h.staffID(w, r)
	if !ok {
		return
	}

	result, err := h.reviews.ListByStaff(r.Context(), staffID)
	if err != nil {
		switch {
		case errors.Is(err, reviewsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("GET /staff/{id}/reviews - Failed to list reviews: staff_id=%d, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, staffID int64, err error) {
	switch {
	case errors.Is(err, staffService.ErrStaffNotFound):
		handlers.RespondNotFound(w, msgStaffNotFound)
	case errors.Is(err, staffService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s %s - Staff service error: staff_id=%d, error=%v", r.Method, r.URL.Path, staffID, err)
		handlers.RespondInternalError(w)
	}
}

func (h *Handler) staffID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid staff ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return 0, false
	}
	return staffID, true
}

func bookingsRequestFromQuery(r *http.Request) *models.StaffBookingsRequest {
	query := r.URL.Query()
	req := &models.StaffBookingsRequest{
		IncludeInactive: query.Get("includeInactive") == "true",
	}
	if start := query.Get("startDate"); start != "" {
		req.StartDate = &start
	}
	if end := query.Get("endDate"); end != "" {
		req.EndDate = &end
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	return req
}
