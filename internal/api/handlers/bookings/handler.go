package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BackofficeService/internal/api/handlers"
	bookingsService "github.com/m04kA/SMC-BackofficeService/internal/service/bookings"
	"github.com/m04kA/SMC-BackofficeService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-BackofficeService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidFilter       = "некорректные параметры фильтра"
	msgBookingNotFound     = "бронирование не найдено"
	msgCustomerNotFound    = "клиент не найден"
	msgPackageNotFound     = "пакет услуг не найден"
	msgPackageInactive     = "пакет услуг неактивен"
	msgStaffNotFound       = "сотрудник не найден"
	msgStaffInactive       = "сотрудник неактивен"
	msgTeamNotFound        = "команда не найдена"
	msgTeamInactive        = "команда неактивна"
	msgAmbiguousAssignment = "бронирование назначается либо сотруднику, либо команде"
	msgInvalidDate         = "дата бронирования не может быть в прошлом"
	msgInvalidPricing      = "некорректные данные ценообразования"
	msgCannotUpdate        = "бронирование нельзя изменить в текущем статусе"
	msgCannotCancel        = "бронирование нельзя отменить в текущем статусе"
	msgInvalidTransition   = "недопустимый переход статуса"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	createUseCase CreateBookingUseCase
	service       BookingService
	logger        Logger
}

func NewHandler(createUseCase CreateBookingUseCase, service BookingService, logger Logger) *Handler {
	return &Handler{
		createUseCase: createUseCase,
		service:       service,
		logger:        logger,
	}
}

// HandleCreate POST /api/v1/bookings
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.createUseCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)
		case errors.Is(err, createBooking.ErrPackageNotFound):
			handlers.RespondNotFound(w, msgPackageNotFound)
		case errors.Is(err, createBooking.ErrPackageInactive):
			handlers.RespondBadRequest(w, msgPackageInactive)
		case errors.Is(err, createBooking.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, createBooking.ErrStaffInactive):
			handlers.RespondBadRequest(w, msgStaffInactive)
		case errors.Is(err, createBooking.ErrTeamNotFound):
			handlers.RespondNotFound(w, msgTeamNotFound)
		case errors.Is(err, createBooking.ErrTeamInactive):
			handlers.RespondBadRequest(w, msgTeamInactive)
		case errors.Is(err, createBooking.ErrAmbiguousAssignment):
			handlers.RespondBadRequest(w, msgAmbiguousAssignment)
		case errors.Is(err, createBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)
		case errors.Is(err, createBooking.ErrInvalidPricing):
			handlers.RespondBadRequest(w, msgInvalidPricing)
		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, customer_id=%d, warnings=%d",
		result.ID, result.CustomerID, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// HandleGet GET /api/v1/bookings/{bookingId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		default:
			h.logger.Error("GET /bookings/{id} - Failed to get booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}

// HandleList GET /api/v1/bookings
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req, err := listRequestFromQuery(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)
		default:
			h.logger.Error("GET /bookings - Failed to list bookings: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/bookings/{bookingId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	var req models.UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), bookingID, &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsService.ErrCannotUpdate):
			handlers.RespondConflict(w, msgCannotUpdate)
		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated: booking_id=%d, warnings=%d", bookingID, len(result.Warnings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdateStatus PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.UpdateStatus(r.Context(), bookingID, &req); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsService.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)
		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to update status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/status - Status updated: booking_id=%d, status=%s", bookingID, req.Status)
	handlers.RespondNoContent(w)
}

// HandleCancel PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	var req models.CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.Cancel(r.Context(), bookingID, &req); err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)
		case errors.Is(err, bookingsService.ErrCannotCancel):
			handlers.RespondConflict(w, msgCannotCancel)
		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled: booking_id=%d", bookingID)
	handlers.RespondNoContent(w)
}

// HandleBulk POST /api/v1/bookings/bulk
func (h *Handler) HandleBulk(w http.ResponseWriter, r *http.Request) {
	var req models.BulkActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/bulk - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.BulkAction(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("POST /bookings/bulk - Failed to run bulk action: action=%s, error=%v", req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/bulk - Bulk action done: action=%s, succeeded=%d, failed=%d",
		req.Action, result.Succeeded, result.Failed)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid booking ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return 0, false
	}
	return bookingID, true
}
