package customers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BackofficeService/internal/api/handlers"
	customersService "github.com/m04kA/SMC-BackofficeService/internal/service/customers"
	"github.com/m04kA/SMC-BackofficeService/internal/service/customers/models"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidCustomerID   = "некорректный ID клиента"
	msgCustomerNotFound    = "клиент не найден"
	msgCustomerHasBookings = "у клиента есть бронирования, удаление невозможно"
	msgInvalidInput        = "некорректные входные данные"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/customers
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	customer, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, 0, err)
		return
	}

	h.logger.Info("POST /customers - Customer created: customer_id=%d", customer.ID)
	handlers.RespondJSON(w, http.StatusCreated, customer)
}

// HandleGet GET /api/v1/customers/{customerId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}

	customer, err := h.service.GetByID(r.Context(), customerID)
	if err != nil {
		h.respondServiceError(w, r, customerID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, customer)
}

// HandleList GET /api/v1/customers
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	req := &models.ListCustomersRequest{}
	if search := r.URL.Query().Get("search"); search != "" {
		req.Search = &search
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/customers/{customerId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}

	var req models.UpdateCustomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /customers/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	customer, err := h.service.Update(r.Context(), customerID, &req)
	if err != nil {
		h.respondServiceError(w, r, customerID, err)
		return
	}

	h.logger.Info("PUT /customers/{id} - Customer updated: customer_id=%d", customerID)
	handlers.RespondJSON(w, http.StatusOK, customer)
}

// HandleDelete DELETE /api/v1/customers/{customerId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	customerID, ok := h.customerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), customerID); err != nil {
		h.respondServiceError(w, r, customerID, err)
		return
	}

	h.logger.Info("DELETE /customers/{id} - Customer deleted: customer_id=%d", customerID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, customerID int64, err error) {
	switch {
	case errors.Is(err, customersService.ErrCustomerNotFound):
		handlers.RespondNotFound(w, msgCustomerNotFound)
	case errors.Is(err, customersService.ErrCustomerHasBookings):
		handlers.RespondConflict(w, msgCustomerHasBookings)
	case errors.Is(err, customersService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s %s - Customer service error: customer_id=%d, error=%v", r.Method, r.URL.Path, customerID, err)
		handlers.RespondInternalError(w)
	}
}

func (h *Handler) customerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	customerID, err := strconv.ParseInt(vars["customerId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid customer ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return 0, false
	}
	return customerID, true
}
