package packages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BackofficeService/internal/api/handlers"
	packagesService "github.com/m04kA/SMC-BackofficeService/internal/service/packages"
	"github.com/m04kA/SMC-BackofficeService/internal/service/packages/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPackageID   = "некорректный ID пакета услуг"
	msgPackageNotFound    = "пакет услуг не найден"
	msgInvalidTiers       = "некорректный набор тарифов"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service PackageService
	logger  Logger
}

func NewHandler(service PackageService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/packages
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /packages - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pkg, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, 0, err)
		return
	}

	h.logger.Info("POST /packages - Package created: package_id=%d, version=%s", pkg.ID, pkg.Version)
	handlers.RespondJSON(w, http.StatusCreated, pkg)
}

// HandleGet GET /api/v1/packages/{packageId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	packageID, ok := h.packageID(w, r)
	if !ok {
		return
	}

	pkg, err := h.service.GetByID(r.Context(), packageID)
	if err != nil {
		h.respondServiceError(w, r, packageID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pkg)
}

// HandleList GET /api/v1/packages
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListPackagesRequest{
		ActiveOnly: query.Get("activeOnly") == "true",
	}
	if serviceType := query.Get("serviceType"); serviceType != "" {
		req.ServiceType = &serviceType
	}
	if version := query.Get("version"); version != "" {
		req.Version = &version
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.respondServiceError(w, r, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/packages/{packageId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	packageID, ok := h.packageID(w, r)
	if !ok {
		return
	}

	var req models.UpdatePackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /packages/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pkg, err := h.service.Update(r.Context(), packageID, &req)
	if err != nil {
		h.respondServiceError(w, r, packageID, err)
		return
	}

	h.logger.Info("PUT /packages/{id} - Package updated: package_id=%d", packageID)
	handlers.RespondJSON(w, http.StatusOK, pkg)
}

// HandleDeactivate DELETE /api/v1/packages/{packageId}
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	packageID, ok := h.packageID(w, r)
	if !ok {
		return
	}

	if err := h.service.Deactivate(r.Context(), packageID); err != nil {
		h.respondServiceError(w, r, packageID, err)
		return
	}

	h.logger.Info("DELETE /packages/{id} - Package deactivated: package_id=%d", packageID)
	handlers.RespondNoContent(w)
}

// HandleQuote POST /api/v1/packages/{packageId}/quote
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	packageID, ok := h.packageID(w, r)
	if !ok {
		return
	}

	var req models.QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /packages/{id}/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	quote, err := h.service.Quote(r.Context(), packageID, &req)
	if err != nil {
		h.respondServiceError(w, r, packageID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, quote)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, packageID int64, err error) {
	switch {
	case errors.Is(err, packagesService.ErrPackageNotFound):
		handlers.RespondNotFound(w, msgPackageNotFound)
	case errors.Is(err, packagesService.ErrInvalidTiers):
		handlers.RespondBadRequest(w, msgInvalidTiers)
	case errors.Is(err, packagesService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s %s - Package service error: package_id=%d, error=%v", r.Method, r.URL.Path, packageID, err)
		handlers.RespondInternalError(w)
	}
}

func (h *Handler) packageID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	packageID, err := strconv.ParseInt(vars["packageId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid package ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return 0, false
	}
	return packageID, true
}
