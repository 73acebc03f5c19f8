package wizard

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BackofficeService/internal/api/handlers"
	"github.com/m04kA/SMC-BackofficeService/internal/api/middleware"
	bookingWizard "github.com/m04kA/SMC-BackofficeService/internal/usecase/booking_wizard"
	createBooking "github.com/m04kA/SMC-BackofficeService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSessionNotFound    = "сессия мастера не найдена или истекла"
	msgCustomerNotFound   = "клиент не найден"
	msgPackageNotFound    = "пакет услуг не найден"
	msgPackageInactive    = "пакет услуг неактивен"
	msgStaffNotFound      = "сотрудник не найден"
	msgStaffInactive      = "сотрудник неактивен"
	msgTeamNotFound       = "команда не найдена"
	msgTeamInactive       = "команда неактивна"
	msgAmbiguous          = "бронирование назначается либо сотруднику, либо команде"
	msgStepIncomplete     = "текущий шаг мастера заполнен не полностью"
	msgNoNextStep         = "мастер уже на последнем шаге"
	msgNoPrevStep         = "мастер уже на первом шаге"
	msgNotOnConfirm       = "отправка доступна только с шага подтверждения"
	msgNeedsConfirm       = "смена режима ценообразования требует подтверждения"
	msgInvalidPricing     = "некорректные данные ценообразования"
	msgInvalidInput       = "некорректные входные данные"
	msgInvalidDate        = "дата бронирования не может быть в прошлом"
)

type Handler struct {
	useCase WizardUseCase
	logger  Logger
}

func NewHandler(useCase WizardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleStart POST /api/v1/wizard
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /wizard - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	session, err := h.useCase.Start(r.Context(), userID)
	if err != nil {
		h.logger.Error("POST /wizard - Failed to start session: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /wizard - Session started: session_id=%s, user_id=%d", session.SessionID, userID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}

// HandleGet GET /api/v1/wizard/{sessionId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.useCase.Get(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, r, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleApplyStep PUT /api/v1/wizard/{sessionId}/step
func (h *Handler) HandleApplyStep(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req ApplyStepRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /wizard/{id}/step - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.useCase.ApplyStep(r.Context(), sessionID, req.ToStepData())
	if err != nil {
		h.respondError(w, r, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleNext POST /api/v1/wizard/{sessionId}/next
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.useCase.Next(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, r, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleBack POST /api/v1/wizard/{sessionId}/back
func (h *Handler) HandleBack(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.useCase.Back(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, r, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandlePricingMode POST /api/v1/wizard/{sessionId}/pricing-mode
func (h *Handler) HandlePricingMode(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req ChangePricingModeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/{id}/pricing-mode - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	session, err := h.useCase.ChangePricingMode(r.Context(), sessionID, req.Mode, req.Confirm)
	if err != nil {
		h.respondError(w, r, sessionID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}

// HandleSubmit POST /api/v1/wizard/{sessionId}/submit
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.useCase.Submit(r.Context(), sessionID)
	if err != nil {
		h.respondError(w, r, sessionID, err)
		return
	}

	h.logger.Info("POST /wizard/{id}/submit - Booking created: session_id=%s, booking_id=%d",
		sessionID, result.Booking.ID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result.Booking))
}

// HandleCancel DELETE /api/v1/wizard/{sessionId}
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.useCase.Cancel(r.Context(), sessionID); err != nil {
		h.respondError(w, r, sessionID, err)
		return
	}

	h.logger.Info("DELETE /wizard/{id} - Session cancelled: session_id=%s", sessionID)
	handlers.RespondNoContent(w)
}

// respondError единая трансляция ошибок мастера в HTTP статусы.
// Ошибки создания бронирования при отправке мастера обрабатываются здесь же.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, sessionID string, err error) {
	switch {
	case errors.Is(err, bookingWizard.ErrSessionNotFound):
		handlers.RespondNotFound(w, msgSessionNotFound)
	case errors.Is(err, bookingWizard.ErrCustomerNotFound):
		handlers.RespondNotFound(w, msgCustomerNotFound)
	case errors.Is(err, bookingWizard.ErrPackageNotFound):
		handlers.RespondNotFound(w, msgPackageNotFound)
	case errors.Is(err, bookingWizard.ErrPackageInactive):
		handlers.RespondBadRequest(w, msgPackageInactive)
	case errors.Is(err, bookingWizard.ErrStaffNotFound):
		handlers.RespondNotFound(w, msgStaffNotFound)
	case errors.Is(err, bookingWizard.ErrStaffInactive):
		handlers.RespondBadRequest(w, msgStaffInactive)
	case errors.Is(err, bookingWizard.ErrTeamNotFound):
		handlers.RespondNotFound(w, msgTeamNotFound)
	case errors.Is(err, bookingWizard.ErrTeamInactive):
		handlers.RespondBadRequest(w, msgTeamInactive)
	case errors.Is(err, bookingWizard.ErrAmbiguousAssignment):
		handlers.RespondBadRequest(w, msgAmbiguous)
	case errors.Is(err, bookingWizard.ErrStepIncomplete):
		handlers.RespondBadRequest(w, msgStepIncomplete)
	case errors.Is(err, bookingWizard.ErrNoNextStep):
		handlers.RespondConflict(w, msgNoNextStep)
	case errors.Is(err, bookingWizard.ErrNoPrevStep):
		handlers.RespondConflict(w, msgNoPrevStep)
	case errors.Is(err, bookingWizard.ErrNotOnConfirmStep):
		handlers.RespondConflict(w, msgNotOnConfirm)
	case errors.Is(err, bookingWizard.ErrPricingChangeNeedsConfirm):
		handlers.RespondConflict(w, msgNeedsConfirm)
	case errors.Is(err, bookingWizard.ErrInvalidPricing):
		handlers.RespondBadRequest(w, msgInvalidPricing)
	case errors.Is(err, bookingWizard.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	// Отправка мастера идёт через путь создания бронирования
	case errors.Is(err, createBooking.ErrInvalidDate):
		handlers.RespondBadRequest(w, msgInvalidDate)
	case errors.Is(err, createBooking.ErrInvalidPricing):
		handlers.RespondBadRequest(w, msgInvalidPricing)
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
	case errors.Is(err, createBooking.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s %s - Wizard error: session_id=%s, error=%v", r.Method, r.URL.Path, sessionID, err)
		handlers.RespondInternalError(w)
	}
}
