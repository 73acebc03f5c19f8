package availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/api/handlers"
	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-BackofficeService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
	msgStaffNotFound = "сотрудник не найден"
	msgTeamNotFound  = "команда не найдена"
	msgAmbiguous     = "укажите либо сотрудника, либо команду"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := requestFromQuery(r)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid query params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)
		case errors.Is(err, checkAvailability.ErrTeamNotFound):
			handlers.RespondNotFound(w, msgTeamNotFound)
		case errors.Is(err, checkAvailability.ErrAmbiguousAssignment):
			handlers.RespondBadRequest(w, msgAmbiguous)
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)
		default:
			h.logger.Error("GET /availability - Failed to check availability: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func requestFromQuery(r *http.Request) (*checkAvailability.Request, error) {
	query := r.URL.Query()
	req := &checkAvailability.Request{}

	if value := query.Get("staffId"); value != "" {
		staffID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}
	if value := query.Get("teamId"); value != "" {
		teamID, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, err
		}
		req.TeamID = &teamID
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		return nil, err
	}
	req.Date = date

	startTime, err := types.NewTimeStringFromString(query.Get("startTime"))
	if err != nil {
		return nil, err
	}
	req.StartTime = startTime

	duration, err := strconv.Atoi(query.Get("durationMinutes"))
	if err != nil {
		return nil, err
	}
	req.DurationMinutes = duration

	return req, nil
}
