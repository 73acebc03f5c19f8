package teams

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BackofficeService/internal/api/handlers"
	reviewsService "github.com/m04kA/SMC-BackofficeService/internal/service/reviews"
	teamsService "github.com/m04kA/SMC-BackofficeService/internal/service/teams"
	"github.com/m04kA/SMC-BackofficeService/internal/service/teams/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTeamID      = "некорректный ID команды"
	msgInvalidStaffID     = "некорректный ID сотрудника"
	msgTeamNotFound       = "команда не найдена"
	msgStaffNotFound      = "сотрудник не найден"
	msgAlreadyMember      = "у сотрудника уже есть открытое членство в этой команде"
	msgMembershipNotFound = "открытое членство не найдено"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service TeamService
	reviews ReviewService
	logger  Logger
}

func NewHandler(service TeamService, reviews ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		reviews: reviews,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/teams
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTeamRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /teams - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	team, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, r, 0, err)
		return
	}

	h.logger.Info("POST /teams - Team created: team_id=%d", team.ID)
	handlers.RespondJSON(w, http.StatusCreated, team)
}

// HandleGet GET /api/v1/teams/{teamId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}

	team, err := h.service.GetByID(r.Context(), teamID)
	if err != nil {
		h.respondServiceError(w, r, teamID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, team)
}

// HandleList GET /api/v1/teams
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("activeOnly") == "true"

	result, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.respondServiceError(w, r, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT /api/v1/teams/{teamId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}

	var req models.UpdateTeamRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /teams/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	team, err := h.service.Update(r.Context(), teamID, &req)
	if err != nil {
		h.respondServiceError(w, r, teamID, err)
		return
	}

	h.logger.Info("PUT /teams/{id} - Team updated: team_id=%d", teamID)
	handlers.RespondJSON(w, http.StatusOK, team)
}

// HandleDeactivate DELETE /api/v1/teams/{teamId}
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}

	if err := h.service.Deactivate(r.Context(), teamID); err != nil {
		h.respondServiceError(w, r, teamID, err)
		return
	}

	h.logger.Info("DELETE /teams/{id} - Team deactivated: team_id=%d", teamID)
	handlers.RespondNoContent(w)
}

// HandleAddMember POST /api/v1/teams/{teamId}/members
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}

	var req models.AddMemberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /teams/{id}/members - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	membership, err := h.service.AddMember(r.Context(), teamID, &req)
	if err != nil {
		h.respondServiceError(w, r, teamID, err)
		return
	}

	h.logger.Info("POST /teams/{id}/members - Member added: team_id=%d, staff_id=%d", teamID, req.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, membership)
}

// HandleRemoveMember POST /api/v1/teams/{teamId}/members/remove
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}

	var req models.RemoveMemberRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /teams/{id}/members/remove - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.RemoveMember(r.Context(), teamID, &req); err != nil {
		h.respondServiceError(w, r, teamID, err)
		return
	}

	h.logger.Info("POST /teams/{id}/members/remove - Member removed: team_id=%d, staff_id=%d", teamID, req.StaffID)
	handlers.RespondNoContent(w)
}

// HandleMembers GET /api/v1/teams/{teamId}/members
func (h *Handler) HandleMembers(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := &models.ListMembersRequest{
		IncludeHistory: query.Get("history") == "true",
	}
	if value := query.Get("at"); value != "" {
		req.At = &value
	}

	result, err := h.service.GetMembers(r.Context(), teamID, req)
	if err != nil {
		h.respondServiceError(w, r, teamID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleStaffMemberships GET /api/v1/staff/{staffId}/memberships
func (h *Handler) HandleStaffMemberships(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/memberships - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	result, err := h.service.GetStaffMemberships(r.Context(), staffID)
	if err != nil {
		h.respondServiceError(w, r, 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleReviews GET /api/v1/teams/{teamId}/reviews
func (h *Handler) HandleReviews(w http.ResponseWriter, r *http.Request) {
	teamID, ok := h.teamID(w, r)
	if !ok {
		return
	}

	result, err := h.reviews.ListByTeam(r.Context(), teamID)
	if err != nil {
		switch {
		case errors.Is(err, reviewsService.ErrTeamNotFound):
			handlers.RespondNotFound(w, msgTeamNotFound)
		case errors.Is(err, reviewsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		default:
			h.logger.Error("GET /teams/{id}/reviews - Failed to list reviews: team_id=%d, error=%v", teamID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, r *http.Request, teamID int64, err error) {
	switch {
	case errors.Is(err, teamsService.ErrTeamNotFound):
		handlers.RespondNotFound(w, msgTeamNotFound)
	case errors.Is(err, teamsService.ErrStaffNotFound):
		handlers.RespondNotFound(w, msgStaffNotFound)
	case errors.Is(err, teamsService.ErrAlreadyMember):
		handlers.RespondConflict(w, msgAlreadyMember)
	case errors.Is(err, teamsService.ErrMembershipNotFound):
		handlers.RespondNotFound(w, msgMembershipNotFound)
	case errors.Is(err, teamsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)
	default:
		h.logger.Error("%s %s - Team service error: team_id=%d, error=%v", r.Method, r.URL.Path, teamID, err)
		handlers.RespondInternalError(w)
	}
}

func (h *Handler) teamID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)
	teamID, err := strconv.ParseInt(vars["teamId"], 10, 64)
	if err != nil {
		h.logger.Warn("%s %s - Invalid team ID: %v", r.Method, r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidTeamID)
		return 0, false
	}
	return teamID, true
}
