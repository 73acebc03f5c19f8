package models

import (
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

// Request модели

// CreateTeamRequest запрос на создание команды
type CreateTeamRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// UpdateTeamRequest запрос на обновление команды
type UpdateTeamRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AddMemberRequest запрос на добавление сотрудника в команду
type AddMemberRequest struct {
	StaffID  int64   `json:"staffId"`
	JoinedAt *string `json:"joinedAt,omitempty"` // "2025-10-15", по умолчанию сегодня
}

// RemoveMemberRequest запрос на вывод сотрудника из команды
type RemoveMemberRequest struct {
	StaffID int64   `json:"staffId"`
	LeftAt  *string `json:"leftAt,omitempty"` // "2025-10-15", по умолчанию сегодня
}

// ListMembersRequest параметры выборки состава команды.
// По умолчанию возвращаются только периоды, активные на текущий день.
type ListMembersRequest struct {
	At             *string // "2025-10-15" - состав на указанную дату
	IncludeHistory bool    // вернуть все периоды, включая закрытые
}

// Response модели

// TeamResponse ответ с данными команды
type TeamResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsActive    bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TeamListResponse ответ со списком команд
type TeamListResponse struct {
	Teams []TeamResponse `json:"teams"`
}

// MembershipResponse один период членства сотрудника в команде
type MembershipResponse struct {
	ID       int64   `json:"id"`
	TeamID   int64   `json:"teamId"`
	StaffID  int64   `json:"staffId"`
	JoinedAt string  `json:"joinedAt"`         // "2025-10-15"
	LeftAt   *string `json:"leftAt,omitempty"` // nil = членство открыто
}

// MembershipListResponse история членства команды
type MembershipListResponse struct {
	Memberships []MembershipResponse `json:"memberships"`
}

// Методы конвертации

// FromDomainTeam конвертирует domain модель в DTO
func FromDomainTeam(t *domain.Team) *TeamResponse {
	if t == nil {
		return nil
	}

	return &TeamResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// FromDomainTeamList конвертирует список domain моделей в DTO
func FromDomainTeamList(teams []*domain.Team) *TeamListResponse {
	resp := &TeamListResponse{
		Teams: make([]TeamResponse, 0, len(teams)),
	}

	for _, team := range teams {
		if teamResp := FromDomainTeam(team); teamResp != nil {
			resp.Teams = append(resp.Teams, *teamResp)
		}
	}

	return resp
}

// FromDomainMembership конвертирует период членства в DTO
func FromDomainMembership(m *domain.TeamMembership) MembershipResponse {
	resp := MembershipResponse{
		ID:       m.ID,
		TeamID:   m.TeamID,
		StaffID:  m.StaffID,
		JoinedAt: m.JoinedAt.Format(domain.DateFormat),
	}

	if m.LeftAt != nil {
		leftStr := m.LeftAt.Format(domain.DateFormat)
		resp.LeftAt = &leftStr
	}

	return resp
}

// FromDomainMembershipList конвертирует историю членства в DTO
func FromDomainMembershipList(memberships []*domain.TeamMembership) *MembershipListResponse {
	resp := &MembershipListResponse{
		Memberships: make([]MembershipResponse, 0, len(memberships)),
	}

	for _, m := range memberships {
		resp.Memberships = append(resp.Memberships, FromDomainMembership(m))
	}

	return resp
}
