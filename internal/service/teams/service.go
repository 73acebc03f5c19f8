package teams

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/internal/service/teams/models"
)

// Service сервис для работы с командами и членством
type Service struct {
	teamRepo  TeamRepository
	staffRepo StaffRepository
	logger    Logger
	now       func() time.Time
}

// NewService создает новый экземпляр сервиса команд
func NewService(
	teamRepo TeamRepository,
	staffRepo StaffRepository,
	logger Logger,
) *Service {
	return &Service{
		teamRepo:  teamRepo,
		staffRepo: staffRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// Create создает новую команду
func (s *Service) Create(ctx context.Context, req *models.CreateTeamRequest) (*models.TeamResponse, error) {
	s.logger.Info("Create: creating team name=%s", req.Name)

	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	team := &domain.Team{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	created, err := s.teamRepo.Create(ctx, team)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created team id=%d", created.ID)
	return models.FromDomainTeam(created), nil
}

// GetByID получает команду по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.TeamResponse, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			s.logger.Warn("GetByID: team id=%d not found", id)
			return nil, ErrTeamNotFound
		}
		s.logger.Error("GetByID: repository error for team id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainTeam(team), nil
}

// List получает команды
func (s *Service) List(ctx context.Context, activeOnly bool) (*models.TeamListResponse, error) {
	teams, err := s.teamRepo.List(ctx, activeOnly)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d teams", len(teams))
	return models.FromDomainTeamList(teams), nil
}

// Update обновляет данные команды
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTeamRequest) (*models.TeamResponse, error) {
	s.logger.Info("Update: updating team id=%d", id)

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			s.logger.Warn("Update: team id=%d not found", id)
			return nil, ErrTeamNotFound
		}
		s.logger.Error("Update: repository error for team id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		team.Name = *req.Name
	}
	if req.Description != nil {
		team.Description = req.Description
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("Update: repository error for team id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated team id=%d", id)
	return models.FromDomainTeam(team), nil
}

// Deactivate помечает команду неактивной. История членства и привязанные
// бронирования сохраняются.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating team id=%d", id)

	if err := s.teamRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			s.logger.Warn("Deactivate: team id=%d not found", id)
			return ErrTeamNotFound
		}
		s.logger.Error("Deactivate: repository error for team id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated team id=%d", id)
	return nil
}

// AddMember открывает новое членство сотрудника в команде.
// Сотрудник может состоять в команде несколько раз в разные периоды,
// но иметь не более одного открытого членства на команду.
func (s *Service) AddMember(ctx context.Context, teamID int64, req *models.AddMemberRequest) (*models.MembershipResponse, error) {
	s.logger.Info("AddMember: adding staff=%d to team=%d", req.StaffID, teamID)

	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("AddMember: repository error for team id=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: AddMember - repository error: %v", ErrInternal, err)
	}

	if _, err := s.staffRepo.GetByID(ctx, req.StaffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("AddMember: repository error for staff id=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: AddMember - repository error: %v", ErrInternal, err)
	}

	joinedAt, err := s.parseDateOrNow(req.JoinedAt)
	if err != nil {
		s.logger.Warn("AddMember: invalid joinedAt for staff=%d: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: invalid joinedAt date", ErrInvalidInput)
	}

	membership := &domain.TeamMembership{
		TeamID:   teamID,
		StaffID:  req.StaffID,
		JoinedAt: joinedAt,
	}

	created, err := s.teamRepo.AddMembership(ctx, membership)
	if err != nil {
		if errors.Is(err, teamRepo.ErrOpenMembershipExists) {
			s.logger.Warn("AddMember: staff=%d already has open membership in team=%d", req.StaffID, teamID)
			return nil, ErrAlreadyMember
		}
		s.logger.Error("AddMember: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddMember - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddMember: staff=%d joined team=%d at %s", req.StaffID, teamID, joinedAt.Format(domain.DateFormat))
	resp := models.FromDomainMembership(created)
	return &resp, nil
}

// RemoveMember закрывает открытое членство сотрудника в команде.
// Запись не удаляется: период фиксируется датой выхода, история
// бронирований за период членства остаётся видимой сотруднику.
func (s *Service) RemoveMember(ctx context.Context, teamID int64, req *models.RemoveMemberRequest) error {
	s.logger.Info("RemoveMember: removing staff=%d from team=%d", req.StaffID, teamID)

	leftAt, err := s.parseDateOrNow(req.LeftAt)
	if err != nil {
		s.logger.Warn("RemoveMember: invalid leftAt for staff=%d: %v", req.StaffID, err)
		return fmt.Errorf("%w: invalid leftAt date", ErrInvalidInput)
	}

	// Дата выхода должна быть позже даты вступления открытого периода,
	// иначе период получится пустым или вывернутым
	memberships, err := s.teamRepo.GetMembershipsByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("RemoveMember: repository error for team id=%d: %v", teamID, err)
		return fmt.Errorf("%w: RemoveMember - repository error: %v", ErrInternal, err)
	}
	for _, m := range memberships {
		if m.StaffID == req.StaffID && m.IsOpen() && !leftAt.After(m.JoinedAt) {
			s.logger.Warn("RemoveMember: leftAt %s not after joinedAt %s for staff=%d in team=%d",
				leftAt.Format(domain.DateFormat), m.JoinedAt.Format(domain.DateFormat), req.StaffID, teamID)
			return fmt.Errorf("%w: leftAt must be after joinedAt", ErrInvalidInput)
		}
	}

	if err := s.teamRepo.CloseMembership(ctx, teamID, req.StaffID, leftAt); err != nil {
		if errors.Is(err, teamRepo.ErrMembershipNotFound) {
			s.logger.Warn("RemoveMember: no open membership for staff=%d in team=%d", req.StaffID, teamID)
			return ErrMembershipNotFound
		}
		s.logger.Error("RemoveMember: repository error: %v", err)
		return fmt.Errorf("%w: RemoveMember - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveMember: staff=%d left team=%d at %s", req.StaffID, teamID, leftAt.Format(domain.DateFormat))
	return nil
}

// GetMembers получает состав команды. По умолчанию возвращаются периоды,
// активные на текущий день; req.At задает другую дату среза,
// req.IncludeHistory возвращает все периоды, включая закрытые.
func (s *Service) GetMembers(ctx context.Context, teamID int64, req *models.ListMembersRequest) (*models.MembershipListResponse, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, teamRepo.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		s.logger.Error("GetMembers: repository error for team id=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: GetMembers - repository error: %v", ErrInternal, err)
	}

	memberships, err := s.teamRepo.GetMembershipsByTeam(ctx, teamID)
	if err != nil {
		s.logger.Error("GetMembers: repository error for team id=%d: %v", teamID, err)
		return nil, fmt.Errorf("%w: GetMembers - repository error: %v", ErrInternal, err)
	}

	if req == nil {
		req = &models.ListMembersRequest{}
	}
	if !req.IncludeHistory {
		at, err := s.parseDateOrNow(req.At)
		if err != nil {
			s.logger.Warn("GetMembers: invalid at date for team=%d: %v", teamID, err)
			return nil, fmt.Errorf("%w: invalid at date", ErrInvalidInput)
		}
		active := make([]*domain.TeamMembership, 0, len(memberships))
		for _, m := range memberships {
			if m.Period().Contains(at) {
				active = append(active, m)
			}
		}
		memberships = active
	}

	s.logger.Info("GetMembers: fetched %d membership periods for team=%d", len(memberships), teamID)
	return models.FromDomainMembershipList(memberships), nil
}

// GetStaffMemberships получает полную историю членства сотрудника по всем командам
func (s *Service) GetStaffMemberships(ctx context.Context, staffID int64) (*models.MembershipListResponse, error) {
	if _, err := s.staffRepo.GetByID(ctx, staffID); err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			return nil, ErrStaffNotFound
		}
		s.logger.Error("GetStaffMemberships: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetStaffMemberships - repository error: %v", ErrInternal, err)
	}

	memberships, err := s.teamRepo.GetMembershipsByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("GetStaffMemberships: repository error for staff id=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetStaffMemberships - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetStaffMemberships: fetched %d membership periods for staff=%d", len(memberships), staffID)
	return models.FromDomainMembershipList(memberships), nil
}

// parseDateOrNow парсит дату "2006-01-02" или возвращает текущий день
func (s *Service) parseDateOrNow(value *string) (time.Time, error) {
	if value == nil {
		now := s.now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(domain.DateFormat, *value)
}
