package teams

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/internal/service/teams/models"
	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
)

type fakeTeamRepo struct {
	teams       map[int64]*domain.Team
	memberships []*domain.TeamMembership
	nextID      int64
}

func newFakeTeamRepo(teams ...*domain.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[int64]*domain.Team), nextID: 100}
	for _, t := range teams {
		repo.teams[t.ID] = t
	}
	return repo
}

func (f *fakeTeamRepo) Create(_ context.Context, team *domain.Team) (*domain.Team, error) {
	f.nextID++
	team.ID = f.nextID
	f.teams[team.ID] = team
	return team, nil
}

func (f *fakeTeamRepo) GetByID(_ context.Context, id int64) (*domain.Team, error) {
	t, ok := f.teams[id]
	if !ok {
		return nil, teamRepo.ErrTeamNotFound
	}
	clone := *t
	return &clone, nil
}

func (f *fakeTeamRepo) List(_ context.Context, activeOnly bool) ([]*domain.Team, error) {
	result := make([]*domain.Team, 0)
	for _, t := range f.teams {
		if activeOnly && !t.IsActive {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}

func (f *fakeTeamRepo) Update(_ context.Context, team *domain.Team) error {
	if _, ok := f.teams[team.ID]; !ok {
		return teamRepo.ErrTeamNotFound
	}
	clone := *team
	f.teams[team.ID] = &clone
	return nil
}

func (f *fakeTeamRepo) Deactivate(_ context.Context, id int64) error {
	t, ok := f.teams[id]
	if !ok {
		return teamRepo.ErrTeamNotFound
	}
	t.IsActive = false
	return nil
}

func (f *fakeTeamRepo) AddMembership(_ context.Context, m *domain.TeamMembership) (*domain.TeamMembership, error) {
	for _, existing := range f.memberships {
		if existing.TeamID == m.TeamID && existing.StaffID == m.StaffID && existing.IsOpen() {
			return nil, teamRepo.ErrOpenMembershipExists
		}
	}
	f.nextID++
	m.ID = f.nextID
	f.memberships = append(f.memberships, m)
	return m, nil
}

func (f *fakeTeamRepo) CloseMembership(_ context.Context, teamID, staffID int64, leftAt time.Time) error {
	for _, m := range f.memberships {
		if m.TeamID == teamID && m.StaffID == staffID && m.IsOpen() {
			m.LeftAt = &leftAt
			return nil
		}
	}
	return teamRepo.ErrMembershipNotFound
}

func (f *fakeTeamRepo) GetMembershipsByTeam(_ context.Context, teamID int64) ([]*domain.TeamMembership, error) {
	result := make([]*domain.TeamMembership, 0)
	for _, m := range f.memberships {
		if m.TeamID == teamID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (f *fakeTeamRepo) GetMembershipsByStaff(_ context.Context, staffID int64) ([]*domain.TeamMembership, error) {
	result := make([]*domain.TeamMembership, 0)
	for _, m := range f.memberships {
		if m.StaffID == staffID {
			result = append(result, m)
		}
	}
	return result, nil
}

type fakeStaffLookup struct {
	staff map[int64]*domain.Staff
}

func (f *fakeStaffLookup) GetByID(_ context.Context, id int64) (*domain.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return s, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeTeam(id int64) *domain.Team {
	return &domain.Team{ID: id, Name: "Alpha", IsActive: true}
}

func staffLookup(ids ...int64) *fakeStaffLookup {
	lookup := &fakeStaffLookup{staff: make(map[int64]*domain.Staff)}
	for _, id := range ids {
		lookup.staff[id] = &domain.Staff{ID: id, Name: "Staff", IsActive: true}
	}
	return lookup
}

func TestService_Create(t *testing.T) {
	svc := NewService(newFakeTeamRepo(), staffLookup(), nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateTeamRequest{Name: "Alpha"})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.True(t, resp.IsActive)
}

func TestService_Create_EmptyName(t *testing.T) {
	svc := NewService(newFakeTeamRepo(), staffLookup(), nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateTeamRequest{})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AddMember(t *testing.T) {
	repo := newFakeTeamRepo(activeTeam(1))
	svc := NewService(repo, staffLookup(5), nopLogger{})

	resp, err := svc.AddMember(context.Background(), 1, &models.AddMemberRequest{
		StaffID:  5,
		JoinedAt: ptr.Ptr("2025-03-01"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.StaffID)
	assert.Equal(t, "2025-03-01", resp.JoinedAt)
	assert.Nil(t, resp.LeftAt)
}

func TestService_AddMember_DuplicateOpenMembership(t *testing.T) {
	repo := newFakeTeamRepo(activeTeam(1))
	svc := NewService(repo, staffLookup(5), nopLogger{})

	_, err := svc.AddMember(context.Background(), 1, &models.AddMemberRequest{StaffID: 5})
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), 1, &models.AddMemberRequest{StaffID: 5})
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestService_AddMember_UnknownStaff(t *testing.T) {
	svc := NewService(newFakeTeamRepo(activeTeam(1)), staffLookup(), nopLogger{})

	_, err := svc.AddMember(context.Background(), 1, &models.AddMemberRequest{StaffID: 404})

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestService_RemoveMember_ClosesPeriod(t *testing.T) {
	repo := newFakeTeamRepo(activeTeam(1))
	svc := NewService(repo, staffLookup(5), nopLogger{})

	_, err := svc.AddMember(context.Background(), 1, &models.AddMemberRequest{
		StaffID:  5,
		JoinedAt: ptr.Ptr("2025-03-01"),
	})
	require.NoError(t, err)

	err = svc.RemoveMember(context.Background(), 1, &models.RemoveMemberRequest{
		StaffID: 5,
		LeftAt:  ptr.Ptr("2025-06-01"),
	})
	require.NoError(t, err)

	members, err := svc.GetMembers(context.Background(), 1, &models.ListMembersRequest{IncludeHistory: true})
	require.NoError(t, err)
	require.Len(t, members.Memberships, 1)
	require.NotNil(t, members.Memberships[0].LeftAt)
	assert.Equal(t, "2025-06-01", *members.Memberships[0].LeftAt)
}

func TestService_RemoveMember_LeftAtNotAfterJoin(t *testing.T) {
	// Дата выхода не позже даты вступления - пользовательская ошибка, не 500
	repo := newFakeTeamRepo(activeTeam(1))
	svc := NewService(repo, staffLookup(5), nopLogger{})

	_, err := svc.AddMember(context.Background(), 1, &models.AddMemberRequest{
		StaffID:  5,
		JoinedAt: ptr.Ptr("2025-03-01"),
	})
	require.NoError(t, err)

	err = svc.RemoveMember(context.Background(), 1, &models.RemoveMemberRequest{
		StaffID: 5,
		LeftAt:  ptr.Ptr("2025-03-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.RemoveMember(context.Background(), 1, &models.RemoveMemberRequest{
		StaffID: 5,
		LeftAt:  ptr.Ptr("2025-02-01"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RemoveMember_NoOpenMembership(t *testing.T) {
	svc := NewService(newFakeTeamRepo(activeTeam(1)), staffLookup(5), nopLogger{})

	err := svc.RemoveMember(context.Background(), 1, &models.RemoveMemberRequest{StaffID: 5})

	assert.ErrorIs(t, err, ErrMembershipNotFound)
}

func TestService_RejoinAfterLeaving(t *testing.T) {
	// Сотрудник может вернуться в команду: появляется второй период
	repo := newFakeTeamRepo(activeTeam(1))
	svc := NewService(repo, staffLookup(5), nopLogger{})

	_, err := svc.AddMember(context.Background(), 1, &models.AddMemberRequest{
		StaffID: 5, JoinedAt: ptr.Ptr("2025-01-01"),
	})
	require.NoError(t, err)

	err = svc.RemoveMember(context.Background(), 1, &models.RemoveMemberRequest{
		StaffID: 5, LeftAt: ptr.Ptr("2025-02-01"),
	})
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), 1, &models.AddMemberRequest{
		StaffID: 5, JoinedAt: ptr.Ptr("2025-05-01"),
	})
	require.NoError(t, err)

	members, err := svc.GetMembers(context.Background(), 1, &models.ListMembersRequest{IncludeHistory: true})
	require.NoError(t, err)
	assert.Len(t, members.Memberships, 2)
}

func TestService_GetMembers_ActiveAtDate(t *testing.T) {
	repo := newFakeTeamRepo(activeTeam(1))
	svc := NewService(repo, staffLookup(5, 6), nopLogger{})

	_, err := svc.AddMember(context.Background(), 1, &models.AddMemberRequest{
		StaffID: 5, JoinedAt: ptr.Ptr("2025-01-01"),
	})
	require.NoError(t, err)
	err = svc.RemoveMember(context.Background(), 1, &models.RemoveMemberRequest{
		StaffID: 5, LeftAt: ptr.Ptr("2025-02-01"),
	})
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), 1, &models.AddMemberRequest{
		StaffID: 6, JoinedAt: ptr.Ptr("2025-01-15"),
	})
	require.NoError(t, err)

	members, err := svc.GetMembers(context.Background(), 1, &models.ListMembersRequest{At: ptr.Ptr("2025-03-01")})
	require.NoError(t, err)
	require.Len(t, members.Memberships, 1)
	assert.Equal(t, int64(6), members.Memberships[0].StaffID)
}

func TestService_GetStaffMemberships(t *testing.T) {
	repo := newFakeTeamRepo(activeTeam(1), &domain.Team{ID: 2, Name: "Beta", IsActive: true})
	svc := NewService(repo, staffLookup(5), nopLogger{})

	_, err := svc.AddMember(context.Background(), 1, &models.AddMemberRequest{
		StaffID: 5, JoinedAt: ptr.Ptr("2025-01-01"),
	})
	require.NoError(t, err)
	_, err = svc.AddMember(context.Background(), 2, &models.AddMemberRequest{
		StaffID: 5, JoinedAt: ptr.Ptr("2025-04-01"),
	})
	require.NoError(t, err)

	history, err := svc.GetStaffMemberships(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, history.Memberships, 2)
}

func TestService_GetStaffMemberships_UnknownStaff(t *testing.T) {
	svc := NewService(newFakeTeamRepo(), staffLookup(), nopLogger{})

	_, err := svc.GetStaffMemberships(context.Background(), 404)

	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestService_Deactivate(t *testing.T) {
	repo := newFakeTeamRepo(activeTeam(1))
	svc := NewService(repo, staffLookup(), nopLogger{})

	err := svc.Deactivate(context.Background(), 1)

	require.NoError(t, err)
	assert.False(t, repo.teams[1].IsActive)
}
