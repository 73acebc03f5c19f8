package teams

import (
	"context"

	reviewModels "github.com/m04kA/SMC-BackofficeService/internal/service/reviews/models"
	"github.com/m04kA/SMC-BackofficeService/internal/service/teams/models"
)

type TeamService interface {
	Create(ctx context.Context, req *models.CreateTeamRequest) (*models.TeamResponse, error)
	GetByID(ctx context.Context, id int64) (*models.TeamResponse, error)
	List(ctx context.Context, activeOnly bool) (*models.TeamListResponse, error)
	Update(ctx context.Context, id int64, req *models.UpdateTeamRequest) (*models.TeamResponse, error)
	Deactivate(ctx context.Context, id int64) error
	AddMember(ctx context.Context, teamID int64, req *models.AddMemberRequest) (*models.MembershipResponse, error)
	RemoveMember(ctx context.Context, teamID int64, req *models.RemoveMemberRequest) error
	GetMembers(ctx context.Context, teamID int64, req *models.ListMembersRequest) (*models.MembershipListResponse, error)
	GetStaffMemberships(ctx context.Context, staffID int64) (*models.MembershipListResponse, error)
}

type ReviewService interface {
	ListByTeam(ctx context.Context, teamID int64) (*reviewModels.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
