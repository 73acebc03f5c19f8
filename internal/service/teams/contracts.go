package teams

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
)

// TeamRepository интерфейс репозитория команд
type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) (*domain.Team, error)
	GetByID(ctx context.Context, id int64) (*domain.Team, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.Team, error)
	Update(ctx context.Context, team *domain.Team) error
	Deactivate(ctx context.Context, id int64) error
	AddMembership(ctx context.Context, m *domain.TeamMembership) (*domain.TeamMembership, error)
	CloseMembership(ctx context.Context, teamID, staffID int64, leftAt time.Time) error
	GetMembershipsByTeam(ctx context.Context, teamID int64) ([]*domain.TeamMembership, error)
	GetMembershipsByStaff(ctx context.Context, staffID int64) ([]*domain.TeamMembership, error)
}

// StaffRepository интерфейс репозитория сотрудников
type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
