package team

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	"github.com/m04kA/SMC-BackofficeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BackofficeService/pkg/psqlbuilder"
)

var teamColumns = []string{
	"id",
	"name",
	"description",
	"is_active",
	"created_at",
	"updated_at",
}

var membershipColumns = []string{
	"id",
	"team_id",
	"staff_id",
	"joined_at",
	"left_at",
	"created_at",
	"updated_at",
}

// uniqueViolation код ошибки PostgreSQL для нарушения уникального индекса
const uniqueViolation = "23505"

// Repository репозиторий для работы с командами и периодами членства
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория команд
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую команду
func (r *Repository) Create(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("teams").
		Columns("name", "description", "is_active").
		Values(team.Name, team.Description, team.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&team.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	team.CreatedAt = createdAt.Time
	team.UpdatedAt = updatedAt.Time

	return team, nil
}

// GetByID получает команду по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(teamColumns...).
		From("teams").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	team, err := scanTeam(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan team: %v", ErrScanRow, err)
	}

	return team, nil
}

// List получает команды, опционально только активные
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(teamColumns...).
		From("teams").
		OrderBy("name ASC")

	if activeOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"is_active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		teams = append(teams, team)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return teams, nil
}

// Update обновляет данные команды
func (r *Repository) Update(ctx context.Context, team *domain.Team) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("teams").
		Set("name", team.Name).
		Set("description", team.Description).
		Set("is_active", team.IsActive).
		Where(squirrel.Eq{"id": team.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// Deactivate помечает команду неактивной (мягкое удаление)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("teams").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// AddMembership открывает новый период членства сотрудника в команде.
// Частичный уникальный индекс гарантирует не более одного открытого
// периода на пару (team, staff).
func (r *Repository) AddMembership(ctx context.Context, m *domain.TeamMembership) (*domain.TeamMembership, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("team_memberships").
		Columns("team_id", "staff_id", "joined_at", "left_at").
		Values(m.TeamID, m.StaffID, m.JoinedAt, m.LeftAt).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddMembership - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &createdAt, &updatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return nil, ErrOpenMembershipExists
		}
		return nil, fmt.Errorf("%w: AddMembership - execute insert: %v", ErrExecQuery, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return m, nil
}

// CloseMembership закрывает открытый период членства сотрудника в команде
func (r *Repository) CloseMembership(ctx context.Context, teamID, staffID int64, leftAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("team_memberships").
		Set("left_at", leftAt).
		Where(squirrel.Eq{"team_id": teamID, "staff_id": staffID}).
		Where(squirrel.Eq{"left_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CloseMembership - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CloseMembership - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CloseMembership - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrMembershipNotFound
	}

	return nil
}

// GetMembershipsByStaff получает все периоды членства сотрудника
func (r *Repository) GetMembershipsByStaff(ctx context.Context, staffID int64) ([]*domain.TeamMembership, error) {
	return r.getMemberships(ctx, squirrel.Eq{"staff_id": staffID})
}

// GetMembershipsByTeam получает все периоды членства команды
func (r *Repository) GetMembershipsByTeam(ctx context.Context, teamID int64) ([]*domain.TeamMembership, error) {
	return r.getMemberships(ctx, squirrel.Eq{"team_id": teamID})
}

func (r *Repository) getMemberships(ctx context.Context, where squirrel.Eq) ([]*domain.TeamMembership, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(membershipColumns...).
		From("team_memberships").
		Where(where).
		OrderBy("joined_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getMemberships - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getMemberships - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	memberships := make([]*domain.TeamMembership, 0)
	for rows.Next() {
		var m domain.TeamMembership
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&m.ID,
			&m.TeamID,
			&m.StaffID,
			&m.JoinedAt,
			&m.LeftAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getMemberships - scan row: %v", ErrScanRow, err)
		}

		m.CreatedAt = createdAt.Time
		m.UpdatedAt = updatedAt.Time

		memberships = append(memberships, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getMemberships - rows error: %v", ErrScanRow, err)
	}

	return memberships, nil
}

func scanTeam(row squirrel.RowScanner) (*domain.Team, error) {
	var team domain.Team
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&team.ID,
		&team.Name,
		&team.Description,
		&team.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	team.CreatedAt = createdAt.Time
	team.UpdatedAt = updatedAt.Time

	return &team, nil
}
