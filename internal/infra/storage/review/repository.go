package review

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	"github.com/m04kA/SMC-BackofficeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BackofficeService/pkg/psqlbuilder"
)

var reviewColumns = []string{
	"id",
	"booking_id",
	"customer_id",
	"staff_id",
	"team_id",
	"rating",
	"comment",
	"created_at",
}

// uniqueViolation код ошибки PostgreSQL для нарушения уникального ограничения
const uniqueViolation = "23505"

// Repository репозиторий для работы с отзывами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория отзывов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый отзыв. На одно бронирование допускается один отзыв.
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reviews").
		Columns("booking_id", "customer_id", "staff_id", "team_id", "rating", "comment").
		Values(review.BookingID, review.CustomerID, review.StaffID, review.TeamID, review.Rating, review.Comment).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&review.ID, &createdAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	review.CreatedAt = createdAt.Time

	return review, nil
}

// GetByStaffOrTeams получает отзывы, относящиеся к сотруднику напрямую или
// к любой из указанных команд. Фильтрация по периодам членства выполняется
// на уровне сервиса.
func (r *Repository) GetByStaffOrTeams(ctx context.Context, staffID int64, teamIDs []int64) ([]*domain.Review, error) {
	assignment := squirrel.Or{squirrel.Eq{"staff_id": staffID}}
	if len(teamIDs) > 0 {
		assignment = append(assignment, squirrel.Eq{"team_id": teamIDs})
	}
	return r.list(ctx, assignment)
}

// GetByTeam получает все отзывы, относящиеся к команде
func (r *Repository) GetByTeam(ctx context.Context, teamID int64) ([]*domain.Review, error) {
	return r.list(ctx, squirrel.Eq{"team_id": teamID})
}

func (r *Repository) list(ctx context.Context, where squirrel.Sqlizer) ([]*domain.Review, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reviewColumns...).
		From("reviews").
		Where(where).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		var review domain.Review
		var createdAt sql.NullTime

		err := rows.Scan(
			&review.ID,
			&review.BookingID,
			&review.CustomerID,
			&review.StaffID,
			&review.TeamID,
			&review.Rating,
			&review.Comment,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}

		review.CreatedAt = createdAt.Time
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return reviews, nil
}
