package servicepackage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	"github.com/m04kA/SMC-BackofficeService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BackofficeService/pkg/psqlbuilder"
)

var packageColumns = []string{
	"id",
	"name",
	"description",
	"service_type",
	"version",
	"base_price",
	"duration_minutes",
	"is_active",
	"created_at",
	"updated_at",
}

var tierColumns = []string{
	"id",
	"package_id",
	"area_min",
	"area_max",
	"frequency",
	"price",
}

// Repository репозиторий для работы с пакетами услуг и ценовыми тарифами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория пакетов услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый пакет услуг (без тарифов)
func (r *Repository) Create(ctx context.Context, pkg *domain.ServicePackage) (*domain.ServicePackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_packages").
		Columns("name", "description", "service_type", "version", "base_price", "duration_minutes", "is_active").
		Values(pkg.Name, pkg.Description, pkg.ServiceType, pkg.Version, pkg.BasePrice, pkg.DurationMinutes, pkg.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&pkg.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	pkg.CreatedAt = createdAt.Time
	pkg.UpdatedAt = updatedAt.Time

	return pkg, nil
}

// GetByID получает пакет услуг по ID вместе с тарифами (для V2)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServicePackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(packageColumns...).
		From("service_packages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	pkg, err := scanPackage(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan package: %v", ErrScanRow, err)
	}

	if pkg.IsTiered() {
		tiers, err := r.getTiers(ctx, pkg.ID)
		if err != nil {
			return nil, err
		}
		pkg.Tiers = tiers
	}

	return pkg, nil
}

// List получает пакеты услуг с фильтрацией. Тарифы не загружаются.
func (r *Repository) List(ctx context.Context, filter domain.PackageFilter) ([]*domain.ServicePackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(packageColumns...).
		From("service_packages").
		OrderBy("name ASC")

	if filter.ServiceType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_type": *filter.ServiceType})
	}
	if filter.Version != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"version": *filter.Version})
	}
	if filter.ActiveOnly {
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

	packages := make([]*domain.ServicePackage, 0)
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		packages = append(packages, pkg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return packages, nil
}

// Update обновляет данные пакета услуг
func (r *Repository) Update(ctx context.Context, pkg *domain.ServicePackage) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_packages").
		Set("name", pkg.Name).
		Set("description", pkg.Description).
		Set("service_type", pkg.ServiceType).
		Set("version", pkg.Version).
		Set("base_price", pkg.BasePrice).
		Set("duration_minutes", pkg.DurationMinutes).
		Set("is_active", pkg.IsActive).
		Where(squirrel.Eq{"id": pkg.ID}).
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
		return ErrPackageNotFound
	}

	return nil
}

// Deactivate помечает пакет неактивным (мягкое удаление)
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_packages").
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
		return ErrPackageNotFound
	}

	return nil
}

// ReplaceTiers заменяет все тарифы пакета на новый набор.
// Вызывается внутри транзакции, чтобы замена была атомарной.
func (r *Repository) ReplaceTiers(ctx context.Context, packageID int64, tiers []domain.PriceTier) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("package_price_tiers").
		Where(squirrel.Eq{"package_id": packageID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTiers - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTiers - execute delete: %v", ErrExecQuery, err)
	}

	if len(tiers) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("package_price_tiers").
		Columns("package_id", "area_min", "area_max", "frequency", "price")

	for _, tier := range tiers {
		insertBuilder = insertBuilder.Values(packageID, tier.AreaMin, tier.AreaMax, tier.Frequency, tier.Price)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceTiers - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceTiers - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// getTiers получает тарифы пакета, отсортированные по частоте и площади
func (r *Repository) getTiers(ctx context.Context, packageID int64) ([]domain.PriceTier, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tierColumns...).
		From("package_price_tiers").
		Where(squirrel.Eq{"package_id": packageID}).
		OrderBy("frequency ASC, area_min ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getTiers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getTiers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tiers := make([]domain.PriceTier, 0)
	for rows.Next() {
		var tier domain.PriceTier
		err := rows.Scan(
			&tier.ID,
			&tier.PackageID,
			&tier.AreaMin,
			&tier.AreaMax,
			&tier.Frequency,
			&tier.Price,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getTiers - scan row: %v", ErrScanRow, err)
		}
		tiers = append(tiers, tier)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getTiers - rows error: %v", ErrScanRow, err)
	}

	return tiers, nil
}

func scanPackage(row squirrel.RowScanner) (*domain.ServicePackage, error) {
	var pkg domain.ServicePackage
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&pkg.ID,
		&pkg.Name,
		&pkg.Description,
		&pkg.ServiceType,
		&pkg.Version,
		&pkg.BasePrice,
		&pkg.DurationMinutes,
		&pkg.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	pkg.CreatedAt = createdAt.Time
	pkg.UpdatedAt = updatedAt.Time

	return &pkg, nil
}
