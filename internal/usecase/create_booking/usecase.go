package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	customerRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/customer"
	packageRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/servicepackage"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	customerRepo CustomerRepository
	packageRepo  PackageRepository
	staffRepo    StaffRepository
	teamRepo     TeamRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	customerRepo CustomerRepository,
	packageRepo PackageRepository,
	staffRepo StaffRepository,
	teamRepo TeamRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		customerRepo: customerRepo,
		packageRepo:  packageRepo,
		staffRepo:    staffRepo,
		teamRepo:     teamRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Создание идёт в сериализуемой транзакции; пересечения с бронированиями
// того же исполнителя не блокируют создание, а возвращаются как
// предупреждения.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, package=%d, date=%s, time=%s, mode=%s",
		req.CustomerID, req.PackageID, req.Date.Format(domain.DateFormat), req.StartTime, req.PriceMode)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем, что дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 3. Получаем клиента
	customer, err := uc.customerRepo.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			uc.logger.Warn("CreateBooking: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("CreateBooking: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	// 4. Получаем пакет услуг
	pkg, err := uc.packageRepo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("CreateBooking: package id=%d not found", req.PackageID)
			return nil, ErrPackageNotFound
		}
		uc.logger.Error("CreateBooking: failed to get package id=%d: %v", req.PackageID, err)
		return nil, fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}
	if !pkg.IsActive {
		uc.logger.Warn("CreateBooking: package id=%d is not active", req.PackageID)
		return nil, ErrPackageInactive
	}

	// 5. Проверяем назначение
	if err := uc.validateAssignment(ctx, req); err != nil {
		return nil, err
	}

	// 6. Рассчитываем цену
	price, err := uc.resolvePrice(req, pkg)
	if err != nil {
		return nil, err
	}

	durationMinutes := pkg.DurationMinutes
	if req.DurationMinutes != nil {
		durationMinutes = *req.DurationMinutes
	}

	var result *domain.Booking
	var warnings []string

	// 7. Создаем бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Забираем бронирования исполнителя на дату с блокировкой (FOR UPDATE)
		if req.StaffID != nil || req.TeamID != nil {
			existing, err := uc.bookingRepo.GetForAssignmentOnDate(txCtx, req.Date, req.StaffID, req.TeamID)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get existing bookings: %v", err)
				return fmt.Errorf("%w: failed to get existing bookings: %v", ErrInternal, err)
			}

			// 7.2. Пересечения не блокируют создание, только предупреждают
			warnings = collectOverlapWarnings(req.Date, req.StartTime, durationMinutes, existing)
			if len(warnings) > 0 {
				uc.logger.Warn("CreateBooking: %d overlap warnings for customer=%d", len(warnings), req.CustomerID)
			}
		}

		// 7.3. Создаем бронирование с денормализацией данных
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			PackageID:       req.PackageID,
			StaffID:         req.StaffID,
			TeamID:          req.TeamID,
			ServiceDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusPending,
			Price:           price,
			PriceMode:       domain.PriceMode(req.PriceMode),
			CustomName:      req.CustomName,
			// Денормализация для истории
			CustomerName: customer.Name,
			PackageName:  pkg.Name,
			Notes:        req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d price=%.2f warnings=%d",
		result.ID, result.Price, len(warnings))

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		PackageID:       result.PackageID,
		StaffID:         result.StaffID,
		TeamID:          result.TeamID,
		Date:            result.ServiceDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Price:           result.Price,
		PriceMode:       string(result.PriceMode),
		CustomName:      result.CustomName,
		CustomerName:    result.CustomerName,
		PackageName:     result.PackageName,
		Notes:           result.Notes,
		Warnings:        warnings,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// validateAssignment проверяет существование и активность исполнителя
func (uc *UseCase) validateAssignment(ctx context.Context, req *Request) error {
	if req.StaffID != nil {
		member, err := uc.staffRepo.GetByID(ctx, *req.StaffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				uc.logger.Warn("CreateBooking: staff id=%d not found", *req.StaffID)
				return ErrStaffNotFound
			}
			uc.logger.Error("CreateBooking: failed to get staff id=%d: %v", *req.StaffID, err)
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !member.IsActive {
			uc.logger.Warn("CreateBooking: staff id=%d is not active", *req.StaffID)
			return ErrStaffInactive
		}
	}

	if req.TeamID != nil {
		team, err := uc.teamRepo.GetByID(ctx, *req.TeamID)
		if err != nil {
			if errors.Is(err, teamRepo.ErrTeamNotFound) {
				uc.logger.Warn("CreateBooking: team id=%d not found", *req.TeamID)
				return ErrTeamNotFound
			}
			uc.logger.Error("CreateBooking: failed to get team id=%d: %v", *req.TeamID, err)
			return fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
		}
		if !team.IsActive {
			uc.logger.Warn("CreateBooking: team id=%d is not active", *req.TeamID)
			return ErrTeamInactive
		}
	}

	return nil
}

// resolvePrice рассчитывает итоговую цену бронирования по режиму
func (uc *UseCase) resolvePrice(req *Request, pkg *domain.ServicePackage) (float64, error) {
	switch domain.PriceMode(req.PriceMode) {
	case domain.PriceModePackage:
		var freq *domain.Frequency
		if req.Frequency != nil {
			f := domain.Frequency(*req.Frequency)
			valid := false
			for _, v := range domain.ValidFrequencies {
				if f == v {
					valid = true
					break
				}
			}
			if !valid {
				uc.logger.Warn("CreateBooking: invalid frequency=%s", *req.Frequency)
				return 0, fmt.Errorf("%w: invalid frequency", ErrInvalidInput)
			}
			freq = &f
		}
		price, tier := pkg.Quote(req.Area, freq)
		if tier != nil {
			uc.logger.Info("CreateBooking: matched tier id=%d price=%.2f", tier.ID, price)
		}
		return price, nil
	case domain.PriceModeOverride, domain.PriceModeCustom:
		// Цена уже проверена в validatePricing
		return *req.Price, nil
	default:
		return 0, fmt.Errorf("%w: unknown price mode %q", ErrInvalidPricing, req.PriceMode)
	}
}
