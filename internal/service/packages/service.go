package packages

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	packageRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/servicepackage"
	"github.com/m04kA/SMC-BackofficeService/internal/service/packages/models"
)

// Service сервис для работы с пакетами услуг
type Service struct {
	packageRepo PackageRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса пакетов услуг
func NewService(
	packageRepo PackageRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		packageRepo: packageRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает новый пакет услуг. Для V2 пакетов тарифы валидируются
// на корректность диапазонов и отсутствие пересечений внутри частоты,
// после чего пакет и тарифы сохраняются в одной транзакции.
func (s *Service) Create(ctx context.Context, req *models.CreatePackageRequest) (*models.PackageResponse, error) {
	s.logger.Info("Create: creating package name=%s version=%s", req.Name, req.Version)

	pkg, tiers, err := s.buildPackage(req)
	if err != nil {
		return nil, err
	}

	var created *domain.ServicePackage
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		var txErr error
		created, txErr = s.packageRepo.Create(ctx, pkg)
		if txErr != nil {
			return txErr
		}
		if len(tiers) > 0 {
			return s.packageRepo.ReplaceTiers(ctx, created.ID, tiers)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	created.Tiers = tiers

	s.logger.Info("Create: successfully created package id=%d with %d tiers", created.ID, len(tiers))
	return models.FromDomainPackage(created), nil
}

// GetByID получает пакет услуг по ID вместе с тарифами
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PackageResponse, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			s.logger.Warn("GetByID: package id=%d not found", id)
			return nil, ErrPackageNotFound
		}
		s.logger.Error("GetByID: repository error for package id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPackage(pkg), nil
}

// List получает пакеты услуг с фильтрацией
func (s *Service) List(ctx context.Context, req *models.ListPackagesRequest) (*models.PackageListResponse, error) {
	filter := domain.PackageFilter{ActiveOnly: req.ActiveOnly}

	if req.ServiceType != nil {
		serviceType, err := models.ToDomainServiceType(*req.ServiceType)
		if err != nil {
			s.logger.Warn("List: invalid service type=%s", *req.ServiceType)
			return nil, fmt.Errorf("%w: invalid service type", ErrInvalidInput)
		}
		filter.ServiceType = &serviceType
	}
	if req.Version != nil {
		version, err := models.ToDomainVersion(*req.Version)
		if err != nil {
			s.logger.Warn("List: invalid version=%s", *req.Version)
			return nil, fmt.Errorf("%w: invalid version", ErrInvalidInput)
		}
		filter.Version = &version
	}

	packages, err := s.packageRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d packages", len(packages))
	return models.FromDomainPackageList(packages), nil
}

// Update обновляет пакет услуг. Передача Tiers полностью заменяет набор
// тарифов; обновление полей и замена тарифов выполняются в одной транзакции.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdatePackageRequest) (*models.PackageResponse, error) {
	s.logger.Info("Update: updating package id=%d", id)

	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			s.logger.Warn("Update: package id=%d not found", id)
			return nil, ErrPackageNotFound
		}
		s.logger.Error("Update: repository error for package id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		pkg.Name = *req.Name
	}
	if req.Description != nil {
		pkg.Description = req.Description
	}
	if req.BasePrice != nil {
		if *req.BasePrice < 0 {
			return nil, fmt.Errorf("%w: base price cannot be negative", ErrInvalidInput)
		}
		pkg.BasePrice = *req.BasePrice
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
		pkg.DurationMinutes = *req.DurationMinutes
	}

	var newTiers []domain.PriceTier
	if req.Tiers != nil {
		if !pkg.IsTiered() {
			s.logger.Warn("Update: tiers passed for non-tiered package id=%d", id)
			return nil, fmt.Errorf("%w: tiers are only supported for v2 packages", ErrInvalidInput)
		}
		newTiers, err = models.ToDomainTiers(*req.Tiers)
		if err != nil {
			s.logger.Warn("Update: invalid tiers for package id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := domain.ValidateTiers(newTiers); err != nil {
			s.logger.Warn("Update: tier validation failed for package id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidTiers, err)
		}
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if txErr := s.packageRepo.Update(ctx, pkg); txErr != nil {
			return txErr
		}
		if req.Tiers != nil {
			return s.packageRepo.ReplaceTiers(ctx, pkg.ID, newTiers)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		s.logger.Error("Update: repository error for package id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if req.Tiers != nil {
		pkg.Tiers = newTiers
	}

	s.logger.Info("Update: successfully updated package id=%d", id)
	return models.FromDomainPackage(pkg), nil
}

// Deactivate помечает пакет неактивным. Существующие бронирования
// сохраняют снятую с пакета цену и название.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	s.logger.Info("Deactivate: deactivating package id=%d", id)

	if err := s.packageRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			s.logger.Warn("Deactivate: package id=%d not found", id)
			return ErrPackageNotFound
		}
		s.logger.Error("Deactivate: repository error for package id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated package id=%d", id)
	return nil
}

// Quote рассчитывает цену пакета для указанной площади и частоты.
// V1 пакеты всегда возвращают базовую цену. Для V2 без подходящего
// тарифа базовая цена возвращается как fallback.
func (s *Service) Quote(ctx context.Context, id int64, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			s.logger.Warn("Quote: package id=%d not found", id)
			return nil, ErrPackageNotFound
		}
		s.logger.Error("Quote: repository error for package id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Quote - repository error: %v", ErrInternal, err)
	}

	var freq *domain.Frequency
	if req.Frequency != nil {
		f, err := models.ToDomainFrequency(*req.Frequency)
		if err != nil {
			s.logger.Warn("Quote: invalid frequency=%s for package id=%d", *req.Frequency, id)
			return nil, fmt.Errorf("%w: invalid frequency", ErrInvalidInput)
		}
		freq = &f
	}

	price, tier := pkg.Quote(req.Area, freq)

	resp := &models.QuoteResponse{
		PackageID: pkg.ID,
		Price:     price,
		Matched:   tier != nil,
	}
	if tier != nil {
		tierResp := models.FromDomainTier(*tier)
		resp.Tier = &tierResp
	}

	s.logger.Info("Quote: package id=%d price=%.2f matched=%t", id, price, resp.Matched)
	return resp, nil
}

// buildPackage валидирует запрос на создание и собирает domain модель
func (s *Service) buildPackage(req *models.CreatePackageRequest) (*domain.ServicePackage, []domain.PriceTier, error) {
	if req.Name == "" {
		return nil, nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.BasePrice < 0 {
		return nil, nil, fmt.Errorf("%w: base price cannot be negative", ErrInvalidInput)
	}

	serviceType, err := models.ToDomainServiceType(req.ServiceType)
	if err != nil {
		s.logger.Warn("buildPackage: invalid service type=%s", req.ServiceType)
		return nil, nil, fmt.Errorf("%w: invalid service type", ErrInvalidInput)
	}
	version, err := models.ToDomainVersion(req.Version)
	if err != nil {
		s.logger.Warn("buildPackage: invalid version=%s", req.Version)
		return nil, nil, fmt.Errorf("%w: invalid version", ErrInvalidInput)
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = domain.DefaultDurationMinutes
	}
	if durationMinutes < domain.MinDurationMinutes || durationMinutes > domain.MaxDurationMinutes {
		return nil, nil, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	var tiers []domain.PriceTier
	if version == domain.PackageV2 {
		tiers, err = models.ToDomainTiers(req.Tiers)
		if err != nil {
			s.logger.Warn("buildPackage: invalid tiers: %v", err)
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if err := domain.ValidateTiers(tiers); err != nil {
			s.logger.Warn("buildPackage: tier validation failed: %v", err)
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidTiers, err)
		}
	} else if len(req.Tiers) > 0 {
		return nil, nil, fmt.Errorf("%w: tiers are only supported for v2 packages", ErrInvalidInput)
	}

	pkg := &domain.ServicePackage{
		Name:            req.Name,
		Description:     req.Description,
		ServiceType:     serviceType,
		Version:         version,
		BasePrice:       req.BasePrice,
		DurationMinutes: durationMinutes,
		IsActive:        true,
	}

	return pkg, tiers, nil
}
