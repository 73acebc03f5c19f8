package booking_wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	customerRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/customer"
	packageRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/servicepackage"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
	"github.com/m04kA/SMC-BackofficeService/internal/infra/wizardstore"
	"github.com/m04kA/SMC-BackofficeService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

// UseCase use case пошагового мастера создания бронирования.
// Состояние мастера живёт на сервере; отправка идёт через тот же
// транзакционный путь, что и быстрое создание бронирования.
type UseCase struct {
	sessions     SessionStore
	creator      BookingCreator
	customerRepo CustomerRepository
	packageRepo  PackageRepository
	staffRepo    StaffRepository
	teamRepo     TeamRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessions SessionStore,
	creator BookingCreator,
	customerRepo CustomerRepository,
	packageRepo PackageRepository,
	staffRepo StaffRepository,
	teamRepo TeamRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessions:     sessions,
		creator:      creator,
		customerRepo: customerRepo,
		packageRepo:  packageRepo,
		staffRepo:    staffRepo,
		teamRepo:     teamRepo,
		logger:       logger,
	}
}

// Start создает новую сессию мастера на первом шаге
func (uc *UseCase) Start(_ context.Context, createdBy int64) (*SessionResponse, error) {
	if createdBy <= 0 {
		return nil, fmt.Errorf("%w: createdBy must be positive", ErrInvalidInput)
	}

	session := uc.sessions.Create(createdBy)
	uc.logger.Info("BookingWizard: started session id=%s by user=%d", session.ID, createdBy)

	return toSessionResponse(session), nil
}

// Get возвращает текущее состояние сессии мастера
func (uc *UseCase) Get(_ context.Context, sessionID string) (*SessionResponse, error) {
	session, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return toSessionResponse(session), nil
}

// ApplyStep применяет данные текущего шага к черновику. Ссылки на
// сущности (клиент, пакет, исполнитель) проверяются на существование
// и активность в момент применения.
func (uc *UseCase) ApplyStep(ctx context.Context, sessionID string, data *StepData) (*SessionResponse, error) {
	session, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case domain.StepCustomer:
		err = uc.applyCustomerStep(ctx, session, data)
	case domain.StepService:
		err = uc.applyServiceStep(ctx, session, data)
	case domain.StepAssignment:
		err = uc.applyAssignmentStep(ctx, session, data)
	case domain.StepConfirm:
		err = uc.applyConfirmStep(session, data)
	default:
		err = fmt.Errorf("%w: %q", ErrInvalidStep, session.Step)
	}
	if err != nil {
		uc.logger.Warn("BookingWizard: apply step %s failed for session id=%s: %v", session.Step, sessionID, err)
		return nil, err
	}

	uc.sessions.Save(session)
	return toSessionResponse(session), nil
}

// Next переводит сессию на следующий шаг после валидации текущего
func (uc *UseCase) Next(_ context.Context, sessionID string) (*SessionResponse, error) {
	session, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.NextStep(); err != nil {
		return nil, mapDomainError(err)
	}

	uc.sessions.Save(session)
	uc.logger.Info("BookingWizard: session id=%s advanced to step %s", sessionID, session.Step)

	return toSessionResponse(session), nil
}

// Back переводит сессию на предыдущий шаг. Введённые данные сохраняются.
func (uc *UseCase) Back(_ context.Context, sessionID string) (*SessionResponse, error) {
	session, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.PrevStep(); err != nil {
		return nil, mapDomainError(err)
	}

	uc.sessions.Save(session)

	return toSessionResponse(session), nil
}

// ChangePricingMode переключает режим ценообразования черновика.
// Смена режима поверх уже введённой цены требует подтверждения и
// сбрасывает цену.
func (uc *UseCase) ChangePricingMode(_ context.Context, sessionID string, mode string, confirm bool) (*SessionResponse, error) {
	session, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Draft.ChangePricingMode(domain.PriceMode(mode), confirm); err != nil {
		uc.logger.Warn("BookingWizard: pricing mode change to %q failed for session id=%s: %v", mode, sessionID, err)
		return nil, mapDomainError(err)
	}

	uc.sessions.Save(session)
	uc.logger.Info("BookingWizard: session id=%s switched pricing mode to %s", sessionID, mode)

	return toSessionResponse(session), nil
}

// Submit отправляет мастер: финальная валидация всех шагов, создание
// бронирования и удаление сессии. Ошибки создания оставляют сессию
// на месте, чтобы пользователь мог исправить данные.
func (uc *UseCase) Submit(ctx context.Context, sessionID string) (*SubmitResponse, error) {
	session, err := uc.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.CanSubmit(); err != nil {
		uc.logger.Warn("BookingWizard: submit gate failed for session id=%s: %v", sessionID, err)
		return nil, mapDomainError(err)
	}

	req := buildCreateRequest(&session.Draft)

	booking, err := uc.creator.Execute(ctx, req)
	if err != nil {
		uc.logger.Error("BookingWizard: booking creation failed for session id=%s: %v", sessionID, err)
		return nil, err
	}

	uc.sessions.Delete(session.ID)
	uc.logger.Info("BookingWizard: session id=%s submitted, booking id=%d created", sessionID, booking.ID)

	return &SubmitResponse{Booking: booking}, nil
}

// Cancel удаляет сессию мастера без создания бронирования
func (uc *UseCase) Cancel(_ context.Context, sessionID string) error {
	if _, err := uc.getSession(sessionID); err != nil {
		return err
	}

	uc.sessions.Delete(sessionID)
	uc.logger.Info("BookingWizard: session id=%s cancelled", sessionID)

	return nil
}

func (uc *UseCase) getSession(sessionID string) (*domain.WizardSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: sessionID is required", ErrInvalidInput)
	}

	session, err := uc.sessions.Get(sessionID)
	if err != nil {
		if errors.Is(err, wizardstore.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	return session, nil
}

func (uc *UseCase) applyCustomerStep(ctx context.Context, session *domain.WizardSession, data *StepData) error {
	if data.CustomerID == nil {
		return fmt.Errorf("%w: customerID is required", ErrInvalidInput)
	}
	if *data.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if _, err := uc.customerRepo.GetByID(ctx, *data.CustomerID); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	session.Draft.CustomerID = data.CustomerID
	return nil
}

func (uc *UseCase) applyServiceStep(ctx context.Context, session *domain.WizardSession, data *StepData) error {
	draft := &session.Draft

	if data.PackageID != nil {
		if *data.PackageID <= 0 {
			return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
		}
		pkg, err := uc.packageRepo.GetByID(ctx, *data.PackageID)
		if err != nil {
			if errors.Is(err, packageRepo.ErrPackageNotFound) {
				return ErrPackageNotFound
			}
			return fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
		}
		if !pkg.IsActive {
			return ErrPackageInactive
		}
		draft.PackageID = data.PackageID
	}

	if data.Date != nil {
		date, err := time.Parse(domain.DateFormat, *data.Date)
		if err != nil {
			return fmt.Errorf("%w: invalid date format, expected %s", ErrInvalidInput, domain.DateFormat)
		}
		draft.ServiceDate = &date
	}

	if data.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*data.StartTime)
		if err != nil {
			return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
		}
		draft.StartTime = startTime
	}

	if data.DurationMinutes != nil {
		if *data.DurationMinutes < domain.MinDurationMinutes || *data.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
		draft.DurationMinutes = data.DurationMinutes
	}

	if data.Area != nil {
		if *data.Area <= 0 {
			return fmt.Errorf("%w: area must be positive", ErrInvalidInput)
		}
		draft.Area = data.Area
	}

	if data.Frequency != nil {
		freq := domain.Frequency(*data.Frequency)
		valid := false
		for _, f := range domain.ValidFrequencies {
			if freq == f {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("%w: invalid frequency %q", ErrInvalidInput, *data.Frequency)
		}
		draft.Frequency = &freq
	}

	return nil
}

func (uc *UseCase) applyAssignmentStep(ctx context.Context, session *domain.WizardSession, data *StepData) error {
	draft := &session.Draft

	if data.ClearAssignment {
		draft.StaffID = nil
		draft.TeamID = nil
	}

	if data.StaffID != nil && data.TeamID != nil {
		return ErrAmbiguousAssignment
	}

	if data.StaffID != nil {
		member, err := uc.staffRepo.GetByID(ctx, *data.StaffID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				return ErrStaffNotFound
			}
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
		if !member.IsActive {
			return ErrStaffInactive
		}
		// Назначение - вариант: либо сотрудник, либо команда
		draft.StaffID = data.StaffID
		draft.TeamID = nil
	}

	if data.TeamID != nil {
		team, err := uc.teamRepo.GetByID(ctx, *data.TeamID)
		if err != nil {
			if errors.Is(err, teamRepo.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
		}
		if !team.IsActive {
			return ErrTeamInactive
		}
		draft.TeamID = data.TeamID
		draft.StaffID = nil
	}

	return nil
}

func (uc *UseCase) applyConfirmStep(session *domain.WizardSession, data *StepData) error {
	draft := &session.Draft

	if data.Price != nil {
		if draft.PricingMode == domain.PriceModePackage {
			return fmt.Errorf("%w: price is not accepted in package mode", ErrInvalidPricing)
		}
		if *data.Price <= 0 {
			return fmt.Errorf("%w: price must be positive", ErrInvalidPricing)
		}
		draft.Price = data.Price
	}

	if data.CustomName != nil {
		if draft.PricingMode != domain.PriceModeCustom {
			return fmt.Errorf("%w: custom name is only accepted in custom mode", ErrInvalidPricing)
		}
		if *data.CustomName == "" || len(*data.CustomName) > domain.MaxNameLength {
			return fmt.Errorf("%w: invalid custom service name", ErrInvalidPricing)
		}
		draft.CustomName = data.CustomName
	}

	if data.Notes != nil {
		if len(*data.Notes) > domain.MaxNotesLength {
			return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
		}
		draft.Notes = data.Notes
	}

	return nil
}

// buildCreateRequest собирает запрос на создание бронирования из черновика.
// Черновик уже прошёл полную валидацию в CanSubmit.
func buildCreateRequest(draft *domain.WizardDraft) *create_booking.Request {
	req := &create_booking.Request{
		CustomerID:      *draft.CustomerID,
		PackageID:       *draft.PackageID,
		StaffID:         draft.StaffID,
		TeamID:          draft.TeamID,
		Date:            *draft.ServiceDate,
		StartTime:       draft.StartTime,
		DurationMinutes: draft.DurationMinutes,
		PriceMode:       string(draft.PricingMode),
		Price:           draft.Price,
		CustomName:      draft.CustomName,
		Area:            draft.Area,
		Notes:           draft.Notes,
	}

	if draft.Frequency != nil {
		freq := string(*draft.Frequency)
		req.Frequency = &freq
	}

	return req
}

// mapDomainError транслирует доменные ошибки мастера в ошибки usecase
func mapDomainError(err error) error {
	switch {
	case errors.Is(err, domain.ErrStepIncomplete):
		return fmt.Errorf("%w: %v", ErrStepIncomplete, err)
	case errors.Is(err, domain.ErrNoNextStep):
		return ErrNoNextStep
	case errors.Is(err, domain.ErrNoPrevStep):
		return ErrNoPrevStep
	case errors.Is(err, domain.ErrNotOnConfirmStep):
		return ErrNotOnConfirmStep
	case errors.Is(err, domain.ErrPricingChangeNeedsConfirm):
		return ErrPricingChangeNeedsConfirm
	case errors.Is(err, domain.ErrInvalidPricing):
		return fmt.Errorf("%w: %v", ErrInvalidPricing, err)
	case errors.Is(err, domain.ErrAmbiguousAssignment):
		return ErrAmbiguousAssignment
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
