package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	staffRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/staff"
	teamRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/team"
)

// UseCase use case проверки занятости исполнителя на дату и время
type UseCase struct {
	bookingRepo BookingRepository
	staffRepo   StaffRepository
	teamRepo    TeamRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffRepo StaffRepository,
	teamRepo TeamRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		staffRepo:   staffRepo,
		teamRepo:    teamRepo,
		logger:      logger,
	}
}

// Execute проверяет пересечения запрошенного окна с активными
// бронированиями исполнителя. Результат справочный: занятый слот
// не блокирует последующее создание бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := uc.validateRequest(ctx, req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	existing, err := uc.bookingRepo.GetForAssignmentOnDate(ctx, req.Date, req.StaffID, req.TeamID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	conflicts := make([]Conflict, 0)
	for _, booking := range existing {
		if !booking.IsActive() {
			continue
		}
		if !booking.Overlaps(req.Date, req.StartTime, req.DurationMinutes) {
			continue
		}

		end, err := booking.EndTime()
		endStr := ""
		if err == nil {
			endStr = end.String()
		}
		conflicts = append(conflicts, Conflict{
			BookingID:    booking.ID,
			CustomerName: booking.CustomerName,
			StartTime:    booking.StartTime.String(),
			EndTime:      endStr,
			Status:       string(booking.Status),
		})
	}

	uc.logger.Info("CheckAvailability: date=%s time=%s conflicts=%d",
		req.Date.Format(domain.DateFormat), req.StartTime, len(conflicts))

	return &Response{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (uc *UseCase) validateRequest(ctx context.Context, req *Request) error {
	if req.StaffID == nil && req.TeamID == nil {
		return fmt.Errorf("%w: staffID or teamID is required", ErrInvalidInput)
	}
	if req.StaffID != nil && req.TeamID != nil {
		return ErrAmbiguousAssignment
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}
	if req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.StaffID != nil {
		if _, err := uc.staffRepo.GetByID(ctx, *req.StaffID); err != nil {
			if errors.Is(err, staffRepo.ErrStaffNotFound) {
				return ErrStaffNotFound
			}
			return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
		}
	}

	if req.TeamID != nil {
		if _, err := uc.teamRepo.GetByID(ctx, *req.TeamID); err != nil {
			if errors.Is(err, teamRepo.ErrTeamNotFound) {
				return ErrTeamNotFound
			}
			return fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
		}
	}

	return nil
}
