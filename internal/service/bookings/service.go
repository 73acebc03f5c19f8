package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BackofficeService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BackofficeService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает бронирования с гибкой фильтрацией
//
// Примеры использования:
// - Все активные бронирования: List(ctx, &ListBookingsRequest{})
// - Бронирования клиента: указать CustomerID
// - Бронирования за период: StartDate и EndDate
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Update обновляет бронирование. Редактировать можно только бронирования
// в статусах pending и confirmed. Пересечения с другими бронированиями
// того же исполнителя не блокируют сохранение, а возвращаются
// как предупреждения.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.UpdateBookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeUpdated() {
		s.logger.Warn("Update: booking id=%d cannot be updated, status=%s", id, booking.Status)
		return nil, ErrCannotUpdate
	}

	if err := s.applyUpdate(booking, req); err != nil {
		s.logger.Warn("Update: invalid input for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	warnings, err := s.conflictWarnings(ctx, booking)
	if err != nil {
		// Предупреждения не критичны для результата обновления
		s.logger.Warn("Update: conflict check failed for booking id=%d: %v", id, err)
		warnings = nil
	}

	s.logger.Info("Update: successfully updated booking id=%d, warnings=%d", id, len(warnings))
	return &models.UpdateBookingResponse{
		Booking:  models.FromDomainBooking(booking),
		Warnings: warnings,
	}, nil
}

// Cancel отменяет бронирование с указанием причины
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return nil
}

// UpdateStatus обновляет статус бронирования с проверкой допустимости перехода
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", id, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for booking id=%d",
			booking.Status, newStatus, id)
		return ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", id, newStatus)
	return nil
}

// BulkAction выполняет массовое действие над списком бронирований.
// Каждое бронирование обрабатывается независимо: ошибка по одному ID
// не прерывает обработку остальных.
func (s *Service) BulkAction(ctx context.Context, req *models.BulkActionRequest) (*models.BulkActionResponse, error) {
	s.logger.Info("BulkAction: action=%s over %d bookings", req.Action, len(req.BookingIDs))

	if len(req.BookingIDs) == 0 {
		return nil, fmt.Errorf("%w: empty booking list", ErrInvalidInput)
	}

	resp := &models.BulkActionResponse{
		Results: make([]models.BulkItemResult, 0, len(req.BookingIDs)),
	}

	for _, bookingID := range req.BookingIDs {
		var itemErr error

		switch req.Action {
		case "cancel":
			reason := ""
			if req.Reason != nil {
				reason = *req.Reason
			}
			itemErr = s.Cancel(ctx, bookingID, &models.CancelBookingRequest{CancellationReason: reason})
		case "set_status":
			if req.Status == nil {
				return nil, fmt.Errorf("%w: status is required for set_status action", ErrInvalidInput)
			}
			itemErr = s.UpdateStatus(ctx, bookingID, &models.UpdateStatusRequest{Status: *req.Status})
		default:
			return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
		}

		result := models.BulkItemResult{BookingID: bookingID, Success: itemErr == nil}
		if itemErr != nil {
			msg := itemErr.Error()
			result.Error = &msg
			resp.Failed++
		} else {
			resp.Succeeded++
		}
		resp.Results = append(resp.Results, result)
	}

	s.logger.Info("BulkAction: finished action=%s, succeeded=%d, failed=%d",
		req.Action, resp.Succeeded, resp.Failed)
	return resp, nil
}

// Вспомогательные методы

// applyUpdate применяет частичное обновление к domain модели
func (s *Service) applyUpdate(booking *domain.Booking, req *models.UpdateBookingRequest) error {
	if req.ServiceDate != nil {
		date, err := time.Parse(domain.DateFormat, *req.ServiceDate)
		if err != nil {
			return fmt.Errorf("invalid service date: %v", err)
		}
		booking.ServiceDate = date
	}
	if req.StartTime != nil {
		startTime, err := models.ToDomainTimeString(*req.StartTime)
		if err != nil {
			return fmt.Errorf("invalid start time: %v", err)
		}
		booking.StartTime = startTime
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("duration must be between %d and %d minutes",
				domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
		booking.DurationMinutes = *req.DurationMinutes
	}

	if req.StaffID != nil && req.TeamID != nil {
		return fmt.Errorf("booking cannot be assigned to both staff and team")
	}
	if req.ClearAssignment {
		booking.StaffID = nil
		booking.TeamID = nil
	}
	if req.StaffID != nil {
		booking.StaffID = req.StaffID
		booking.TeamID = nil
	}
	if req.TeamID != nil {
		booking.TeamID = req.TeamID
		booking.StaffID = nil
	}

	if req.Price != nil {
		if *req.Price < 0 {
			return fmt.Errorf("price cannot be negative")
		}
		booking.Price = *req.Price
		if booking.PriceMode == domain.PriceModePackage {
			booking.PriceMode = domain.PriceModeOverride
		}
	}
	if req.Notes != nil {
		booking.Notes = req.Notes
	}

	return nil
}

// conflictWarnings находит активные бронирования того же исполнителя,
// пересекающиеся по времени с данным бронированием
func (s *Service) conflictWarnings(ctx context.Context, booking *domain.Booking) ([]string, error) {
	if !booking.IsAssigned() {
		return nil, nil
	}

	existing, err := s.bookingRepo.GetForAssignmentOnDate(ctx, booking.ServiceDate, booking.StaffID, booking.TeamID)
	if err != nil {
		return nil, err
	}

	var warnings []string
	for _, other := range existing {
		if other.ID == booking.ID || !other.IsActive() {
			continue
		}
		if other.Overlaps(booking.ServiceDate, booking.StartTime, booking.DurationMinutes) {
			warnings = append(warnings, fmt.Sprintf(
				"overlaps with booking %d (%s - %s)",
				other.ID, other.StartTime, mustEndTime(other)))
		}
	}

	return warnings, nil
}

func mustEndTime(b *domain.Booking) string {
	end, err := b.EndTime()
	if err != nil {
		return "?"
	}
	return end.String()
}
