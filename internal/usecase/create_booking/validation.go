package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-BackofficeService/internal/domain"
	"github.com/m04kA/SMC-BackofficeService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.PackageID <= 0 {
		return fmt.Errorf("%w: packageID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && req.TeamID != nil {
		return ErrAmbiguousAssignment
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes < domain.MinDurationMinutes || *req.DurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are too long", ErrInvalidInput)
	}

	return validatePricing(req)
}

// validatePricing проверяет комбинацию режима ценообразования и цены
func validatePricing(req *Request) error {
	switch domain.PriceMode(req.PriceMode) {
	case domain.PriceModePackage:
		// Цена рассчитывается из пакета, явная цена не принимается
		if req.Price != nil {
			return fmt.Errorf("%w: price is not accepted in package mode", ErrInvalidPricing)
		}
	case domain.PriceModeOverride:
		if req.Price == nil || *req.Price <= 0 {
			return fmt.Errorf("%w: override mode requires a positive price", ErrInvalidPricing)
		}
	case domain.PriceModeCustom:
		if req.Price == nil || *req.Price <= 0 {
			return fmt.Errorf("%w: custom mode requires a positive price", ErrInvalidPricing)
		}
		if req.CustomName == nil || *req.CustomName == "" {
			return fmt.Errorf("%w: custom mode requires a service name", ErrInvalidPricing)
		}
		if len(*req.CustomName) > domain.MaxNameLength {
			return fmt.Errorf("%w: custom service name is too long", ErrInvalidPricing)
		}
	default:
		return fmt.Errorf("%w: unknown price mode %q", ErrInvalidPricing, req.PriceMode)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(bookingDate time.Time, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// collectOverlapWarnings собирает предупреждения о пересечениях с активными
// бронированиями того же исполнителя. Граничные случаи (конец одного равен
// началу другого) пересечением не считаются.
func collectOverlapWarnings(
	date time.Time,
	startTime types.TimeString,
	durationMinutes int,
	existing []*domain.Booking,
) []string {
	var warnings []string

	for _, booking := range existing {
		if !booking.IsActive() {
			continue
		}
		if booking.Overlaps(date, startTime, durationMinutes) {
			end, err := booking.EndTime()
			endStr := "?"
			if err == nil {
				endStr = end.String()
			}
			warnings = append(warnings, fmt.Sprintf(
				"overlaps with booking %d (%s - %s)", booking.ID, booking.StartTime, endStr))
		}
	}

	return warnings
}
