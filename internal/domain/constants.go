package domain

// Default values
const (
	DefaultDurationMinutes = 120
)

// Business validation constants
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 720 // 12 hours

	MinRating = 1
	MaxRating = 5

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxNameLength               = 200
	MaxCommentLength            = 1000
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных бронирований
// Используется для фильтрации при проверке конфликтов
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
}

// ValidStatuses все допустимые статусы бронирования
var ValidStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ValidPriceModes все допустимые режимы ценообразования
var ValidPriceModes = []PriceMode{
	PriceModePackage,
	PriceModeOverride,
	PriceModeCustom,
}
