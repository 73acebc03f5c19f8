package reviews

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("service.reviews: booking not found")

	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("service.reviews: team not found")

	// ErrReviewExists возвращается при попытке оставить второй отзыв на бронирование
	ErrReviewExists = errors.New("service.reviews: review for booking already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("service.reviews: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service.reviews: internal error")
)
