package create_booking

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("create_booking: customer not found")

	// ErrPackageNotFound возвращается, когда пакет услуг не найден
	ErrPackageNotFound = errors.New("create_booking: service package not found")

	// ErrPackageInactive возвращается при попытке бронирования неактивного пакета
	ErrPackageInactive = errors.New("create_booking: service package is not active")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("create_booking: staff member not found")

	// ErrStaffInactive возвращается при назначении на неактивного сотрудника
	ErrStaffInactive = errors.New("create_booking: staff member is not active")

	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("create_booking: team not found")

	// ErrTeamInactive возвращается при назначении на неактивную команду
	ErrTeamInactive = errors.New("create_booking: team is not active")

	// ErrAmbiguousAssignment возвращается, когда указаны и сотрудник, и команда
	ErrAmbiguousAssignment = errors.New("create_booking: booking cannot be assigned to both staff and team")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidPricing возвращается при некорректной комбинации режима
	// ценообразования и цены
	ErrInvalidPricing = errors.New("create_booking: invalid pricing")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
