package check_availability

import "errors"

var (
	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("check_availability: staff member not found")

	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("check_availability: team not found")

	// ErrAmbiguousAssignment возвращается, когда указаны и сотрудник, и команда
	ErrAmbiguousAssignment = errors.New("check_availability: specify staff or team, not both")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
