package teams

import "errors"

var (
	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("team not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("staff member not found")

	// ErrAlreadyMember возвращается, когда у сотрудника уже есть открытое
	// членство в этой команде
	ErrAlreadyMember = errors.New("staff member already has an open membership in this team")

	// ErrMembershipNotFound возвращается, когда открытое членство не найдено
	ErrMembershipNotFound = errors.New("open membership not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
