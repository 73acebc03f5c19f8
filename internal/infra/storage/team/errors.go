package team

import "errors"

var (
	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("team.repository: team not found")

	// ErrMembershipNotFound возвращается, когда период членства не найден
	ErrMembershipNotFound = errors.New("team.repository: membership not found")

	// ErrOpenMembershipExists возвращается при попытке добавить сотрудника,
	// у которого уже есть открытый период членства в этой команде
	ErrOpenMembershipExists = errors.New("team.repository: open membership already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("team.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("team.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("team.repository: failed to scan row")
)
