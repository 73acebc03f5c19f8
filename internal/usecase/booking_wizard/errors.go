package booking_wizard

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия мастера не найдена или истекла
	ErrSessionNotFound = errors.New("booking_wizard: session not found")

	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("booking_wizard: customer not found")

	// ErrPackageNotFound возвращается, когда пакет услуг не найден
	ErrPackageNotFound = errors.New("booking_wizard: service package not found")

	// ErrPackageInactive возвращается при выборе неактивного пакета
	ErrPackageInactive = errors.New("booking_wizard: service package is not active")

	// ErrStaffNotFound возвращается, когда сотрудник не найден
	ErrStaffNotFound = errors.New("booking_wizard: staff member not found")

	// ErrStaffInactive возвращается при назначении на неактивного сотрудника
	ErrStaffInactive = errors.New("booking_wizard: staff member is not active")

	// ErrTeamNotFound возвращается, когда команда не найдена
	ErrTeamNotFound = errors.New("booking_wizard: team not found")

	// ErrTeamInactive возвращается при назначении на неактивную команду
	ErrTeamInactive = errors.New("booking_wizard: team is not active")

	// ErrStepIncomplete возвращается при переходе вперёд с незаполненного шага
	ErrStepIncomplete = errors.New("booking_wizard: wizard step is incomplete")

	// ErrNoNextStep возвращается при переходе вперёд с последнего шага
	ErrNoNextStep = errors.New("booking_wizard: already at the last step")

	// ErrNoPrevStep возвращается при переходе назад с первого шага
	ErrNoPrevStep = errors.New("booking_wizard: already at the first step")

	// ErrNotOnConfirmStep возвращается при отправке не с шага подтверждения
	ErrNotOnConfirmStep = errors.New("booking_wizard: submit is only allowed on the confirm step")

	// ErrPricingChangeNeedsConfirm возвращается при смене режима
	// ценообразования поверх введённой цены без флага подтверждения
	ErrPricingChangeNeedsConfirm = errors.New("booking_wizard: pricing mode change requires confirmation")

	// ErrInvalidPricing возвращается при некорректных данных ценообразования
	ErrInvalidPricing = errors.New("booking_wizard: invalid pricing data")

	// ErrAmbiguousAssignment возвращается, когда указаны и сотрудник, и команда
	ErrAmbiguousAssignment = errors.New("booking_wizard: booking may be assigned to staff or team, not both")

	// ErrInvalidStep возвращается при неизвестном шаге сессии
	ErrInvalidStep = errors.New("booking_wizard: invalid wizard step")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("booking_wizard: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("booking_wizard: internal error")
)
