package domain

import "time"

// StaffRole represents the role of a staff member
type StaffRole string

const (
	RoleCleaner    StaffRole = "cleaner"
	RoleSupervisor StaffRole = "supervisor"
	RoleManager    StaffRole = "manager"
	RoleAdmin      StaffRole = "admin"
)

// ValidStaffRoles все допустимые роли сотрудников
var ValidStaffRoles = []StaffRole{
	RoleCleaner,
	RoleSupervisor,
	RoleManager,
	RoleAdmin,
}

// Staff represents an employee who can be assigned to bookings
type Staff struct {
	ID       int64
	Name     string
	Email    string
	Phone    string
	Role     StaffRole
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanManage returns true if the role carries management permissions
func (s *Staff) CanManage() bool {
	return s.Role == RoleManager || s.Role == RoleAdmin
}

// StaffFilter фильтр для выборки сотрудников
type StaffFilter struct {
	Role       *StaffRole // Фильтр по роли (опционально)
	ActiveOnly bool       // Только активные сотрудники
}
