package domain

import "time"

// Team represents a group of staff members assigned to bookings together
type Team struct {
	ID          int64
	Name        string
	Description *string
	IsActive    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamMembership represents one period during which a staff member
// belonged to a team. The interval is half-open: [JoinedAt, LeftAt).
// LeftAt == nil means the membership is still open.
type TeamMembership struct {
	ID       int64
	TeamID   int64
	StaffID  int64
	JoinedAt time.Time
	LeftAt   *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true if the membership has no end date
func (m *TeamMembership) IsOpen() bool {
	return m.LeftAt == nil
}

// Period returns the membership interval
func (m *TeamMembership) Period() MembershipPeriod {
	return MembershipPeriod{
		TeamID:   m.TeamID,
		JoinedAt: m.JoinedAt,
		LeftAt:   m.LeftAt,
	}
}
