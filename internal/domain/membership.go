package domain

import (
	"math"
	"time"
)

// MembershipPeriod is one [JoinedAt, LeftAt) interval of a staff member's
// membership in a team. A staff member may have several non-contiguous
// periods for the same team (left and rejoined later).
type MembershipPeriod struct {
	TeamID   int64
	JoinedAt time.Time
	LeftAt   *time.Time // nil = open-ended
}

// Contains reports whether t falls inside the period.
// The interval is half-open: JoinedAt is included, LeftAt is not.
func (p MembershipPeriod) Contains(t time.Time) bool {
	if t.Before(p.JoinedAt) {
		return false
	}
	if p.LeftAt != nil && !t.Before(*p.LeftAt) {
		return false
	}
	return true
}

// IsOpen returns true if the period has no end
func (p MembershipPeriod) IsOpen() bool {
	return p.LeftAt == nil
}

// Attribution identifies who a booking or review is attributed to.
// At most one of StaffID / TeamID is set.
type Attribution struct {
	StaffID *int64
	TeamID  *int64
}

// TeamRecordVisible reports whether a record attributed to teamID and
// created at createdAt is visible through at least one of the given
// membership periods.
func TeamRecordVisible(periods []MembershipPeriod, teamID int64, createdAt time.Time) bool {
	for _, p := range periods {
		if p.TeamID != teamID {
			continue
		}
		if p.Contains(createdAt) {
			return true
		}
	}
	return false
}

// VisibleToStaff decides whether a record is visible to the staff member
// owning the given membership periods:
//   - directly assigned records are always visible;
//   - team-attributed records are visible iff createdAt falls within one
//     of the member's periods for that team;
//   - unassigned records are not visible.
func VisibleToStaff(staffID int64, att Attribution, createdAt time.Time, periods []MembershipPeriod) bool {
	if att.StaffID != nil {
		return *att.StaffID == staffID
	}
	if att.TeamID != nil {
		return TeamRecordVisible(periods, *att.TeamID, createdAt)
	}
	return false
}

// SplitRevenue splits a booking price evenly across n team members,
// rounding each share to cents. The last share absorbs the rounding
// remainder so the shares always sum to the total.
func SplitRevenue(total float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	shares := make([]float64, n)
	share := roundCents(total / float64(n))

	var distributed float64
	for i := 0; i < n-1; i++ {
		shares[i] = share
		distributed += share
	}
	shares[n-1] = roundCents(total - distributed)

	return shares
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
