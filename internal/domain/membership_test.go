package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BackofficeService/pkg/ptr"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMembershipPeriod_Contains(t *testing.T) {
	joined := date(2025, 1, 1)
	left := date(2025, 6, 1)

	closed := MembershipPeriod{TeamID: 1, JoinedAt: joined, LeftAt: &left}
	open := MembershipPeriod{TeamID: 1, JoinedAt: joined}

	tests := []struct {
		name   string
		period MembershipPeriod
		at     time.Time
		want   bool
	}{
		{name: "before join", period: closed, at: date(2024, 12, 31), want: false},
		{name: "at join boundary", period: closed, at: joined, want: true},
		{name: "inside", period: closed, at: date(2025, 3, 15), want: true},
		{name: "at leave boundary excluded", period: closed, at: left, want: false},
		{name: "after leave", period: closed, at: date(2025, 7, 1), want: false},
		{name: "open period inside", period: open, at: date(2030, 1, 1), want: true},
		{name: "open period before join", period: open, at: date(2024, 1, 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.Contains(tt.at))
		})
	}
}

func TestTeamRecordVisible_NonContiguousPeriods(t *testing.T) {
	// Staff left team 1 and rejoined later
	firstLeft := date(2025, 3, 1)
	secondLeft := date(2025, 9, 1)
	periods := []MembershipPeriod{
		{TeamID: 1, JoinedAt: date(2025, 1, 1), LeftAt: &firstLeft},
		{TeamID: 1, JoinedAt: date(2025, 6, 1), LeftAt: &secondLeft},
		{TeamID: 2, JoinedAt: date(2025, 1, 1)},
	}

	tests := []struct {
		name      string
		teamID    int64
		createdAt time.Time
		want      bool
	}{
		{name: "first period", teamID: 1, createdAt: date(2025, 2, 1), want: true},
		{name: "gap between periods", teamID: 1, createdAt: date(2025, 4, 15), want: false},
		{name: "second period", teamID: 1, createdAt: date(2025, 7, 1), want: true},
		{name: "after second period", teamID: 1, createdAt: date(2025, 10, 1), want: false},
		{name: "other team open period", teamID: 2, createdAt: date(2025, 10, 1), want: true},
		{name: "team without periods", teamID: 3, createdAt: date(2025, 2, 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TeamRecordVisible(periods, tt.teamID, tt.createdAt))
		})
	}
}

func TestVisibleToStaff(t *testing.T) {
	left := date(2025, 3, 1)
	periods := []MembershipPeriod{
		{TeamID: 7, JoinedAt: date(2025, 1, 1), LeftAt: &left},
	}

	tests := []struct {
		name      string
		att       Attribution
		createdAt time.Time
		want      bool
	}{
		{name: "direct assignment always visible", att: Attribution{StaffID: ptr.Ptr(int64(42))}, createdAt: date(2030, 1, 1), want: true},
		{name: "direct assignment other staff", att: Attribution{StaffID: ptr.Ptr(int64(43))}, createdAt: date(2025, 2, 1), want: false},
		{name: "team record inside period", att: Attribution{TeamID: ptr.Ptr(int64(7))}, createdAt: date(2025, 2, 1), want: true},
		{name: "team record outside period", att: Attribution{TeamID: ptr.Ptr(int64(7))}, createdAt: date(2025, 4, 1), want: false},
		{name: "unassigned record", att: Attribution{}, createdAt: date(2025, 2, 1), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VisibleToStaff(42, tt.att, tt.createdAt, periods))
		})
	}
}

func TestSplitRevenue(t *testing.T) {
	tests := []struct {
		name  string
		total float64
		n     int
		want  []float64
	}{
		{name: "even split", total: 300, n: 3, want: []float64{100, 100, 100}},
		{name: "single member", total: 150.50, n: 1, want: []float64{150.50}},
		{name: "rounding remainder on last share", total: 100, n: 3, want: []float64{33.33, 33.33, 33.34}},
		{name: "zero members", total: 100, n: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitRevenue(tt.total, tt.n)
			assert.Equal(t, tt.want, got)

			var sum float64
			for _, s := range got {
				sum += s
			}
			if tt.n > 0 {
				assert.InDelta(t, tt.total, sum, 0.001)
			}
		})
	}
}
