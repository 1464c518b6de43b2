package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PayPeriod is a payroll period as stored in the record store. Dates are kept
// in their raw string form ("2025-11-01" or a full ISO timestamp); the store
// is not consistent about which one it delivers.
type PayPeriod struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	PayoutDate   string `json:"payout_date,omitempty"`
	DepartmentID string `json:"department_id,omitempty"`
}

// TimeCard links an employee and a client engagement to a pay period. The
// stored total is authoritative when present.
type TimeCard struct {
	ID         string
	EmployeeID string
	ClientID   string
	TotalHours *decimal.Decimal
}

// Punch is a single clock-in/clock-out event. Timestamps stay raw strings
// because upstream data can be malformed; parsing is the duration
// calculator's problem. An empty PunchOut means the punch is still open.
type Punch struct {
	ID         string
	EmployeeID string
	TimeCardID string
	PunchIn    string
	PunchOut   string
	Duration   *decimal.Decimal
}

// Employee is a member of a department. Name carries the resolved display
// name (name, falling back to email, falling back to "Unknown").
type Employee struct {
	ID           string
	Name         string
	Email        string
	DepartmentID string
}

// TimeCardSummary is the per-time-card slice of an employee's summary.
type TimeCardSummary struct {
	ID         string           `json:"id"`
	ClientID   string           `json:"client_id,omitempty"`
	TotalHours *decimal.Decimal `json:"-"`
}

// EmployeeHours is the per-employee aggregation result.
type EmployeeHours struct {
	EmployeeID string
	Name       string
	Email      string
	TotalHours decimal.Decimal
	PunchCount int
	TimeCards  []TimeCardSummary
}

// PayPeriodSummary is the full aggregation result for one pay period.
// PossiblyIncomplete is set when pagination was truncated by the record
// ceiling, so the totals may under-count.
type PayPeriodSummary struct {
	PayPeriod          PayPeriod
	EmployeeHours      []EmployeeHours
	TotalEmployees     int
	TotalHours         decimal.Decimal
	PunchCount         int
	TimeCardCount      int
	PossiblyIncomplete bool
}

// Relevance classifies a pay period against a reference date.
type Relevance string

const (
	RelevanceCurrent  Relevance = "current"
	RelevanceUpcoming Relevance = "upcoming"
	RelevancePast     Relevance = "past"
	RelevanceUnknown  Relevance = "unknown"
)

// RelevanceAt reports whether the period is current, upcoming or past as of
// the given day. Periods with unparsable dates classify as unknown.
func (p PayPeriod) RelevanceAt(today time.Time) Relevance {
	start, err := ParseDate(p.StartDate)
	if err != nil {
		return RelevanceUnknown
	}
	end, err := ParseDate(p.EndDate)
	if err != nil {
		return RelevanceUnknown
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	switch {
	case !day.Before(start) && !day.After(end):
		return RelevanceCurrent
	case start.After(day):
		return RelevanceUpcoming
	default:
		return RelevancePast
	}
}

// DateOnly strips the time portion from an ISO timestamp, leaving YYYY-MM-DD.
// Values without a time portion pass through unchanged.
func DateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// ParseDate parses the date part of a raw store date value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", DateOnly(s))
}
