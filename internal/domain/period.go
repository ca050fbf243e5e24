package domain

import (
	"fmt"
	"time"
)

// PeriodStatus is the lifecycle state of an accounting period.
type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "Open"
	PeriodStatusLocked PeriodStatus = "Locked"
)

const (
	MinPeriodYear = 1900
	MaxPeriodYear = 9999
)

// Period is one calendar month of the books. Locked is terminal.
type Period struct {
	ID           string
	Year         int
	Month        int
	Status       PeriodStatus
	FxRateLocked bool
	CreatedAt    time.Time
	LockedAt     *time.Time
	LockedBy     *string
}

// ValidatePeriodBounds checks year and month ranges.
func ValidatePeriodBounds(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidPeriod, month)
	}
	if year < MinPeriodYear || year > MaxPeriodYear {
		return fmt.Errorf("%w: year %d out of range %d-%d", ErrInvalidPeriod, year, MinPeriodYear, MaxPeriodYear)
	}
	return nil
}

// PeriodIndex orders periods chronologically as year*12+month.
func PeriodIndex(year, month int) int {
	return year*12 + month
}

// Index returns the chronological index of the period.
func (p *Period) Index() int {
	return PeriodIndex(p.Year, p.Month)
}

// IsLocked reports whether the period is locked.
func (p *Period) IsLocked() bool {
	return p.Status == PeriodStatusLocked
}

// Start returns the first instant of the period month in UTC.
func (p *Period) Start() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following month in UTC.
func (p *Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Contains reports whether t falls on a calendar day inside the period month.
func (p *Period) Contains(t time.Time) bool {
	return t.Year() == p.Year && int(t.Month()) == p.Month
}

// Label formats the period as YYYY-MM.
func (p *Period) Label() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// NextPeriod returns the year and month directly after year/month.
func NextPeriod(year, month int) (int, int) {
	if month == 12 {
		return year + 1, 1
	}
	return year, month + 1
}

// IsNextPeriod reports whether year/month directly follows latest.
// Any year/month is accepted when there is no latest period.
func IsNextPeriod(latest *Period, year, month int) bool {
	if latest == nil {
		return true
	}
	return PeriodIndex(year, month) == latest.Index()+1
}
