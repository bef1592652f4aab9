// Package rotation computes which staff member is on duty for a given week.
//
// The calculation is anchored: a known (date, roster index) pair fixes the
// rotation's phase, and every other week is derived from it by modular
// arithmetic. The same code serves the console preview and the cron trigger
// so the two can never disagree.
package rotation

import (
	"time"

	"github.com/yuchengtw/duty-roster-bot/internal/domain"
)

// Status classifies a week with respect to the rotation.
type Status int

const (
	NotSuspended Status = iota
	SystemSuspended
	ManuallySuspended
)

func (s Status) String() string {
	switch s {
	case SystemSuspended:
		return "system-suspended"
	case ManuallySuspended:
		return "manually-suspended"
	default:
		return "active"
	}
}

// Calculator holds everything needed to resolve a duty assignment.
// The zero Offset is the calibrated rotation; operators shift it by whole
// weeks to correct drift without moving the anchor.
type Calculator struct {
	Roster      []string
	AnchorDate  time.Time
	AnchorIndex int
	Offset      int
}

// WeekStart returns Monday 00:00 of t's week, in t's location. Weeks run
// Monday through Sunday, so a Sunday belongs to the preceding Monday.
func WeekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = domain.Sunday
	}
	y, m, d := t.AddDate(0, 0, 1-wd).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// floorDiv divides flooring toward negative infinity. Go's integer division
// truncates toward zero, which would alias all pre-anchor weeks to week 0.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

const msPerWeek = 7 * 24 * 60 * 60 * 1000

// WeeksSince returns how many whole weeks separate t's week from the anchor
// week. Negative for dates before the anchor.
func (c Calculator) WeeksSince(t time.Time) int {
	elapsed := WeekStart(t).Sub(WeekStart(c.AnchorDate))
	return int(floorDiv(elapsed.Milliseconds(), msPerWeek))
}

// DutyIndex returns the roster index on duty for t's week.
func (c Calculator) DutyIndex(t time.Time) (int, error) {
	n := len(c.Roster)
	if n == 0 {
		return 0, domain.ErrEmptyRoster
	}
	total := c.WeeksSince(t) + c.Offset
	idx := (c.AnchorIndex + total) % n
	if idx < 0 {
		idx += n
	}
	return idx, nil
}

// DutyOn returns the name on duty for t's week.
func (c Calculator) DutyOn(t time.Time) (string, error) {
	idx, err := c.DutyIndex(t)
	if err != nil {
		return "", err
	}
	return c.Roster[idx], nil
}

// Suspension decides whether the week starting at weekStart rotates.
// Membership in skipWeeks wins over the manual flag: system-suspended weeks
// are holidays baked into the deployment and cannot be overridden.
func Suspension(weekStart time.Time, skipWeeks map[string]bool, force bool) Status {
	if skipWeeks[weekStart.Format(domain.DateKeyLayout)] {
		return SystemSuspended
	}
	if force {
		return ManuallySuspended
	}
	return NotSuspended
}

// Decision is a resolved week: its suspension status and, when active, the
// person on duty.
type Decision struct {
	Status    Status
	Duty      string
	WeekStart time.Time
}

// Decide resolves the full duty decision for t's week.
func (c Calculator) Decide(t time.Time, skipWeeks map[string]bool, force bool) (Decision, error) {
	ws := WeekStart(t)
	dec := Decision{Status: Suspension(ws, skipWeeks, force), WeekStart: ws}
	if dec.Status != NotSuspended {
		return dec, nil
	}
	duty, err := c.DutyOn(t)
	if err != nil {
		return Decision{}, err
	}
	dec.Duty = duty
	return dec, nil
}
