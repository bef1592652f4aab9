package domain

import "time"

// ISO 8601 weekday constants and mappings
const (
	Monday    = 1
	Tuesday   = 2
	Wednesday = 3
	Thursday  = 4
	Friday    = 5
	Saturday  = 6
	Sunday    = 7
)

// WeekdayNames maps ISO 8601 weekday numbers to their English names
var WeekdayNames = map[int]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// DateKeyLayout is the date-only format used for week-start lookups and
// announcement text.
const DateKeyLayout = "2006-01-02"

// AnchorIndex is the roster position that was on duty during the anchor week.
const AnchorIndex = 6

// AnchorDate returns the rotation anchor, the Monday of a week whose duty
// assignment is known. All week counting is relative to this instant.
func AnchorDate(loc *time.Location) time.Time {
	return time.Date(2025, time.December, 8, 0, 0, 0, 0, loc)
}

// DefaultRoster is the deployment's staff list, in rotation order. Operators
// can override it per request or per console session; the cron trigger falls
// back to this list.
var DefaultRoster = []string{
	"Chen Yi-Chun",
	"Lin Wei-Ting",
	"Huang Shu-Fen",
	"Chang Chia-Hao",
	"Lee Mei-Ling",
	"Wang Chih-Ming",
	"Wu Pei-Shan",
	"Liu Cheng-En",
	"Tsai Hsin-Yi",
	"Yang Kuan-Lin",
}

// SkipWeeks lists week-start dates (Monday, DateKeyLayout) on which the
// rotation is suspended regardless of operator input. These are office
// closure weeks baked into the deployment; the manual suspend flag cannot
// override them.
var SkipWeeks = map[string]bool{
	"2025-12-29": true, // year-end closure
	"2026-02-16": true, // Lunar New Year
}
