// Package dates parses the date formats that appear on Indian card
// statements. Numeric dates follow the day-first convention.
package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/priya-raghavan/statement-parser/internal/common"
)

// layouts are tried in order; first match wins.
var layouts = []string{
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
	"2/1/2006",
	"2-1-2006",
	"02 Jan 2006",
	"02 Jan, 2006",
	"2 Jan 2006",
	"02 January 2006",
	"2 January 2006",
	"Jan 02, 2006",
	"Jan 2, 2006",
	"January 02, 2006",
	"January 2, 2006",
	"2006-01-02",
	"02/01/06",
	"02-01-06",
}

var ordinalSuffix = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)`)

// Parse converts a statement date string to a time.Time (UTC, midnight).
func Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, common.NewAppError("DATE_PARSE", "empty date", common.ErrInvalidInput)
	}
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = strings.Join(strings.Fields(s), " ")

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, common.NewAppError("DATE_PARSE", "unrecognized date "+raw, common.ErrInvalidInput)
}

// Canonical renders a parsed date in ISO form, the serialization used in
// results and exports.
func Canonical(t time.Time) string {
	return t.Format("2006-01-02")
}

// Bare dashes are only separators when surrounded by spaces, so dashed
// dates like 02-01-2024 stay intact.
var cycleSeparator = regexp.MustCompile(`(?i)(?:\s+(?:to|till)\s+|\s+[-–]\s+)`)

// ParseCycle splits a billing-cycle string ("02/12/2023 to 01/01/2024")
// into its start and end dates.
func ParseCycle(raw string) (start, end time.Time, err error) {
	parts := cycleSeparator.Split(strings.TrimSpace(raw), -1)
	var dates []time.Time
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		t, perr := Parse(p)
		if perr != nil {
			continue
		}
		dates = append(dates, t)
	}
	if len(dates) < 2 {
		return time.Time{}, time.Time{}, common.NewAppError("DATE_PARSE", "billing cycle needs two dates: "+raw, common.ErrInvalidInput)
	}
	return dates[0], dates[len(dates)-1], nil
}
