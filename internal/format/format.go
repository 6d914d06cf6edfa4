// Package format renders record values for display. Every function is total:
// missing or malformed input yields a placeholder rather than an error.
package format

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jonathan/jobdash/internal/records"
)

// Placeholder is shown for missing values.
const Placeholder = "-"

// DisplayDate is the layout used for dates in tables and detail views.
const DisplayDate = "Jan 2, 2006"

var nonNumeric = regexp.MustCompile(`[^0-9.\-]`)
var whitespace = regexp.MustCompile(`\s+`)

// OrDash returns s, or the placeholder when s is blank.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

// Date formats a sheet date as "Jan 2, 2006". Unparseable input is returned as is.
func Date(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	t, ok := records.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format(DisplayDate)
}

// Money formats a salary figure as whole US dollars. Values that already
// carry a "$" are assumed to be formatted and are returned unchanged.
func Money(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	if strings.Contains(s, "$") {
		return s
	}
	n, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(s, ""), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return Placeholder
	}
	n = math.Round(n)
	if math.Abs(n) >= math.MaxInt64 {
		return Placeholder
	}
	whole := int64(n)
	if whole < 0 {
		return "-$" + humanize.Comma(-whole)
	}
	return "$" + humanize.Comma(whole)
}

// SalaryRange renders "low - high", "low+" when only the floor is known.
func SalaryRange(low, high string) string {
	lowSet := strings.TrimSpace(low) != ""
	highSet := strings.TrimSpace(high) != ""
	switch {
	case !lowSet && !highSet:
		return Placeholder
	case !highSet:
		return Money(low) + "+"
	default:
		return Money(low) + " - " + Money(high)
	}
}

// StatusClass turns a status into a CSS class suffix: "Phone Screen" -> "phone-screen".
func StatusClass(status string) string {
	return whitespace.ReplaceAllString(strings.ToLower(status), "-")
}

// Percent renders a rate with one decimal place.
func Percent(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64) + "%"
}
