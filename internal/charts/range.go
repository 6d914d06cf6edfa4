// Package charts aggregates applications into the series behind the
// dashboard's charts.
package charts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/jobdash/internal/records"
)

// RangeKind selects which applications the charts cover.
type RangeKind string

const (
	RangeAll    RangeKind = "all"
	RangeWeek   RangeKind = "7"
	RangeMonth  RangeKind = "30"
	RangeWeeks  RangeKind = "90"
	RangeYear   RangeKind = "year"
	RangeCustom RangeKind = "custom"
)

// InputDate is the layout of custom range bounds.
const InputDate = "2006-01-02"

// ErrIncompleteRange is returned when a custom range is missing a bound.
var ErrIncompleteRange = errors.New("please select both start and end dates")

// RangeError reports an invalid range selection.
type RangeError struct {
	Value   string
	Message string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid date range %q: %s", e.Value, e.Message)
}

// Range is the chart date window. Start and End are inclusive and only used
// for RangeCustom.
type Range struct {
	Kind  RangeKind `json:"kind"`
	Start time.Time `json:"start,omitzero"`
	End   time.Time `json:"end,omitzero"`
}

// AllTime is the default range.
func AllTime() Range {
	return Range{Kind: RangeAll}
}

// ParseRange validates a preset kind ("all", "7", "30", "90", "year").
// Custom ranges go through CustomRange.
func ParseRange(kind string) (Range, error) {
	switch k := RangeKind(strings.ToLower(strings.TrimSpace(kind))); k {
	case "", RangeAll:
		return AllTime(), nil
	case RangeWeek, RangeMonth, RangeWeeks, RangeYear:
		return Range{Kind: k}, nil
	case RangeCustom:
		return Range{}, ErrIncompleteRange
	}
	return Range{}, &RangeError{Value: kind, Message: "unknown range"}
}

// CustomRange builds an inclusive range from two YYYY-MM-DD bounds. Both are
// required and start must not be after end; nothing is applied otherwise.
func CustomRange(start, end string) (Range, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" || end == "" {
		return Range{}, ErrIncompleteRange
	}
	s, err := time.Parse(InputDate, start)
	if err != nil {
		return Range{}, &RangeError{Value: start, Message: "start must be YYYY-MM-DD"}
	}
	e, err := time.Parse(InputDate, end)
	if err != nil {
		return Range{}, &RangeError{Value: end, Message: "end must be YYYY-MM-DD"}
	}
	if s.After(e) {
		return Range{}, &RangeError{Value: start + ".." + end, Message: "start is after end"}
	}
	return Range{Kind: RangeCustom, Start: s, End: e}, nil
}

// String is a short label for the range.
func (r Range) String() string {
	switch r.Kind {
	case RangeWeek, RangeMonth, RangeWeeks:
		return "last " + string(r.Kind) + " days"
	case RangeYear:
		return "this year"
	case RangeCustom:
		return r.Start.Format(InputDate) + " to " + r.End.Format(InputDate)
	default:
		return "all time"
	}
}

// FilterByRange returns the applications inside r. RangeAll returns every
// application, dated or not; other ranges only consider applications whose
// "Date Applied" parses as a date.
func FilterByRange(apps []records.Record, r Range, now time.Time) []records.Record {
	if r.Kind == RangeAll || r.Kind == "" {
		return apps
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var from, to time.Time
	switch r.Kind {
	case RangeWeek:
		from = today.AddDate(0, 0, -7)
	case RangeMonth:
		from = today.AddDate(0, 0, -30)
	case RangeWeeks:
		from = today.AddDate(0, 0, -90)
	case RangeYear:
		from = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case RangeCustom:
		from, to = r.Start, r.End
	}

	out := make([]records.Record, 0, len(apps))
	for _, app := range apps {
		v := app.Value(records.FieldDateApplied)
		if v.Kind != records.KindDate {
			continue
		}
		applied := v.DateKey()
		if applied.Before(from) {
			continue
		}
		if !to.IsZero() && applied.After(to) {
			continue
		}
		out = append(out, app)
	}
	return out
}
