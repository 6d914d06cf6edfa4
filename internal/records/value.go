package records

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Kind tags the parsed form of a cell.
type Kind int

const (
	KindEmpty Kind = iota
	KindNumber
	KindDate
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Value is a cell parsed once at normalization time.
type Value struct {
	Kind   Kind
	Raw    string
	Number float64
	Time   time.Time
}

// Epoch is the sort key for dates that cannot be parsed.
var Epoch = time.Unix(0, 0).UTC()

// Spreadsheet date serials outside this window are treated as plain numbers.
const (
	minDateSerial = 20000 // 1954-10-03
	maxDateSerial = 80000 // 2119-01-10
)

var dateFields = map[string]bool{
	FieldDateApplied:     true,
	FieldLastContactDate: true,
	FieldLastUpdated:     true,
	FieldFollowUpDate:    true,
}

// IsDateField reports whether a column holds calendar dates.
func IsDateField(field string) bool {
	return dateFields[field]
}

// ParseValue classifies a raw cell. Date columns try calendar parsing first;
// anything numeric becomes a Number; everything else is Text.
func ParseValue(field, raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Value{Kind: KindEmpty, Raw: raw}
	}
	if IsDateField(field) {
		if t, ok := ParseDate(trimmed); ok {
			return Value{Kind: KindDate, Raw: raw, Time: t}
		}
	}
	if f, ok := ParseNumber(trimmed); ok {
		return Value{Kind: KindNumber, Raw: raw, Number: f}
	}
	return Value{Kind: KindText, Raw: raw}
}

// ParseNumber parses a finite float, ignoring surrounding whitespace.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseDate parses M/D/YYYY (the sheet's display format), YYYY-MM-DD, or a
// spreadsheet date serial. Any trailing time-of-day is ignored.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if i := strings.IndexAny(s, " T"); i > 0 {
		s = s[:i]
	}

	if parts := strings.Split(s, "/"); len(parts) == 3 {
		return civilDate(parts[2], parts[0], parts[1])
	}
	if parts := strings.Split(s, "-"); len(parts) == 3 && len(parts[0]) == 4 {
		return civilDate(parts[0], parts[1], parts[2])
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial >= minDateSerial && serial <= maxDateSerial {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				y, m, d := t.Date()
				return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
			}
		}
	}
	return time.Time{}, false
}

func civilDate(year, month, day string) (time.Time, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil || y <= 0 || y > 9999 {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(month))
	if err != nil || m < 1 || m > 12 {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(strings.TrimSpace(day))
	if err != nil || d < 1 || d > 31 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		// 2/30 and friends roll over into the next month
		return time.Time{}, false
	}
	return t, true
}

// DateKey returns the sortable calendar key for s, or Epoch when s is not a date.
func DateKey(s string) time.Time {
	if t, ok := ParseDate(s); ok {
		return t
	}
	return Epoch
}

// DateKey returns the value's calendar key, or Epoch for non-dates.
func (v Value) DateKey() time.Time {
	if v.Kind == KindDate {
		return v.Time
	}
	return DateKey(v.Raw)
}

// Float returns the numeric value, or 0 for non-numbers.
func (v Value) Float() float64 {
	if v.Kind == KindNumber {
		return v.Number
	}
	return 0
}

// Compare orders two values. Numbers compare numerically and dates
// chronologically; otherwise values order by kind (empty, number, date, text)
// and text compares as case-sensitive strings. The result is a total order.
func Compare(a, b Value) int {
	if a.Kind == b.Kind {
		switch a.Kind {
		case KindEmpty:
			return 0
		case KindNumber:
			return compareFloat(a.Number, b.Number)
		case KindDate:
			return a.Time.Compare(b.Time)
		default:
			return strings.Compare(a.Raw, b.Raw)
		}
	}
	if a.Kind < b.Kind {
		return -1
	}
	return 1
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
