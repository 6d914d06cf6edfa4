package view

import (
	"slices"
	"strings"

	"github.com/jonathan/jobdash/internal/records"
)

// SortOption is the preset ordering chosen from the sort selector.
type SortOption string

const (
	SortNone         SortOption = ""
	SortCompanyAsc   SortOption = "company-asc"
	SortCompanyDesc  SortOption = "company-desc"
	SortDateOldest   SortOption = "date-oldest"
	SortDateNewest   SortOption = "date-newest"
	SortPriorityLow  SortOption = "priority-low"
	SortPriorityHigh SortOption = "priority-high"
)

// SortOptions lists the selector entries in display order.
var SortOptions = []SortOption{
	SortNone, SortCompanyAsc, SortCompanyDesc,
	SortDateNewest, SortDateOldest,
	SortPriorityHigh, SortPriorityLow,
}

// ParseSortOption validates a selector value.
func ParseSortOption(s string) (SortOption, error) {
	opt := SortOption(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortOptions, opt) {
		return opt, nil
	}
	return SortNone, &OptionError{Option: "sort option", Value: s}
}

// Label is the human readable name of the option.
func (o SortOption) Label() string {
	switch o {
	case SortCompanyAsc:
		return "Company (A-Z)"
	case SortCompanyDesc:
		return "Company (Z-A)"
	case SortDateOldest:
		return "Date Applied (Oldest)"
	case SortDateNewest:
		return "Date Applied (Newest)"
	case SortPriorityLow:
		return "Priority (Low-High)"
	case SortPriorityHigh:
		return "Priority (High-Low)"
	default:
		return "Default Order"
	}
}

// Comparator returns the ordering for the option, or nil for SortNone.
func (o SortOption) Comparator() func(a, b records.Record) int {
	switch o {
	case SortCompanyAsc:
		return byCompany
	case SortCompanyDesc:
		return reverse(byCompany)
	case SortDateOldest:
		return byDateApplied
	case SortDateNewest:
		return reverse(byDateApplied)
	case SortPriorityLow:
		return byPriority
	case SortPriorityHigh:
		return reverse(byPriority)
	default:
		return nil
	}
}

func byCompany(a, b records.Record) int {
	return strings.Compare(a.Get(records.FieldCompanyName), b.Get(records.FieldCompanyName))
}

func byDateApplied(a, b records.Record) int {
	return a.Value(records.FieldDateApplied).DateKey().Compare(b.Value(records.FieldDateApplied).DateKey())
}

func byPriority(a, b records.Record) int {
	x := a.Value(records.FieldPriorityScore).Float()
	y := b.Value(records.FieldPriorityScore).Float()
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func reverse(cmp func(a, b records.Record) int) func(a, b records.Record) int {
	return func(a, b records.Record) int { return cmp(b, a) }
}

// ColumnSort is the ordering set by clicking a table header.
type ColumnSort struct {
	Column     string `json:"column"`
	Descending bool   `json:"descending"`
}

// Active reports whether a column has been chosen.
func (c ColumnSort) Active() bool {
	return c.Column != ""
}

// Toggle returns the sort after a click on column: the same column flips
// direction, a new column starts ascending.
func (c ColumnSort) Toggle(column string) ColumnSort {
	if c.Column == column {
		return ColumnSort{Column: column, Descending: !c.Descending}
	}
	return ColumnSort{Column: column}
}

// Comparator orders by the column's parsed values. Date columns compare by
// calendar key with unparseable dates at the epoch; other columns use
// records.Compare. Two numbers compare numerically and two texts as strings,
// but a mixed pair is ranked by kind (empty, number, date, text) rather than
// compared as strings, so "10" sorts before "-".
func (c ColumnSort) Comparator() func(a, b records.Record) int {
	if !c.Active() {
		return nil
	}
	col := c.Column
	cmp := func(a, b records.Record) int {
		return records.Compare(a.Value(col), b.Value(col))
	}
	if records.IsDateField(col) {
		cmp = func(a, b records.Record) int {
			return a.Value(col).DateKey().Compare(b.Value(col).DateKey())
		}
	}
	if c.Descending {
		return reverse(cmp)
	}
	return cmp
}

// Sort returns a stably sorted copy of recs. A nil comparator keeps the order.
func Sort(recs []records.Record, cmp func(a, b records.Record) int) []records.Record {
	out := slices.Clone(recs)
	if out == nil {
		out = []records.Record{}
	}
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}
