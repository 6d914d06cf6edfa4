// Package view computes the filtered, sorted and paginated view of
// applications that the dashboard tables display.
package view

import (
	"fmt"
	"strings"

	"github.com/jonathan/jobdash/internal/records"
)

// Staleness selects applications by their stale flag.
type Staleness string

const (
	StalenessAny    Staleness = ""
	StalenessStale  Staleness = "STALE"
	StalenessActive Staleness = "ACTIVE"
)

// OptionError reports a selector value that is not one of the known options.
type OptionError struct {
	Option string
	Value  string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Option, e.Value)
}

// ParseStaleness accepts "", "STALE" or "ACTIVE" (case-insensitive).
func ParseStaleness(s string) (Staleness, error) {
	switch Staleness(strings.ToUpper(strings.TrimSpace(s))) {
	case StalenessAny:
		return StalenessAny, nil
	case StalenessStale:
		return StalenessStale, nil
	case StalenessActive:
		return StalenessActive, nil
	}
	return StalenessAny, &OptionError{Option: "staleness filter", Value: s}
}

// Criteria are the filter inputs. Zero values match everything.
type Criteria struct {
	Search    string    `json:"search"`
	Status    string    `json:"status"`
	Staleness Staleness `json:"stale"`
}

// Matches applies the search, status and staleness predicates (ANDed).
func (c Criteria) Matches(app records.Record) bool {
	return c.matchesSearch(app) && c.matchesStatus(app) && c.matchesStaleness(app)
}

func (c Criteria) matchesSearch(app records.Record) bool {
	term := strings.ToLower(c.Search)
	if term == "" {
		return true
	}
	for _, field := range []string{records.FieldCompanyName, records.FieldJobTitle, records.FieldLocation} {
		if strings.Contains(strings.ToLower(app.Get(field)), term) {
			return true
		}
	}
	return false
}

func (c Criteria) matchesStatus(app records.Record) bool {
	return c.Status == "" || app.Get(records.FieldApplicationStatus) == c.Status
}

func (c Criteria) matchesStaleness(app records.Record) bool {
	switch c.Staleness {
	case StalenessStale:
		return app.IsStale()
	case StalenessActive:
		return !app.IsStale()
	default:
		return true
	}
}

// Filter returns the applications matching c, in their original order.
// The input slice is never modified.
func Filter(apps []records.Record, c Criteria) []records.Record {
	out := make([]records.Record, 0, len(apps))
	for _, app := range apps {
		if c.Matches(app) {
			out = append(out, app)
		}
	}
	return out
}
