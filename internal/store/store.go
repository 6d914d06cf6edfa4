// Package store holds the normalized record collections and the derived
// filtered view of applications.
package store

import (
	"strings"

	"github.com/jonathan/jobdash/internal/records"
)

// Store owns the three base collections and the current filtered view.
// It is not safe for concurrent use; callers serialize access.
type Store struct {
	applications []records.Record
	resumes      []records.Record
	templates    []records.Record
	filtered     []records.Record
}

// New returns an empty store.
func New() *Store {
	return &Store{
		applications: []records.Record{},
		resumes:      []records.Record{},
		templates:    []records.Record{},
		filtered:     []records.Record{},
	}
}

// SetApplications replaces the applications and resets the filtered view to
// the full collection. Callers re-run the view engine if criteria are active.
func (s *Store) SetApplications(recs []records.Record) {
	s.applications = orEmpty(recs)
	s.filtered = s.applications
}

// SetResumes replaces the resume library.
func (s *Store) SetResumes(recs []records.Record) {
	s.resumes = orEmpty(recs)
}

// SetTemplates replaces the follow-up templates.
func (s *Store) SetTemplates(recs []records.Record) {
	s.templates = orEmpty(recs)
}

// SetFilteredApplications replaces the filtered view only.
func (s *Store) SetFilteredApplications(recs []records.Record) {
	s.filtered = orEmpty(recs)
}

func (s *Store) Applications() []records.Record         { return s.applications }
func (s *Store) Resumes() []records.Record              { return s.resumes }
func (s *Store) Templates() []records.Record            { return s.templates }
func (s *Store) FilteredApplications() []records.Record { return s.filtered }

// UniqueStatuses returns the distinct non-empty application statuses in order
// of first appearance.
func (s *Store) UniqueStatuses() []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, app := range s.applications {
		status := app.Get(records.FieldApplicationStatus)
		if status == "" || seen[status] {
			continue
		}
		seen[status] = true
		out = append(out, status)
	}
	return out
}

// Stats holds the dashboard card counts. Buckets are evaluated independently
// and may overlap.
type Stats struct {
	Total      int `json:"total"`
	Applied    int `json:"applied"`
	Interviews int `json:"interviews"`
	Offers     int `json:"offers"`
	Rejected   int `json:"rejected"`
	Stale      int `json:"stale"`
}

// Stats counts over all applications, not the filtered view.
func (s *Store) Stats() Stats {
	return StatsFor(s.applications)
}

// StatsFor computes Stats over an arbitrary set of applications.
func StatsFor(apps []records.Record) Stats {
	st := Stats{Total: len(apps)}
	for _, app := range apps {
		status := app.Get(records.FieldApplicationStatus)
		switch status {
		case "Applied":
			st.Applied++
		case "Offer":
			st.Offers++
		case "Rejected":
			st.Rejected++
		}
		if IsInterviewLike(app) {
			st.Interviews++
		}
		if app.IsStale() {
			st.Stale++
		}
	}
	return st
}

// IsInterviewLike reports whether the status mentions an interview or a
// recruiter screen, or an interview stage is recorded.
func IsInterviewLike(app records.Record) bool {
	status := strings.ToLower(app.Get(records.FieldApplicationStatus))
	return strings.Contains(status, "interview") ||
		strings.Contains(status, "recruiter screen") ||
		app.Get(records.FieldInterviewStage) != ""
}

func orEmpty(recs []records.Record) []records.Record {
	if recs == nil {
		return []records.Record{}
	}
	return recs
}
