package server

import (
	"log"
	"net/http"

	"github.com/jonathan/jobdash/internal/charts"
	"github.com/jonathan/jobdash/internal/dashboard"
	"github.com/jonathan/jobdash/internal/format"
	"github.com/jonathan/jobdash/internal/records"
	"github.com/jonathan/jobdash/internal/rendering"
	"github.com/jonathan/jobdash/internal/view"
)

// tableColumns are the sortable headers of the applications table.
var tableColumns = []rendering.Column{
	{Field: records.FieldCompanyName, Label: "Company"},
	{Field: records.FieldJobTitle, Label: "Job Title"},
	{Field: records.FieldLocation, Label: "Location"},
	{Field: records.FieldApplicationStatus, Label: "Status"},
	{Field: records.FieldDateApplied, Label: "Date Applied"},
	{Field: records.FieldDaysSinceApplied, Label: "Days Since"},
	{Field: records.FieldPriorityScore, Label: "Priority"},
	{Field: records.FieldStaleFlag, Label: "Stale"},
}

// handleDashboard renders the HTML dashboard. It accepts the same query
// parameters as GET /api/applications.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if err := s.applyViewQuery(r.URL.Query()); err != nil {
		http.Error(w, err.Error(), HTTPStatus(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rendering.RenderDashboard(w, s.pageData()); err != nil {
		log.Printf("[dashboard] render failed: %v", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
	}
}

func (s *Server) pageData() rendering.PageData {
	pv := s.ctrl.Page()
	cr := s.ctrl.Criteria()
	status := s.ctrl.Status()
	theme := string(s.ctrl.Theme())

	data := rendering.PageData{
		Theme:      theme,
		Stats:      s.ctrl.Stats(),
		Search:     cr.Search,
		Page:       pv.Info,
		ChartRange: s.ctrl.ChartRange().String(),
		Palette:    charts.PaletteFor(theme),
	}
	if status.State == dashboard.StateFailed {
		data.LoadError = status.Message
	}
	if !status.LoadedAt.IsZero() {
		data.LoadedAt = status.LoadedAt.Local().Format("Jan 2, 2006 3:04 PM")
	}

	for _, st := range s.ctrl.UniqueStatuses() {
		data.Statuses = append(data.Statuses, rendering.Choice{Value: st, Label: st, Selected: st == cr.Status})
	}
	for _, st := range []struct {
		v     view.Staleness
		label string
	}{
		{view.StalenessAny, "All Applications"},
		{view.StalenessActive, "Active Only"},
		{view.StalenessStale, "Stale Only"},
	} {
		data.Staleness = append(data.Staleness, rendering.Choice{Value: string(st.v), Label: st.label, Selected: st.v == cr.Staleness})
	}
	current := s.ctrl.SortOption()
	for _, o := range view.SortOptions {
		data.SortOptions = append(data.SortOptions, rendering.Choice{Value: string(o), Label: o.Label(), Selected: o == current})
	}
	for _, sz := range view.PageSizes {
		label := sz.String()
		if sz == view.AllRows {
			label = "All"
		}
		data.PageSizes = append(data.PageSizes, rendering.Choice{Value: sz.String(), Label: label, Selected: sz == pv.Info.PageSize})
	}

	cs := s.ctrl.ColumnSort()
	for _, c := range tableColumns {
		if cs.Column == c.Field {
			c.Sort = "asc"
			if cs.Descending {
				c.Sort = "desc"
			}
		}
		data.Columns = append(data.Columns, c)
	}

	for i, rec := range pv.Records {
		data.Rows = append(data.Rows, format.TableRow(pv.Offset+i, rec))
	}
	if pv.Info.CurrentPage > 1 {
		data.PrevPage = pv.Info.CurrentPage - 1
	}
	if pv.Info.CurrentPage < pv.Info.TotalPages {
		data.NextPage = pv.Info.CurrentPage + 1
	}

	for _, r := range s.ctrl.Resumes() {
		data.Resumes = append(data.Resumes, format.ResumeCard(r))
	}
	for _, t := range s.ctrl.Templates() {
		data.Templates = append(data.Templates, format.TemplateCard(t))
	}
	return data
}
