package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/jobdash/internal/charts"
	"github.com/jonathan/jobdash/internal/dashboard"
	"github.com/jonathan/jobdash/internal/format"
	"github.com/jonathan/jobdash/internal/prefs"
	"github.com/jonathan/jobdash/internal/records"
	"github.com/jonathan/jobdash/internal/view"
)

// CriteriaRequest replaces the filter criteria.
type CriteriaRequest struct {
	Search string `json:"search" validate:"max=200"`
	Status string `json:"status" validate:"max=200"`
	Stale  string `json:"stale" validate:"omitempty,oneof=STALE ACTIVE stale active"`
}

// ChartRangeRequest selects the chart date range.
type ChartRangeRequest struct {
	Range string `json:"range" validate:"required,oneof=all 7 30 90 year custom"`
	Start string `json:"start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ThemeRequest sets the color theme.
type ThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=light dark"`
}

// ApplicationsResponse is one page of the filtered applications.
type ApplicationsResponse struct {
	Applications []records.Record `json:"applications"`
	Rows         []format.Row     `json:"rows"`
	Page         view.PageInfo    `json:"page"`
	Criteria     view.Criteria    `json:"criteria"`
	Sort         view.SortOption  `json:"sort"`
	Column       view.ColumnSort  `json:"column"`
}

// ApplicationResponse is the detail view of one application.
type ApplicationResponse struct {
	Index   int            `json:"index"`
	Record  records.Record `json:"record"`
	Display format.Detail  `json:"display"`
}

// ChartsResponse carries every chart series plus the theme palette.
type ChartsResponse struct {
	charts.Data
	Palette charts.Palette `json:"palette"`
}

// decodeAndValidate reads a JSON body into dst and runs struct validation.
func (s *Server) decodeAndValidate(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	if err := s.validate.Struct(dst); err != nil {
		return extractValidationError(err)
	}
	return nil
}

// extractValidationError converts the first validator failure to ErrValidation.
func extractValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		msg := fe.Tag()
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		return &ErrValidation{Field: strings.ToLower(fe.Field()), Message: "failed " + msg}
	}
	return &ErrValidation{Field: "body", Message: "invalid request"}
}

// applyViewQuery applies any of search, status, stale, sort, rows and page
// from the query string. Everything is validated before anything changes.
func (s *Server) applyViewQuery(q url.Values) error {
	cr := s.ctrl.Criteria()
	criteriaSet := false
	if q.Has("search") {
		cr.Search = q.Get("search")
		criteriaSet = true
	}
	if q.Has("status") {
		cr.Status = q.Get("status")
		criteriaSet = true
	}
	if q.Has("stale") {
		st, err := view.ParseStaleness(q.Get("stale"))
		if err != nil {
			return err
		}
		cr.Staleness = st
		criteriaSet = true
	}

	var sortOpt view.SortOption
	if q.Has("sort") {
		o, err := view.ParseSortOption(q.Get("sort"))
		if err != nil {
			return err
		}
		sortOpt = o
	}

	var size view.PageSize
	if q.Has("rows") {
		sz, err := view.ParsePageSize(q.Get("rows"))
		if err != nil {
			return err
		}
		size = sz
	}

	page := 0
	if q.Has("page") {
		n, err := strconv.Atoi(q.Get("page"))
		if err != nil || n < 1 {
			return &ErrValidation{Field: "page", Message: "must be a positive integer"}
		}
		page = n
	}

	// Only apply real changes so an unchanged selector does not reset the page.
	if criteriaSet && cr != s.ctrl.Criteria() {
		s.ctrl.SetCriteria(cr)
	}
	if q.Has("sort") && (sortOpt != s.ctrl.SortOption() || s.ctrl.ColumnSort().Active()) {
		s.ctrl.SetSortOption(sortOpt)
	}
	if q.Has("rows") && size != s.ctrl.Page().Info.PageSize {
		s.ctrl.SetPageSize(size)
	}
	if page > 0 {
		s.ctrl.GoToPage(page)
	}
	return nil
}

func (s *Server) applicationsResponse() ApplicationsResponse {
	pv := s.ctrl.Page()
	rows := make([]format.Row, len(pv.Records))
	for i, rec := range pv.Records {
		rows[i] = format.TableRow(pv.Offset+i, rec)
	}
	return ApplicationsResponse{
		Applications: pv.Records,
		Rows:         rows,
		Page:         pv.Info,
		Criteria:     s.ctrl.Criteria(),
		Sort:         s.ctrl.SortOption(),
		Column:       s.ctrl.ColumnSort(),
	}
}

// handleListApplications returns the current page, after applying any view query.
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	if err := s.applyViewQuery(r.URL.Query()); err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.applicationsResponse())
}

// handleGetApplication returns one application of the filtered view.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		s.errResponse(w, &ErrValidation{Field: "index", Message: "must be an integer"})
		return
	}
	app, err := s.ctrl.Application(index)
	if err != nil {
		s.errResponse(w, &ErrNotFound{Resource: "application", ID: raw})
		return
	}
	s.jsonResponse(w, http.StatusOK, ApplicationResponse{
		Index:   index,
		Record:  app,
		Display: format.ApplicationDetail(index, app),
	})
}

// handleSetCriteria replaces all filters.
func (s *Server) handleSetCriteria(w http.ResponseWriter, r *http.Request) {
	var req CriteriaRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	stale, err := view.ParseStaleness(req.Stale)
	if err != nil {
		s.errResponse(w, err)
		return
	}
	s.ctrl.SetCriteria(view.Criteria{Search: req.Search, Status: req.Status, Staleness: stale})
	s.jsonResponse(w, http.StatusOK, s.applicationsResponse())
}

// handleSortColumn toggles the sort on a column header.
func (s *Server) handleSortColumn(w http.ResponseWriter, r *http.Request) {
	column := strings.TrimSpace(r.PathValue("column"))
	if column == "" {
		s.errResponse(w, &ErrValidation{Field: "column", Message: "is required"})
		return
	}
	s.ctrl.SortByColumn(column)
	s.jsonResponse(w, http.StatusOK, s.applicationsResponse())
}

func (s *Server) handleNextPage(w http.ResponseWriter, _ *http.Request) {
	s.ctrl.NextPage()
	s.jsonResponse(w, http.StatusOK, s.applicationsResponse())
}

func (s *Server) handlePrevPage(w http.ResponseWriter, _ *http.Request) {
	s.ctrl.PrevPage()
	s.jsonResponse(w, http.StatusOK, s.applicationsResponse())
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.ctrl.Stats())
}

func (s *Server) handleStatuses(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"statuses": s.ctrl.UniqueStatuses()})
}

func (s *Server) handleResumes(w http.ResponseWriter, _ *http.Request) {
	resumes := s.ctrl.Resumes()
	cards := make([]format.Resume, len(resumes))
	for i, r := range resumes {
		cards[i] = format.ResumeCard(r)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": cards, "records": resumes})
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	templates := s.ctrl.Templates()
	cards := make([]format.Template, len(templates))
	for i, t := range templates {
		cards[i] = format.TemplateCard(t)
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": cards, "records": templates})
}

// handleGetTemplate returns one follow-up template by name, for copying its body.
func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	t, err := s.ctrl.Template(name)
	if err != nil {
		s.errResponse(w, &ErrNotFound{Resource: "template", ID: name})
		return
	}
	s.jsonResponse(w, http.StatusOK, format.TemplateCard(t))
}

// handleCharts returns chart series; range, start and end optionally change the range first.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("range") {
		if err := s.setChartRange(q.Get("range"), q.Get("start"), q.Get("end")); err != nil {
			s.errResponse(w, err)
			return
		}
	}
	s.jsonResponse(w, http.StatusOK, s.chartsResponse())
}

func (s *Server) handleSetChartRange(w http.ResponseWriter, r *http.Request) {
	var req ChartRangeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	if err := s.setChartRange(req.Range, req.Start, req.End); err != nil {
		s.errResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.chartsResponse())
}

func (s *Server) setChartRange(kind, start, end string) error {
	if charts.RangeKind(kind) == charts.RangeCustom {
		return s.ctrl.SetCustomRange(start, end)
	}
	rg, err := charts.ParseRange(kind)
	if err != nil {
		return err
	}
	s.ctrl.SetChartRange(rg)
	return nil
}

func (s *Server) chartsResponse() ChartsResponse {
	return ChartsResponse{
		Data:    s.ctrl.ChartData(s.now()),
		Palette: charts.PaletteFor(string(s.ctrl.Theme())),
	}
}

// handleRefresh reloads all tabs from the spreadsheet.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := s.ctrl.Refresh(r.Context())
	switch {
	case errors.Is(err, dashboard.ErrStaleResult):
		s.errResponse(w, err)
		return
	case err != nil:
		log.Printf("[refresh] %v", err)
		s.errorResponse(w, http.StatusBadGateway, dashboard.LoadFailedMessage)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": s.ctrl.Status(),
		"stats":  s.ctrl.Stats(),
	})
}

func (s *Server) handleLoadStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.ctrl.Status())
}

func (s *Server) handleGetTheme(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, ThemeRequest{Theme: string(s.ctrl.Theme())})
}

func (s *Server) handleSetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := s.decodeAndValidate(r, &req); err != nil {
		s.errResponse(w, err)
		return
	}
	if err := s.ctrl.SetTheme(prefs.Theme(req.Theme)); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save theme")
		return
	}
	s.jsonResponse(w, http.StatusOK, req)
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, _ *http.Request) {
	theme, err := s.ctrl.ToggleTheme()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to save theme")
		return
	}
	s.jsonResponse(w, http.StatusOK, ThemeRequest{Theme: string(theme)})
}
