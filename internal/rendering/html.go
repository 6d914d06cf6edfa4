// Package rendering renders the server-side HTML dashboard page.
package rendering

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"sync"

	"github.com/jonathan/jobdash/internal/charts"
	"github.com/jonathan/jobdash/internal/format"
	"github.com/jonathan/jobdash/internal/store"
	"github.com/jonathan/jobdash/internal/view"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

// Choice is one <option> of a selector.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

// Column is a sortable table header.
type Column struct {
	Field string
	Label string
	// Sort is "asc", "desc" or "" for the column's current direction.
	Sort  string
}

// PageData is everything the dashboard template displays.
type PageData struct {
	Title     string
	Theme     string
	LoadError string
	LoadedAt  string

	Stats       store.Stats
	Statuses    []Choice
	Staleness   []Choice
	SortOptions []Choice
	PageSizes   []Choice
	Search      string

	Columns   []Column
	Rows      []format.Row
	Page      view.PageInfo
	// PrevPage and NextPage are 0 when there is no such page.
	PrevPage  int
	NextPage  int
	Resumes   []format.Resume
	Templates []format.Template

	ChartRange string
	Palette    charts.Palette
}

var (
	parseOnce sync.Once
	page      *template.Template
	parseErr  error
)

func dashboardTemplate() (*template.Template, error) {
	parseOnce.Do(func() {
		page, parseErr = template.New("dashboard.html.tmpl").Funcs(template.FuncMap{
			"percent": format.Percent,
		}).ParseFS(templateFiles, "templates/dashboard.html.tmpl")
	})
	if parseErr != nil {
		return nil, &TemplateError{Message: "failed to parse dashboard template", Cause: parseErr}
	}
	return page, nil
}

// RenderDashboard writes the dashboard page. Output is buffered so a failed
// render never sends a partial page.
func RenderDashboard(w io.Writer, data PageData) error {
	tmpl, err := dashboardTemplate()
	if err != nil {
		return err
	}
	if data.Title == "" {
		data.Title = "Job Application Dashboard"
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return &TemplateError{Message: "failed to execute dashboard template", Cause: err}
	}
	_, err = buf.WriteTo(w)
	return err
}
