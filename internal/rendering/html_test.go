package rendering

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobdash/internal/charts"
	"github.com/jonathan/jobdash/internal/format"
	"github.com/jonathan/jobdash/internal/records"
	"github.com/jonathan/jobdash/internal/store"
	"github.com/jonathan/jobdash/internal/view"
)

func render(t *testing.T, data PageData) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, data))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRenderDashboard_StatsAndRows(t *testing.T) {
	app := records.FromMap(map[string]string{
		records.FieldCompanyName:       "Acme",
		records.FieldApplicationStatus: "Phone Screen",
		records.FieldStaleFlag:         "STALE",
	})
	doc := render(t, PageData{
		Theme:    "dark",
		Stats:    store.Stats{Total: 12, Applied: 5, Interviews: 3, Offers: 1, Rejected: 2, Stale: 4},
		Statuses: []Choice{{Value: "Applied", Label: "Applied"}, {Value: "Phone Screen", Label: "Phone Screen", Selected: true}},
		Rows:     []format.Row{format.TableRow(0, app)},
		Page:     view.PageInfo{CurrentPage: 1, TotalPages: 2, TotalRecords: 30, PageSize: 25, From: 1, To: 25},
		NextPage: 2,
		Palette:  charts.PaletteFor("dark"),
	})

	assert.Equal(t, "Job Application Dashboard", doc.Find("title").Text())
	assert.True(t, doc.Find("body").HasClass("theme-dark"))
	assert.Equal(t, "12", doc.Find("#totalApps .value").Text())
	assert.Equal(t, "4", doc.Find("#staleCount .value").Text())

	selected := doc.Find("#statusFilter option[selected]")
	assert.Equal(t, 1, selected.Length())
	assert.Equal(t, "Phone Screen", selected.AttrOr("value", ""))

	row := doc.Find("#applicationsTableBody tr")
	require.Equal(t, 1, row.Length())
	assert.Equal(t, "Acme", row.Find("strong").Text())
	assert.True(t, row.Find(".status-badge").HasClass("status-phone-screen"))
	assert.Equal(t, 1, row.Find("td.flag-stale").Length())

	assert.Equal(t, "Page 1 of 2", doc.Find("#pageInfo").Text())
	assert.Equal(t, "Showing 1-25 of 30", doc.Find("#rowRange").Text())
	assert.Equal(t, "/?page=2", doc.Find("a#nextPage").AttrOr("href", ""))
	assert.Equal(t, 0, doc.Find("a#prevPage").Length())
}

func TestRenderDashboard_EmptyStates(t *testing.T) {
	doc := render(t, PageData{
		Theme:     "light",
		LoadError: "failed to load",
		Page:      view.PageInfo{CurrentPage: 1, TotalPages: 1},
	})

	assert.Equal(t, "failed to load", strings.TrimSpace(doc.Find(".load-error").Text()))
	assert.Equal(t, "No applications found", doc.Find("#applicationsTableBody tr.empty").Text())
	assert.Equal(t, "Showing 0 of 0", doc.Find("#rowRange").Text())
	assert.Equal(t, 1, doc.Find("#resumes .empty").Length())
	assert.Equal(t, 1, doc.Find("#templates .empty").Length())
}

func TestRenderDashboard_EscapesSheetContent(t *testing.T) {
	app := records.FromMap(map[string]string{
		records.FieldCompanyName: `<script>alert("x")</script>`,
	})
	var buf bytes.Buffer
	require.NoError(t, RenderDashboard(&buf, PageData{
		Rows:      []format.Row{format.TableRow(0, app)},
		Templates: []format.Template{{Name: "Hi", Body: "<b>bold</b>"}},
	}))

	out := buf.String()
	assert.NotContains(t, out, `<script>alert`)
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, "<b>bold</b>")
}

func TestRenderDashboard_Cards(t *testing.T) {
	doc := render(t, PageData{
		Resumes:   []format.Resume{{ID: "R1", Focus: "Backend", Version: "2", LastUpdated: "Feb 1, 2024", FileLink: "https://example.com/r1"}},
		Templates: []format.Template{{Name: "Thank You", UseCase: "After interview", Body: "Thanks!"}},
	})

	card := doc.Find(".resume-card")
	require.Equal(t, 1, card.Length())
	assert.Equal(t, "R1", card.Find("h3").Text())
	assert.Equal(t, "https://example.com/r1", card.Find("a").AttrOr("href", ""))
	assert.Equal(t, "Thanks!", doc.Find(".template-card .template-body").Text())
}
