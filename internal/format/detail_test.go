package format

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobdash/internal/records"
)

func TestTableRow(t *testing.T) {
	app := records.FromMap(map[string]string{
		records.FieldCompanyName:       "Acme",
		records.FieldJobTitle:          "Engineer",
		records.FieldApplicationStatus: "Phone Screen",
		records.FieldDateApplied:       "1/15/2024",
		records.FieldStaleFlag:         "STALE",
	})

	row := TableRow(4, app)
	assert.Equal(t, 4, row.Index)
	assert.Equal(t, "phone-screen", row.StatusClass)
	assert.Equal(t, "Jan 15, 2024", row.DateApplied)
	assert.Equal(t, Placeholder, row.DaysSinceApplied)
	assert.Equal(t, Placeholder, row.Priority)
	assert.True(t, row.Stale)
}

func TestApplicationDetail(t *testing.T) {
	app := records.FromMap(map[string]string{
		records.FieldCompanyName:     "Acme",
		records.FieldSalaryLow:       "120000",
		records.FieldSalaryHigh:      "150000",
		records.FieldMinimumSalary:   "$110,000",
		records.FieldJobPostingLink:  "https://jobs.example.com/1",
		records.FieldLinkedInJobLink: "javascript:alert(1)",
		records.FieldCompanyWebsite:  "",
		records.FieldGeneralNotes:    "  referred by Sam ",
	})

	d := ApplicationDetail(0, app)
	assert.Equal(t, "Acme", d.Company)
	assert.Equal(t, Placeholder, d.Location)
	assert.Equal(t, "$120,000 - $150,000", d.SalaryRange)
	assert.Equal(t, "$110,000", d.MinimumSalary)
	assert.Equal(t, "referred by Sam", d.Notes)
	assert.Equal(t, []Link{{Label: "Job Posting", URL: "https://jobs.example.com/1"}}, d.Links)
}

func TestResumeAndTemplateCards(t *testing.T) {
	r := ResumeCard(records.FromMap(map[string]string{
		records.FieldFocus:       "Backend",
		records.FieldLastUpdated: "2024-02-01",
		records.FieldFileLink:    "https://drive.example.com/r1",
	}))
	assert.Equal(t, "Untitled", r.ID)
	assert.Equal(t, "Feb 1, 2024", r.LastUpdated)
	assert.Equal(t, Placeholder, r.Version)
	assert.Equal(t, "https://drive.example.com/r1", r.FileLink)

	tpl := TemplateCard(records.FromMap(map[string]string{
		records.FieldTemplateName: "Thank You",
		records.FieldEmailBody:    "Thanks for your time.",
	}))
	assert.Equal(t, Template{Name: "Thank You", Body: "Thanks for your time."}, tpl)
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/a?b=c", true},
		{"example.com", false},
		{"javascript:alert(1)", false},
		{"", false},
		{"ftp://example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeURL(tt.in))
		})
	}
}
