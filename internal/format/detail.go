package format

import (
	"net/url"
	"strings"

	"github.com/jonathan/jobdash/internal/records"
)

// Row is one line of the applications table.
type Row struct {
	Index            int    `json:"index"`
	Company          string `json:"company"`
	JobTitle         string `json:"job_title"`
	Location         string `json:"location"`
	Status           string `json:"status"`
	StatusClass      string `json:"status_class"`
	DateApplied      string `json:"date_applied"`
	DaysSinceApplied string `json:"days_since_applied"`
	Priority         string `json:"priority"`
	StaleFlag        string `json:"stale_flag"`
	Stale            bool   `json:"stale"`
}

// TableRow formats an application for the table; index is its position in
// the filtered view.
func TableRow(index int, app records.Record) Row {
	status := app.Get(records.FieldApplicationStatus)
	return Row{
		Index:            index,
		Company:          app.Get(records.FieldCompanyName),
		JobTitle:         app.Get(records.FieldJobTitle),
		Location:         app.Get(records.FieldLocation),
		Status:           status,
		StatusClass:      StatusClass(status),
		DateApplied:      Date(app.Get(records.FieldDateApplied)),
		DaysSinceApplied: OrDash(app.Get(records.FieldDaysSinceApplied)),
		Priority:         OrDash(app.Get(records.FieldPriorityScore)),
		StaleFlag:        OrDash(app.Get(records.FieldStaleFlag)),
		Stale:            app.IsStale(),
	}
}

// Link is an outbound link shown in the detail view.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Detail is the display form of one application.
type Detail struct {
	Index          int    `json:"index"`
	Company        string `json:"company"`
	JobTitle       string `json:"job_title"`
	Location       string `json:"location"`
	JobType        string `json:"job_type"`
	Industry       string `json:"industry"`
	Status         string `json:"status"`
	InterviewStage string `json:"interview_stage"`
	DateApplied    string `json:"date_applied"`
	LastContact    string `json:"last_contact"`
	FollowUp       string `json:"follow_up"`
	SalaryRange    string `json:"salary_range"`
	MinimumSalary  string `json:"minimum_salary"`
	ResumeUsed     string `json:"resume_used"`
	CoverLetter    string `json:"cover_letter"`
	Notes          string `json:"notes,omitempty"`
	Links          []Link `json:"links"`
}

// ApplicationDetail formats every detail field of an application.
func ApplicationDetail(index int, app records.Record) Detail {
	d := Detail{
		Index:          index,
		Company:        OrDash(app.Get(records.FieldCompanyName)),
		JobTitle:       OrDash(app.Get(records.FieldJobTitle)),
		Location:       OrDash(app.Get(records.FieldLocation)),
		JobType:        OrDash(app.Get(records.FieldJobType)),
		Industry:       OrDash(app.Get(records.FieldIndustry)),
		Status:         OrDash(app.Get(records.FieldApplicationStatus)),
		InterviewStage: OrDash(app.Get(records.FieldInterviewStage)),
		DateApplied:    Date(app.Get(records.FieldDateApplied)),
		LastContact:    Date(app.Get(records.FieldLastContactDate)),
		FollowUp:       Date(app.Get(records.FieldFollowUpDate)),
		SalaryRange:    SalaryRange(app.Get(records.FieldSalaryLow), app.Get(records.FieldSalaryHigh)),
		MinimumSalary:  Money(app.Get(records.FieldMinimumSalary)),
		ResumeUsed:     OrDash(app.Get(records.FieldResumeUsed)),
		CoverLetter:    OrDash(app.Get(records.FieldCoverLetterUsed)),
		Notes:          strings.TrimSpace(app.Get(records.FieldGeneralNotes)),
		Links:          []Link{},
	}
	for _, l := range []Link{
		{Label: "Job Posting", URL: app.Get(records.FieldJobPostingLink)},
		{Label: "LinkedIn", URL: app.Get(records.FieldLinkedInJobLink)},
		{Label: "Company Site", URL: app.Get(records.FieldCompanyWebsite)},
	} {
		if SafeURL(l.URL) {
			d.Links = append(d.Links, l)
		}
	}
	return d
}

// Resume is a Resume Library card.
type Resume struct {
	ID          string `json:"id"`
	Focus       string `json:"focus"`
	Version     string `json:"version"`
	LastUpdated string `json:"last_updated"`
	Notes       string `json:"notes,omitempty"`
	FileLink    string `json:"file_link,omitempty"`
}

// ResumeCard formats a Resume Library row.
func ResumeCard(r records.Record) Resume {
	id := r.Get(records.FieldResumeID)
	if strings.TrimSpace(id) == "" {
		id = "Untitled"
	}
	out := Resume{
		ID:          id,
		Focus:       OrDash(r.Get(records.FieldFocus)),
		Version:     OrDash(r.Get(records.FieldVersion)),
		LastUpdated: Date(r.Get(records.FieldLastUpdated)),
		Notes:       strings.TrimSpace(r.Get(records.FieldNotes)),
	}
	if link := r.Get(records.FieldFileLink); SafeURL(link) {
		out.FileLink = link
	}
	return out
}

// Template is a Follow-Up Templates card.
type Template struct {
	Name    string `json:"name"`
	UseCase string `json:"use_case"`
	Body    string `json:"body"`
}

// TemplateCard formats a Follow-Up Templates row.
func TemplateCard(r records.Record) Template {
	name := r.Get(records.FieldTemplateName)
	if strings.TrimSpace(name) == "" {
		name = "Untitled"
	}
	return Template{
		Name:    name,
		UseCase: r.Get(records.FieldUseCase),
		Body:    r.Get(records.FieldEmailBody),
	}
}

// SafeURL reports whether s is an absolute http(s) URL fit for an href.
func SafeURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
