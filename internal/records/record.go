// Package records turns raw spreadsheet rows into field-keyed records.
package records

import (
	"encoding/json"
	"slices"
	"strings"
)

// Field names used across the Applications, Resume Library and Follow-Up Templates tabs.
const (
	FieldCompanyName       = "Company Name"
	FieldJobTitle          = "Job Title"
	FieldLocation          = "Location"
	FieldApplicationStatus = "Application Status"
	FieldInterviewStage    = "Interview Stage"
	FieldStaleFlag         = "Stale App Flag"
	FieldDateApplied       = "Date Applied"
	FieldDaysSinceApplied  = "Days Since Applied"
	FieldPriorityScore     = "Priority Score"
	FieldJobType           = "Job Type"
	FieldIndustry          = "Industry"
	FieldJobPostingLink    = "Job Posting Link"
	FieldLinkedInJobLink   = "LinkedIn Job Link"
	FieldCompanyWebsite    = "Company Website"
	FieldSalaryLow         = "Salary Range Low"
	FieldSalaryHigh        = "Salary Range High"
	FieldMinimumSalary     = "My Minimum Salary"
	FieldResumeUsed        = "Resume Used"
	FieldCoverLetterUsed   = "Cover Letter Used"
	FieldGeneralNotes      = "General Notes"
	FieldLastContactDate   = "Last Contact Date"
	FieldInterviewDates    = "Interview Dates"
	FieldFollowUpDate      = "Follow-Up Date"

	FieldResumeID    = "Resume ID"
	FieldFocus       = "Focus"
	FieldVersion     = "Version"
	FieldLastUpdated = "Last Updated"
	FieldNotes       = "Notes"
	FieldFileLink    = "File Link"

	FieldTemplateName = "Template Name"
	FieldUseCase      = "Use Case"
	FieldEmailBody    = "Email Body"
)

// StaleFlag is the "Stale App Flag" value that marks an application as stale.
const StaleFlag = "STALE"

// Record is one spreadsheet row keyed by header name.
// Raw cell text is always kept; Values holds the parsed form of each cell.
type Record struct {
	Fields map[string]string
	Values map[string]Value
	header []string
}

// NewRecord builds a record from parallel header and cell slices.
// Cells missing at the end of a short row become empty strings.
func NewRecord(header, cells []string) Record {
	r := Record{
		Fields: make(map[string]string, len(header)),
		Values: make(map[string]Value, len(header)),
		header: header,
	}
	for i, name := range header {
		raw := ""
		if i < len(cells) {
			raw = cells[i]
		}
		r.Fields[name] = raw
		r.Values[name] = ParseValue(name, raw)
	}
	return r
}

// FromMap builds a record from a plain field map. Header order is not known,
// so Header falls back to sorted keys.
func FromMap(fields map[string]string) Record {
	header := make([]string, 0, len(fields))
	for k := range fields {
		header = append(header, k)
	}
	slices.Sort(header)
	cells := make([]string, len(header))
	for i, k := range header {
		cells[i] = fields[k]
	}
	return NewRecord(header, cells)
}

// Get returns the raw value of a field, or "" when the field is absent.
func (r Record) Get(field string) string {
	return r.Fields[field]
}

// Value returns the parsed value of a field. Absent fields are Empty.
func (r Record) Value(field string) Value {
	if v, ok := r.Values[field]; ok {
		return v
	}
	return ParseValue(field, r.Fields[field])
}

// Header returns the field names in spreadsheet column order.
func (r Record) Header() []string {
	return r.header
}

// HasData reports whether any field is non-empty after trimming.
func (r Record) HasData() bool {
	for _, v := range r.Fields {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// IsStale reports whether the stale flag is set.
func (r Record) IsStale() bool {
	return r.Get(FieldStaleFlag) == StaleFlag
}

// MarshalJSON encodes the record as its flat field map.
func (r Record) MarshalJSON() ([]byte, error) {
	if r.Fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(r.Fields)
}

// UnmarshalJSON decodes a flat field map.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]string
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = FromMap(fields)
	return nil
}
