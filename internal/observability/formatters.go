// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/jobdash/internal/dashboard"
	"github.com/jonathan/jobdash/internal/format"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxLinksToShow caps the link list in the application box
	maxLinksToShow = 3
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = truncate(line, boxWidth-4)
		pad := boxWidth - 4 - utf8.RuneCountInString(line)
		fmt.Fprintf(p.out, "│ %s%s │\n", line, strings.Repeat(" ", pad))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// PrintApplication outputs every detail field of one application.
func (p *Printer) PrintApplication(d format.Detail) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:      %s\n", d.Company))
	sb.WriteString(fmt.Sprintf("Role:         %s\n", d.JobTitle))
	sb.WriteString(fmt.Sprintf("Location:     %s\n", d.Location))
	sb.WriteString(fmt.Sprintf("Type:         %s / %s\n", d.JobType, d.Industry))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Status:       %s\n", d.Status))
	sb.WriteString(fmt.Sprintf("Stage:        %s\n", d.InterviewStage))
	sb.WriteString(fmt.Sprintf("Applied:      %s\n", d.DateApplied))
	sb.WriteString(fmt.Sprintf("Last contact: %s\n", d.LastContact))
	sb.WriteString(fmt.Sprintf("Follow-up:    %s\n", d.FollowUp))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Salary:       %s (minimum %s)\n", d.SalaryRange, d.MinimumSalary))
	sb.WriteString(fmt.Sprintf("Resume:       %s\n", d.ResumeUsed))
	sb.WriteString(fmt.Sprintf("Cover letter: %s\n", d.CoverLetter))

	if d.Notes != "" {
		sb.WriteString("\nNotes:\n")
		for _, line := range strings.Split(d.Notes, "\n") {
			sb.WriteString("  " + line + "\n")
		}
	}

	if len(d.Links) > 0 {
		sb.WriteString("\nLinks:\n")
		count := min(len(d.Links), maxLinksToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", d.Links[i].Label, d.Links[i].URL))
		}
		if len(d.Links) > maxLinksToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(d.Links)-maxLinksToShow))
		}
	}

	p.printBox(fmt.Sprintf("APPLICATION #%d", d.Index), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTemplate outputs a follow-up template with its full body.
func (p *Printer) PrintTemplate(t format.Template) {
	var sb strings.Builder
	if t.UseCase != "" {
		sb.WriteString(fmt.Sprintf("Use case: %s\n\n", t.UseCase))
	}
	sb.WriteString(t.Body)

	p.printBox("TEMPLATE: "+strings.ToUpper(t.Name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLoadSummary outputs the outcome of the last spreadsheet load.
func (p *Printer) PrintLoadSummary(status dashboard.Status, applications, resumes, templates int) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("State:        %s\n", status.State))
	if status.Message != "" {
		sb.WriteString(fmt.Sprintf("Message:      %s\n", status.Message))
	}
	if !status.LoadedAt.IsZero() {
		sb.WriteString(fmt.Sprintf("Loaded at:    %s\n", status.LoadedAt.Format(time.RFC1123)))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Applications: %d\n", applications))
	sb.WriteString(fmt.Sprintf("Resumes:      %d\n", resumes))
	sb.WriteString(fmt.Sprintf("Templates:    %d", templates))

	p.printBox("SPREADSHEET LOAD", sb.String())
}
