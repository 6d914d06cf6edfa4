package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/dashboard"
	"github.com/jonathan/jobdash/internal/format"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of applications",
	Long:  "Fetches the spreadsheet, applies the filter, sort and page flags, and prints the page as a table.",
	RunE:  runList,
}

var listView viewFlags

func init() {
	listView.register(listCmd, true)
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	ctrl, err := loadController(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := listView.apply(ctrl); err != nil {
		return err
	}
	return renderPage(cmd.OutOrStdout(), ctrl.Page(), ctrl.Status(), time.Now())
}

// renderPage prints the page table followed by the pagination summary.
func renderPage(w io.Writer, pv dashboard.PageView, status dashboard.Status, now time.Time) error {
	if len(pv.Records) == 0 {
		fmt.Fprint(w, pterm.Info.Sprintln("No applications found"))
		return nil
	}

	data := pterm.TableData{{"#", "Company", "Job Title", "Location", "Status", "Applied", "Days", "Priority", "Stale"}}
	for i, rec := range pv.Records {
		row := format.TableRow(pv.Offset+i, rec)
		data = append(data, []string{
			fmt.Sprint(row.Index),
			format.OrDash(row.Company),
			format.OrDash(row.JobTitle),
			format.OrDash(row.Location),
			format.OrDash(row.Status),
			row.DateApplied,
			row.DaysSinceApplied,
			row.Priority,
			row.StaleFlag,
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	fmt.Fprintln(w, table)

	info := pv.Info
	fmt.Fprintf(w, "Page %d of %d. Showing %d-%d of %d\n", info.CurrentPage, info.TotalPages, info.From, info.To, info.TotalRecords)
	if !status.LoadedAt.IsZero() {
		fmt.Fprintf(w, "Last updated %s\n", humanize.RelTime(status.LoadedAt, now, "ago", "from now"))
	}
	return nil
}
