package main

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dashboard counts",
	Long:  "Prints total, applied, interview, offer, rejected and stale counts over all applications. Counts may overlap.",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctrl, err := loadController(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	return renderStats(cmd.OutOrStdout(), ctrl.Stats())
}

func renderStats(w io.Writer, st store.Stats) error {
	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Metric", "Count"},
		{"Total Applications", fmt.Sprint(st.Total)},
		{"Applied", fmt.Sprint(st.Applied)},
		{"Interviews", fmt.Sprint(st.Interviews)},
		{"Offers", fmt.Sprint(st.Offers)},
		{"Rejected", fmt.Sprint(st.Rejected)},
		{"Stale", fmt.Sprint(st.Stale)},
	}).Srender()
	if err != nil {
		return fmt.Errorf("failed to render stats: %w", err)
	}
	fmt.Fprintln(w, table)
	return nil
}
