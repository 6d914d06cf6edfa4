package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/charts"
	"github.com/jonathan/jobdash/internal/dashboard"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Print chart series as JSON",
	Long:  "Computes the timeline, status, funnel and rate series for a date range and prints them as indented JSON.",
	RunE:  runCharts,
}

var (
	chartsRange string
	chartsStart string
	chartsEnd   string
)

func init() {
	chartsCmd.Flags().StringVar(&chartsRange, "range", string(charts.RangeAll), "Date range: all, 7, 30, 90, year or custom")
	chartsCmd.Flags().StringVar(&chartsStart, "start", "", "Custom range start (YYYY-MM-DD)")
	chartsCmd.Flags().StringVar(&chartsEnd, "end", "", "Custom range end (YYYY-MM-DD)")
	rootCmd.AddCommand(chartsCmd)
}

func runCharts(cmd *cobra.Command, _ []string) error {
	ctrl, err := loadController(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := setChartRange(ctrl, chartsRange, chartsStart, chartsEnd); err != nil {
		return err
	}

	out, err := json.MarshalIndent(ctrl.ChartData(time.Now()), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal chart data: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

func setChartRange(ctrl *dashboard.Controller, kind, start, end string) error {
	if charts.RangeKind(kind) == charts.RangeCustom {
		return ctrl.SetCustomRange(start, end)
	}
	r, err := charts.ParseRange(kind)
	if err != nil {
		return err
	}
	ctrl.SetChartRange(r)
	return nil
}
