package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/config"
	"github.com/jonathan/jobdash/internal/dashboard"
	"github.com/jonathan/jobdash/internal/fetch"
	"github.com/jonathan/jobdash/internal/observability"
	"github.com/jonathan/jobdash/internal/prefs"
	"github.com/jonathan/jobdash/internal/view"
)

// newFetcher builds the spreadsheet client; tests replace it with a stub.
var newFetcher = func(ctx context.Context, cfg config.Config) (dashboard.Fetcher, error) {
	if err := cfg.RequireSheet(); err != nil {
		return nil, err
	}
	return fetch.New(ctx, cfg.FetchOptions())
}

// newController resolves the config and builds an unloaded controller.
func newController(ctx context.Context) (*dashboard.Controller, config.Config, error) {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	f, err := newFetcher(ctx, cfg)
	if err != nil {
		return nil, config.Config{}, err
	}
	return dashboard.New(f, prefs.Open(cfg.PrefsPath)), cfg, nil
}

// loadController builds a controller and performs the initial fetch. With
// --verbose the load summary goes to w.
func loadController(ctx context.Context, w io.Writer) (*dashboard.Controller, error) {
	ctrl, _, err := newController(ctx)
	if err != nil {
		return nil, err
	}
	err = ctrl.Refresh(ctx)
	if verbose {
		observability.NewPrinter(w).PrintLoadSummary(ctrl.Status(), len(ctrl.Filtered()), len(ctrl.Resumes()), len(ctrl.Templates()))
	}
	if err != nil {
		return nil, err
	}
	return ctrl, nil
}

// viewFlags are the filter, sort and paging flags shared by list and export.
type viewFlags struct {
	search string
	status string
	stale  string
	sort   string
	rows   string
	page   int
	column string
	desc   bool
}

func (v *viewFlags) register(cmd *cobra.Command, paging bool) {
	cmd.Flags().StringVar(&v.search, "search", "", "Case-insensitive substring of company, title or location")
	cmd.Flags().StringVar(&v.status, "status", "", "Exact application status")
	cmd.Flags().StringVar(&v.stale, "stale", "", "STALE or ACTIVE")
	cmd.Flags().StringVar(&v.sort, "sort", "", "Sort option: company-asc, company-desc, date-newest, date-oldest, priority-high, priority-low")
	cmd.Flags().StringVar(&v.column, "column", "", "Sort by a column header instead of a sort option")
	cmd.Flags().BoolVar(&v.desc, "desc", false, "Sort --column descending")
	if paging {
		cmd.Flags().StringVar(&v.rows, "rows", view.DefaultPageSize.String(), "Rows per page, or all")
		cmd.Flags().IntVar(&v.page, "page", 1, "Page number")
	}
}

// apply validates every flag, then sets them on the controller.
func (v *viewFlags) apply(ctrl *dashboard.Controller) error {
	stale, err := view.ParseStaleness(v.stale)
	if err != nil {
		return err
	}
	var opt view.SortOption
	if v.sort != "" {
		if opt, err = view.ParseSortOption(v.sort); err != nil {
			return err
		}
	}
	if v.column != "" && v.sort != "" {
		return fmt.Errorf("--sort and --column are mutually exclusive")
	}
	if v.desc && v.column == "" {
		return fmt.Errorf("--desc requires --column")
	}
	var size view.PageSize
	if v.rows != "" {
		if size, err = view.ParsePageSize(v.rows); err != nil {
			return err
		}
	}

	ctrl.SetCriteria(view.Criteria{Search: v.search, Status: v.status, Staleness: stale})
	ctrl.SetSortOption(opt)
	if v.column != "" {
		ctrl.SortByColumn(v.column)
		if v.desc {
			ctrl.SortByColumn(v.column)
		}
	}
	if v.rows != "" {
		ctrl.SetPageSize(size)
	}
	if v.page > 1 {
		ctrl.GoToPage(v.page)
	}
	return nil
}
