package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonathan/jobdash/internal/config"
	"github.com/jonathan/jobdash/internal/dashboard"
	"github.com/jonathan/jobdash/internal/fetch"
	"github.com/jonathan/jobdash/internal/records"
)

type stubFetcher struct {
	snap *fetch.Snapshot
	err  error
}

func (f stubFetcher) FetchAll(context.Context) (*fetch.Snapshot, error) {
	return f.snap, f.err
}

func application(company, status, applied, priority string) records.Record {
	return records.FromMap(map[string]string{
		records.FieldCompanyName:       company,
		records.FieldJobTitle:          "Engineer",
		records.FieldApplicationStatus: status,
		records.FieldDateApplied:       applied,
		records.FieldPriorityScore:     priority,
	})
}

func testSnapshot() *fetch.Snapshot {
	return &fetch.Snapshot{
		Applications: []records.Record{
			application("Beta", "Interview", "3/5/2024", "4"),
			application("Acme", "Applied", "3/1/2024", "9"),
			application("Cobalt", "Offer", "2/1/2024", ""),
		},
		Resumes:   []records.Record{records.FromMap(map[string]string{records.FieldResumeID: "R-1"})},
		FetchedAt: time.Now(),
	}
}

// useFetcher swaps the spreadsheet client for f and isolates config and
// preferences to a temp dir.
func useFetcher(t *testing.T, f dashboard.Fetcher) {
	t.Helper()
	orig := newFetcher
	newFetcher = func(context.Context, config.Config) (dashboard.Fetcher, error) { return f, nil }
	t.Cleanup(func() { newFetcher = orig })

	for _, k := range []string{config.EnvSheetID, config.EnvAPIKey, config.EnvFetchTimeout, config.EnvPort} {
		t.Setenv(k, "")
	}
	t.Setenv(config.EnvPrefsPath, filepath.Join(t.TempDir(), "preferences.json"))
}

// execute runs the root command with args, resetting flags from earlier runs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
