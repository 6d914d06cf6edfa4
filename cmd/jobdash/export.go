package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/jobdash/internal/dashboard"
	"github.com/jonathan/jobdash/internal/records"
	"github.com/jonathan/jobdash/internal/schemas"
	"github.com/jonathan/jobdash/internal/store"
	"github.com/jonathan/jobdash/internal/view"
)

const exportSheet = "Applications"

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered applications to .xlsx or .json",
	Long:  "Fetches the spreadsheet, applies the filter and sort flags, and writes every matching application (not just one page) to --out.",
	RunE:  runExport,
}

var (
	exportView viewFlags
	exportOut  string
)

func init() {
	exportView.register(exportCmd, false)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file ending in .xlsx or .json (required)")
	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}
	rootCmd.AddCommand(exportCmd)
}

// exportDoc is the JSON export layout described by schemas/export.schema.json.
type exportDoc struct {
	ExportedAt   time.Time        `json:"exported_at"`
	Criteria     view.Criteria    `json:"criteria"`
	Sort         string           `json:"sort,omitempty"`
	Stats        store.Stats      `json:"stats"`
	Applications []records.Record `json:"applications"`
}

func runExport(cmd *cobra.Command, _ []string) error {
	ext := strings.ToLower(filepath.Ext(exportOut))
	if ext != ".xlsx" && ext != ".json" {
		return fmt.Errorf("unsupported export format %q: use .xlsx or .json", ext)
	}

	ctrl, err := loadController(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if err := exportView.apply(ctrl); err != nil {
		return err
	}
	apps := ctrl.Filtered()

	if dir := filepath.Dir(exportOut); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	switch ext {
	case ".xlsx":
		err = writeXLSX(exportOut, apps)
	default:
		doc := exportDoc{
			ExportedAt:   time.Now().UTC(),
			Criteria:     ctrl.Criteria(),
			Sort:         sortDescription(ctrl),
			Stats:        store.StatsFor(apps),
			Applications: apps,
		}
		err = writeJSON(exportOut, doc)
		var ve *schemas.ValidationError
		if errors.As(err, &ve) {
			fmt.Fprint(cmd.ErrOrStderr(), pterm.Warning.Sprintfln("export does not match schema: %v", ve))
			err = nil
		}
	}
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("Exported %d applications to %s", len(apps), exportOut))
	return nil
}

func sortDescription(ctrl *dashboard.Controller) string {
	if cs := ctrl.ColumnSort(); cs.Active() {
		dir := "asc"
		if cs.Descending {
			dir = "desc"
		}
		return fmt.Sprintf("column:%s:%s", cs.Column, dir)
	}
	return string(ctrl.SortOption())
}

// exportHeader returns every field name across apps in first-seen column order.
func exportHeader(apps []records.Record) []string {
	seen := make(map[string]bool)
	var header []string
	for _, app := range apps {
		for _, name := range app.Header() {
			if !seen[name] {
				seen[name] = true
				header = append(header, name)
			}
		}
	}
	return header
}

// writeXLSX writes apps as one sheet with a bold header row. Cells keep their
// raw spreadsheet text except numbers, which are written as numbers.
func writeXLSX(path string, apps []records.Record) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := exportHeader(apps)
	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetRowStyle(exportSheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for r, app := range apps {
		row := make([]any, len(header))
		for c, name := range header {
			v := app.Value(name)
			if v.Kind == records.KindNumber {
				row[c] = v.Number
			} else {
				row[c] = app.Get(name)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// writeJSON writes doc as indented JSON. The file is always written; a
// schema mismatch is returned as *schemas.ValidationError afterwards.
func writeJSON(path string, doc exportDoc) error {
	if doc.Applications == nil {
		doc.Applications = []records.Record{}
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return schemas.Validate(schemas.Export, out)
}
