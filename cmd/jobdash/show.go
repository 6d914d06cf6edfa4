package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/format"
	"github.com/jonathan/jobdash/internal/observability"
)

var showCmd = &cobra.Command{
	Use:   "show INDEX",
	Short: "Print the detail view of one application",
	Long: "Prints every field of the application at INDEX in the filtered and sorted view " +
		"(the # column of list, given the same filter and sort flags). With --template, prints a follow-up template instead.",
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var (
	showView     viewFlags
	showTemplate string
)

func init() {
	showView.register(showCmd, false)
	showCmd.Flags().StringVar(&showTemplate, "template", "", "Name of a follow-up template to print")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if (len(args) == 0) == (showTemplate == "") {
		return fmt.Errorf("give either an application INDEX or --template")
	}
	var index int
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: must be an integer", args[0])
		}
		index = n
	}

	ctrl, err := loadController(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	printer := observability.NewPrinter(cmd.OutOrStdout())

	if showTemplate != "" {
		t, err := ctrl.Template(showTemplate)
		if err != nil {
			return err
		}
		printer.PrintTemplate(format.TemplateCard(t))
		return nil
	}

	if err := showView.apply(ctrl); err != nil {
		return err
	}
	app, err := ctrl.Application(index)
	if err != nil {
		return err
	}
	printer.PrintApplication(format.ApplicationDetail(index, app))
	return nil
}
