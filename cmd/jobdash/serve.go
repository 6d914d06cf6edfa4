package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Long:  `Loads the spreadsheet once and serves the HTML dashboard and JSON API until interrupted.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config, PORT, or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	ctrl, cfg, err := newController(ctx)
	if err != nil {
		return err
	}

	// A failed initial load still serves; the page shows the error and
	// POST /api/refresh can retry.
	if err := ctrl.Refresh(ctx); err != nil {
		log.Printf("[serve] initial load: %v", err)
	}

	port := cfg.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(ctrl, server.Config{Port: port})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
