package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/cvtext/internal/server"
)

var (
	servePort        int
	serveDatabaseURL string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing /parse and /dates/format. When a database URL is
given (--db-url or DATABASE_URL) the /documents endpoints store parsed résumés.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "Database URL (defaults to DATABASE_URL)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	databaseURL := serveDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}

	// the server always logs requests, even without --verbose
	if !verbose {
		l, err := newLogger(cmd, "info")
		if err != nil {
			return err
		}
		logger = l
	}
	if databaseURL == "" {
		logger.Warn("no database configured; /documents endpoints are disabled")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	srv, err := server.New(ctx, server.Config{Port: servePort, DatabaseURL: databaseURL}, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("listening", zap.Int("port", servePort))
	return srv.Start()
}
