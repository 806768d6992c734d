package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ainnoce10/ebf-console/internal/db"
	"github.com/ainnoce10/ebf-console/internal/server"
	"github.com/ainnoce10/ebf-console/internal/service"
	"github.com/ainnoce10/ebf-console/internal/store"
)

// Serve command flags
var (
	servePort int
	serveHost string
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (default 3000)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host address to bind to (default localhost)")

	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the console API server",
	Long: `Start the HTTP server that backs the messages console.

The server provides:
  - The message API (list, submit, status changes, scheduling, delete)
  - The stats summary and client tracking lookup
  - A websocket pushing newly submitted messages in realtime
  - Health and notification endpoints

Examples:
  ebf serve                     # Start on default port 3000
  ebf serve --port 8080         # Start on custom port
  ebf serve --host 0.0.0.0      # Bind to all interfaces`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	database, err := db.Open(GetDBPath())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger := log.New(os.Stdout, "[ebf-server] ", log.LstdFlags)
	repo := store.NewSQLiteRepository(database.DB, logger)
	st := store.NewStore(repo, logger)
	if err := st.Load(); err != nil {
		return fmt.Errorf("failed to load messages: %w", err)
	}

	host := serveHost
	if host == "" {
		host = globalConfig.Host
	}
	port := servePort
	if port == 0 {
		port = globalConfig.Port
	}

	srv, err := server.New(server.Config{
		Port:     port,
		Host:     host,
		Messages: service.NewMessageService(st, logger),
		Ping:     database.Ping,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Handle graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
