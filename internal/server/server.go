// Package server provides the HTTP and websocket API for the EBF console.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/ainnoce10/ebf-console/internal/service"
)

// Config holds the server configuration.
type Config struct {
	// Port is the TCP port to listen on (default 3000).
	Port int

	// Host is the address to bind to (default "localhost").
	Host string

	// Messages is the message service backing the API.
	Messages *service.MessageService

	// Ping checks storage reachability for the health probe (optional).
	Ping func() error

	// Logger for server events (optional).
	Logger *log.Logger
}

// Server is the HTTP server for the console API.
type Server struct {
	config     Config
	httpServer *http.Server
	router     *http.ServeMux
	logger     *log.Logger
}

// New creates a new Server with the given configuration.
func New(config Config) (*Server, error) {
	if config.Messages == nil {
		return nil, fmt.Errorf("message service is required")
	}

	if config.Port == 0 {
		config.Port = 3000
	}
	if config.Host == "" {
		config.Host = "localhost"
	}

	logger := config.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[ebf-server] ", log.LstdFlags)
	}

	s := &Server{
		config: config,
		router: http.NewServeMux(),
		logger: logger,
	}

	s.setupRoutes()

	return s, nil
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	// Create listener to get the actual address (useful if port 0 is used)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Printf("Starting server at http://%s", listener.Addr().String())

	return s.httpServer.Serve(listener)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Printf("Shutting down server...")
	return s.httpServer.Shutdown(ctx)
}

// Address returns the server address (e.g., "localhost:3000").
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// Handler returns the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
