package server

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /api/messages", s.handleListMessages)
	s.router.HandleFunc("POST /api/messages", s.handleSubmitMessage)
	s.router.HandleFunc("GET /api/messages/{id}", s.handleGetMessage)
	s.router.HandleFunc("POST /api/messages/{id}/status", s.handleSetStatus)
	s.router.HandleFunc("POST /api/messages/{id}/schedule", s.handleSchedule)
	s.router.HandleFunc("POST /api/messages/{id}/reset", s.handleReset)
	s.router.HandleFunc("POST /api/messages/{id}/toggle", s.handleToggle)
	s.router.HandleFunc("DELETE /api/messages/{id}", s.handleDeleteMessage)

	s.router.HandleFunc("GET /api/stats", s.handleStats)
	s.router.HandleFunc("GET /api/track/{code}", s.handleTrack)

	s.router.HandleFunc("GET /api/notifications", s.handleNotificationsProbe)
	s.router.HandleFunc("POST /api/notifications", s.handlePostNotification)

	// Realtime push of newly submitted messages
	s.router.HandleFunc("GET /api/socket", s.handleSocket)

	// Health check
	s.router.HandleFunc("GET /api/health", s.handleHealth)
}
