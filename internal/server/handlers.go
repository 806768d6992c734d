package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ainnoce10/ebf-console/internal/errors"
	"github.com/ainnoce10/ebf-console/internal/models"
	"github.com/ainnoce10/ebf-console/internal/service"
)

// API Response types

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	Subject         string `json:"subject"`
	Content         string `json:"content"`
	Type            string `json:"type"`
	Priority        string `json:"priority"`
	Status          string `json:"status"`
	Code            string `json:"code,omitempty"`
	DisplayCode     string `json:"displayCode,omitempty"`
	Expanded        bool   `json:"expanded"`
	AppointmentDate string `json:"appointmentDate,omitempty"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// TrackResponse represents a tracking lookup result. The appointment
// date is empty while the visit is still awaiting scheduling.
type TrackResponse struct {
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	Content         string `json:"content"`
	Status          string `json:"status"`
	AppointmentDate string `json:"appointmentDate,omitempty"`
}

// NotificationResponse is the acknowledgement for the notification stub.
type NotificationResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// HealthResponse is the health probe payload.
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Database  HealthDatabase `json:"database"`
}

// HealthDatabase reports storage health inside a health response.
type HealthDatabase struct {
	Connected    bool `json:"connected"`
	MessageCount int  `json:"messageCount"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func messageToResponse(m models.Message) MessageResponse {
	return MessageResponse{
		ID:              m.ID,
		Name:            m.Name,
		Email:           m.Email,
		Phone:           m.Phone,
		Subject:         m.Subject,
		Content:         m.Content,
		Type:            string(m.Type),
		Priority:        string(m.Priority),
		Status:          string(m.Status),
		Code:            m.Code,
		DisplayCode:     m.DisplayCode(),
		Expanded:        m.Expanded,
		AppointmentDate: m.AppointmentDate,
		CreatedAt:       m.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       m.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    status,
		Message: message,
	})
}

// writeServiceError maps a service error to its HTTP status.
func writeServiceError(w http.ResponseWriter, err error) {
	status := errors.GetHTTPStatus(err)
	writeError(w, status, err.Error())
}

// Message handlers

func (s *Server) handleListMessages(w http.ResponseWriter, r *http.Request) {
	messages := s.config.Messages.List()
	response := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		response = append(response, messageToResponse(m))
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req service.ClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := s.config.Messages.Submit(req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageToResponse(*msg))
}

func (s *Server) handleGetMessage(w http.ResponseWriter, r *http.Request) {
	msg, err := s.config.Messages.Get(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageToResponse(*msg))
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, ok := models.ParseStatus(body.Status)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid status: "+body.Status)
		return
	}

	msg, err := s.config.Messages.SetStatus(r.PathValue("id"), status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if msg == nil {
		// Unknown id is a no-op for mutations
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, messageToResponse(*msg))
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := s.config.Messages.ScheduleAppointment(r.PathValue("id"), body.Date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if msg == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, messageToResponse(*msg))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	msg, err := s.config.Messages.Reset(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if msg == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, messageToResponse(*msg))
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	msg, err := s.config.Messages.ToggleExpanded(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if msg == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, messageToResponse(*msg))
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	s.config.Messages.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// Stats and tracking handlers

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.config.Messages.Stats())
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	msg, err := s.config.Messages.Track(r.PathValue("code"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TrackResponse{
		Name:            msg.Name,
		Phone:           msg.Phone,
		Content:         msg.Content,
		Status:          string(msg.Status),
		AppointmentDate: msg.AppointmentDate,
	})
}

// Notification stub handlers

func (s *Server) handleNotificationsProbe(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Notification endpoint active"))
}

func (s *Server) handlePostNotification(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to send notification")
		return
	}

	s.logger.Printf("New notification: %s (%s)", body.Message, body.Type)

	writeJSON(w, http.StatusOK, NotificationResponse{
		Success:   true,
		Message:   "Notification sent",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleHealth reports service health including storage reachability.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.config.Ping != nil {
		if err := s.config.Ping(); err != nil {
			s.logger.Printf("Health check failed: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status":    "unhealthy",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"error":     err.Error(),
			})
			return
		}
	}

	count := len(s.config.Messages.List())
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database: HealthDatabase{
			Connected:    true,
			MessageCount: count,
		},
	})
}
