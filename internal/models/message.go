package models

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CodePrefix is the presentation prefix for client tracking codes.
// The stored code is the 4 digits only; clients see "EBF-1234".
const CodePrefix = "EBF-"

var codePattern = regexp.MustCompile(`^\d{4}$`)

// Message represents a customer request in the console.
type Message struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Content string `json:"content"`

	Type     MessageType `json:"type"`
	Priority Priority    `json:"priority"`

	// Status is the single source of truth for workflow state.
	Status Status `json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Code is the 4-digit tracking code assigned at creation.
	Code string `json:"code,omitempty"`

	// Expanded is the detail-pane view flag, persisted alongside the
	// business fields for compatibility with the stored shape.
	Expanded bool `json:"expanded"`

	// AppointmentDate is empty until an appointment is scheduled.
	AppointmentDate string `json:"appointmentDate,omitempty"`
}

// NewMessage builds a fully-populated message from a client submission,
// applying the creation defaults (UNREAD, MEDIUM, REQUEST).
func NewMessage(name, email, phone, description string) *Message {
	now := time.Now().UTC()
	return &Message{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Subject:   fmt.Sprintf("Nouvelle demande - %s", name),
		Content:   description,
		Type:      TypeRequest,
		Priority:  PriorityMedium,
		Status:    StatusUnread,
		CreatedAt: now,
		UpdatedAt: now,
		Code:      GenerateCode(),
	}
}

// Validate validates the message fields.
func (m *Message) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("invalid type: %s", m.Type)
	}
	if !m.Priority.IsValid() {
		return fmt.Errorf("invalid priority: %s", m.Priority)
	}
	if !m.Status.IsValid() {
		return fmt.Errorf("invalid status: %s", m.Status)
	}
	if m.Code != "" && !codePattern.MatchString(m.Code) {
		return fmt.Errorf("invalid tracking code: %s", m.Code)
	}
	return nil
}

// DisplayCode returns the client-facing form of the tracking code.
func (m *Message) DisplayCode() string {
	if m.Code == "" {
		return ""
	}
	return CodePrefix + m.Code
}

// HasAppointment returns true if an appointment has been scheduled.
// An absent appointment is a valid state, not an error.
func (m *Message) HasAppointment() bool {
	return m.AppointmentDate != ""
}

// GenerateCode returns a random 4-digit tracking code in [1000, 9999].
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// crypto/rand only fails when the platform source is broken;
		// fall back to a fixed code rather than crash the submission.
		return "1000"
	}
	return fmt.Sprintf("%d", 1000+n.Int64())
}

// ParseTrackingCode validates a client-entered tracking code and
// returns the bare 4-digit code. Input must be exactly the prefix
// followed by 4 digits ("EBF-1234", 9 characters).
func ParseTrackingCode(input string) (string, bool) {
	input = strings.ToUpper(strings.TrimSpace(input))
	if len(input) != len(CodePrefix)+4 || !strings.HasPrefix(input, CodePrefix) {
		return "", false
	}
	code := input[len(CodePrefix):]
	if !codePattern.MatchString(code) {
		return "", false
	}
	return code, true
}
