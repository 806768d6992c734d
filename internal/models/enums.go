// Package models defines the domain models for the EBF console.
package models

// Status represents the handling state of a customer message.
// Statuses are mutually exclusive and changed only by explicit staff
// action; ANSWERED is reachable only when set by an external system.
type Status string

const (
	StatusUnread     Status = "UNREAD"
	StatusRead       Status = "READ"
	StatusAnswered   Status = "ANSWERED"
	StatusArchived   Status = "ARCHIVED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusUrgent     Status = "URGENT"
)

// IsValid returns true if the status is a valid message status.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnread, StatusRead, StatusAnswered, StatusArchived,
		StatusInProgress, StatusCompleted, StatusUrgent:
		return true
	}
	return false
}

// IsUnread returns true if the message has not been read yet.
func (s Status) IsUnread() bool {
	return s == StatusUnread
}

// ParseStatus validates a raw status string from user or API input.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.IsValid()
}

// Priority represents the importance of a message, set at creation.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// IsValid returns true if the priority is a valid message priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// MessageType classifies how a message entered the system.
// It is set at creation and never mutated by lifecycle actions.
type MessageType string

const (
	TypeContact   MessageType = "CONTACT"
	TypeRequest   MessageType = "REQUEST"
	TypeComplaint MessageType = "COMPLAINT"
	TypeInfo      MessageType = "INFO"
)

// IsValid returns true if the message type is valid.
func (t MessageType) IsValid() bool {
	switch t {
	case TypeContact, TypeRequest, TypeComplaint, TypeInfo:
		return true
	}
	return false
}
