// Package service provides the business logic for the EBF console.
package service

import (
	"log"
	"time"

	"github.com/ainnoce10/ebf-console/internal/errors"
	"github.com/ainnoce10/ebf-console/internal/models"
	"github.com/ainnoce10/ebf-console/internal/notify"
	"github.com/ainnoce10/ebf-console/internal/store"
)

// MessageService implements the message lifecycle: client submissions,
// staff status transitions, appointment scheduling, and the client-side
// tracking lookup.
//
// Mutations addressing an unknown id are deliberate no-ops (nil message,
// nil error) rather than failures; the console treats a stale id as
// nothing to do.
type MessageService struct {
	store  *store.Store
	logger *log.Logger
}

// NewMessageService creates a MessageService over the given store.
func NewMessageService(st *store.Store, logger *log.Logger) *MessageService {
	if logger == nil {
		logger = log.Default()
	}
	return &MessageService{store: st, logger: logger}
}

// ClientRequest is an inbound client submission.
type ClientRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Description string `json:"description"`
}

// Validate validates the submission fields.
func (r *ClientRequest) Validate() error {
	if r.Name == "" {
		return errors.InvalidArgs("name is required")
	}
	if r.Description == "" {
		return errors.InvalidArgs("description is required")
	}
	return nil
}

// Submit creates a fully-populated message from a client request,
// prepends it to the collection and broadcasts it to subscribers.
func (s *MessageService) Submit(req ClientRequest) (*models.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg := models.NewMessage(req.Name, req.Email, req.Phone, req.Description)
	if err := msg.Validate(); err != nil {
		return nil, errors.WrapInternal(err, "built an invalid message")
	}

	s.store.Add(*msg)
	s.logger.Printf("service: new client request %s (code %s)", msg.ID, msg.DisplayCode())
	return msg, nil
}

// SetStatus overwrites the status of the message with the given id.
// Setting the current status again is a no-op that leaves every field,
// including UpdatedAt, untouched.
func (s *MessageService) SetStatus(id string, target models.Status) (*models.Message, error) {
	if !target.IsValid() {
		return nil, errors.InvalidArgs("invalid status: %s", target)
	}

	found := s.store.Update(id, func(m *models.Message) bool {
		if m.Status == target {
			return false
		}
		m.Status = target
		m.UpdatedAt = time.Now().UTC()
		return true
	})
	if !found {
		return nil, nil
	}
	return s.current(id), nil
}

// ScheduleAppointment sets the appointment date and forces the message
// into IN_PROGRESS. It is allowed only while no appointment is set;
// scheduling over an existing date is rejected.
func (s *MessageService) ScheduleAppointment(id, date string) (*models.Message, error) {
	if date == "" {
		return nil, errors.InvalidArgs("appointment date is required")
	}

	var alreadySet bool
	found := s.store.Update(id, func(m *models.Message) bool {
		if m.HasAppointment() {
			alreadySet = true
			return false
		}
		m.AppointmentDate = date
		m.Status = models.StatusInProgress
		m.UpdatedAt = time.Now().UTC()
		return true
	})
	if !found {
		return nil, nil
	}
	if alreadySet {
		return nil, errors.StateError("an appointment is already scheduled for this message")
	}
	return s.current(id), nil
}

// Reset returns a message to its post-read state: status READ, detail
// pane collapsed. The appointment date and tracking code are kept.
// Callers must obtain confirmation before invoking it.
func (s *MessageService) Reset(id string) (*models.Message, error) {
	found := s.store.Update(id, func(m *models.Message) bool {
		m.Status = models.StatusRead
		m.Expanded = false
		m.UpdatedAt = time.Now().UTC()
		return true
	})
	if !found {
		return nil, nil
	}
	return s.current(id), nil
}

// Delete removes a message permanently. There is no undo. Callers must
// obtain confirmation before invoking it. Returns whether a message was
// removed.
func (s *MessageService) Delete(id string) bool {
	return s.store.Remove(id)
}

// ToggleExpanded flips the detail-pane flag. View state only: it does
// not refresh UpdatedAt.
func (s *MessageService) ToggleExpanded(id string) (*models.Message, error) {
	found := s.store.Update(id, func(m *models.Message) bool {
		m.Expanded = !m.Expanded
		return true
	})
	if !found {
		return nil, nil
	}
	return s.current(id), nil
}

// Track resolves a client-entered tracking code ("EBF-1234") to its
// message. A malformed code and an unknown code are distinct outcomes;
// a found message without an appointment is a valid result.
func (s *MessageService) Track(input string) (*models.Message, error) {
	code, ok := models.ParseTrackingCode(input)
	if !ok {
		return nil, errors.InvalidArgs("tracking code must look like %s1234", models.CodePrefix).
			WithSuggestion("Enter the 9-character code from your confirmation, e.g. EBF-1234.")
	}

	msg, found := s.store.FindByCode(code)
	if !found {
		return nil, errors.NotFound("incorrect code")
	}
	return &msg, nil
}

// Get returns the message with the given id.
func (s *MessageService) Get(id string) (*models.Message, error) {
	msg, found := s.store.Get(id)
	if !found {
		return nil, errors.NotFound("no message with id %s", id)
	}
	return &msg, nil
}

// List returns a snapshot of the collection, newest first.
func (s *MessageService) List() []models.Message {
	return s.store.Messages()
}

// Stats returns the current derived summary.
func (s *MessageService) Stats() models.Stats {
	return s.store.Stats()
}

// Subscribe registers a listener for newly submitted messages and
// returns its disposer.
func (s *MessageService) Subscribe(h notify.Handler) func() {
	return s.store.Subscribe(h)
}

func (s *MessageService) current(id string) *models.Message {
	if msg, found := s.store.Get(id); found {
		return &msg
	}
	return nil
}
