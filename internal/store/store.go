package store

import (
	"log"
	"sync"

	"github.com/ainnoce10/ebf-console/internal/models"
	"github.com/ainnoce10/ebf-console/internal/notify"
)

// Store owns the canonical message collection for the lifetime of a
// session. All mutations go through it: each one recomputes the derived
// stats and saves the pair before the operation is considered complete.
// A save failure is logged and the in-memory state stays authoritative
// for the rest of the session.
type Store struct {
	mu       sync.Mutex
	repo     Repository
	logger   *log.Logger
	broker   *notify.Broker
	stats    models.Stats
	messages []models.Message
}

// NewStore creates a store over the given repository.
func NewStore(repo Repository, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		repo:     repo,
		logger:   logger,
		broker:   notify.NewBroker(),
		messages: []models.Message{},
	}
}

// Load hydrates the collection from the repository. Stats are
// recomputed from the loaded messages rather than trusted from the
// stored copy, since they are a derived projection.
func (s *Store) Load() error {
	_, messages, err := s.repo.Load()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if messages == nil {
		messages = []models.Message{}
	}
	s.messages = messages
	s.stats = models.ComputeStats(s.messages)
	return nil
}

// Stats returns the current derived summary.
func (s *Store) Stats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Messages returns a snapshot of the collection, newest first.
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Get returns the message with the given id.
func (s *Store) Get(id string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ID == id {
			return m, true
		}
	}
	return models.Message{}, false
}

// FindByCode returns the first message whose tracking code matches.
// Codes are unique by construction but duplicates resolve to the first
// encountered, without error.
func (s *Store) FindByCode(code string) (models.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.Code == code {
			return m, true
		}
	}
	return models.Message{}, false
}

// Add prepends a new message and notifies subscribers. A message whose
// id is already present is dropped, so redundant emission of the same
// record results in a single entry.
func (s *Store) Add(msg models.Message) bool {
	s.mu.Lock()
	for _, existing := range s.messages {
		if existing.ID == msg.ID {
			s.mu.Unlock()
			return false
		}
	}
	s.messages = append([]models.Message{msg}, s.messages...)
	s.persistLocked()
	s.mu.Unlock()

	s.broker.Publish(msg)
	return true
}

// Update applies fn to the message with the given id in place,
// preserving collection order. fn returns whether it modified the
// record; only then is the pair recomputed and persisted. An unknown id
// is a no-op and returns false.
func (s *Store) Update(id string, fn func(*models.Message) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			if fn(&s.messages[i]) {
				s.persistLocked()
			}
			return true
		}
	}
	return false
}

// Remove deletes the message with the given id permanently. An unknown
// id is a no-op and returns false.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			s.persistLocked()
			return true
		}
	}
	return false
}

// Subscribe registers a listener for newly added messages and returns
// its disposer.
func (s *Store) Subscribe(h notify.Handler) func() {
	return s.broker.Subscribe(h)
}

// persistLocked recomputes the derived stats and saves the pair.
// Callers must hold s.mu.
func (s *Store) persistLocked() {
	s.stats = models.ComputeStats(s.messages)
	if err := s.repo.Save(s.stats, s.messages); err != nil {
		s.logger.Printf("store: save failed, in-memory state remains authoritative: %v", err)
	}
}
