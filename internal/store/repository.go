// Package store owns the canonical message collection for a session and
// its persistence to a durable key-value slot.
package store

import (
	"github.com/ainnoce10/ebf-console/internal/models"
)

// Storage keys for the two persisted JSON values.
const (
	SlotStats    = "ebf-stats"
	SlotMessages = "ebf-messages"
)

// Repository persists the (Stats, Messages) pair. Implementations must
// make Load return empty defaults, never an error, when nothing has
// been stored yet or the stored payload fails to parse; parse failures
// are logged by the implementation.
type Repository interface {
	Load() (models.Stats, []models.Message, error)
	Save(models.Stats, []models.Message) error
}
