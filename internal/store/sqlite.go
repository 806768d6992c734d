package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ainnoce10/ebf-console/internal/db"
	"github.com/ainnoce10/ebf-console/internal/models"
)

// SQLiteRepository persists the console state as two JSON values in the
// slots table, one row per storage key.
type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

// NewSQLiteRepository creates a repository over an open database.
func NewSQLiteRepository(database *sql.DB, logger *log.Logger) *SQLiteRepository {
	if logger == nil {
		logger = log.Default()
	}
	return &SQLiteRepository{db: database, logger: logger}
}

// Load reads the persisted pair. A missing slot or an unparseable
// payload yields the empty default for that value; parse failures are
// logged and never fatal.
func (r *SQLiteRepository) Load() (models.Stats, []models.Message, error) {
	var stats models.Stats
	messages := []models.Message{}

	if raw, ok, err := r.readSlot(SlotStats); err != nil {
		return stats, messages, err
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &stats); err != nil {
			r.logger.Printf("store: discarding unparseable stats slot: %v", err)
			stats = models.Stats{}
		}
	}

	if raw, ok, err := r.readSlot(SlotMessages); err != nil {
		return stats, messages, err
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &messages); err != nil {
			r.logger.Printf("store: discarding unparseable messages slot: %v", err)
			messages = []models.Message{}
		}
	}

	return stats, messages, nil
}

// Save writes both values in a single transaction so the pair is never
// observed half-updated.
func (r *SQLiteRepository) Save(stats models.Stats, messages []models.Message) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}
	if messages == nil {
		messages = []models.Message{}
	}
	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := db.NowRFC3339()
	upsert := `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := tx.Exec(upsert, SlotStats, string(statsJSON), now); err != nil {
		return fmt.Errorf("failed to write stats slot: %w", err)
	}
	if _, err := tx.Exec(upsert, SlotMessages, string(messagesJSON), now); err != nil {
		return fmt.Errorf("failed to write messages slot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slots: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) readSlot(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, true, nil
}
