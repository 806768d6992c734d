package store

import (
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainnoce10/ebf-console/internal/models"
)

// memRepo is an in-memory Repository for store tests.
type memRepo struct {
	stats    models.Stats
	messages []models.Message
	saves    int
	failSave bool
}

func (r *memRepo) Load() (models.Stats, []models.Message, error) {
	return r.stats, r.messages, nil
}

func (r *memRepo) Save(stats models.Stats, messages []models.Message) error {
	if r.failSave {
		return fmt.Errorf("disk full")
	}
	r.saves++
	r.stats = stats
	r.messages = append([]models.Message{}, messages...)
	return nil
}

func testLogger() *log.Logger {
	return log.New(os.Stderr, "[test] ", 0)
}

func testMessage(id, code string, status models.Status) models.Message {
	now := time.Now().UTC()
	return models.Message{
		ID:        id,
		Name:      "Alice",
		Subject:   "Nouvelle demande - Alice",
		Content:   "Leak",
		Type:      models.TypeRequest,
		Priority:  models.PriorityMedium,
		Status:    status,
		Code:      code,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestStore_Load(t *testing.T) {
	t.Run("empty repository", func(t *testing.T) {
		st := NewStore(&memRepo{}, testLogger())
		require.NoError(t, st.Load())

		assert.Empty(t, st.Messages())
		assert.Equal(t, models.Stats{}, st.Stats())
	})

	t.Run("recomputes stats from loaded messages", func(t *testing.T) {
		repo := &memRepo{
			// A stale stored summary must be ignored in favor of the
			// recomputed projection.
			stats: models.Stats{Total: 99, Urgent: 99},
			messages: []models.Message{
				testMessage("1", "1111", models.StatusUnread),
				testMessage("2", "2222", models.StatusRead),
			},
		}
		st := NewStore(repo, testLogger())
		require.NoError(t, st.Load())

		stats := st.Stats()
		assert.Equal(t, 2, stats.Total)
		assert.Equal(t, 1, stats.Unread)
		assert.Equal(t, 1, stats.Read)
		assert.Equal(t, 0, stats.Urgent)
	})
}

func TestStore_Add(t *testing.T) {
	t.Run("prepends newest first and persists", func(t *testing.T) {
		repo := &memRepo{}
		st := NewStore(repo, testLogger())
		require.NoError(t, st.Load())

		assert.True(t, st.Add(testMessage("1", "1111", models.StatusUnread)))
		assert.True(t, st.Add(testMessage("2", "2222", models.StatusUnread)))

		messages := st.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, "2", messages[0].ID)
		assert.Equal(t, "1", messages[1].ID)
		assert.Equal(t, 2, repo.saves)
		assert.Equal(t, 2, repo.stats.Unread)
	})

	t.Run("deduplicates by id", func(t *testing.T) {
		st := NewStore(&memRepo{}, testLogger())
		require.NoError(t, st.Load())

		msg := testMessage("1", "1111", models.StatusUnread)
		assert.True(t, st.Add(msg))
		assert.False(t, st.Add(msg))
		assert.False(t, st.Add(msg))

		assert.Len(t, st.Messages(), 1)
	})

	t.Run("notifies subscribers once per accepted message", func(t *testing.T) {
		st := NewStore(&memRepo{}, testLogger())
		require.NoError(t, st.Load())

		var got []string
		unsubscribe := st.Subscribe(func(m models.Message) {
			got = append(got, m.ID)
		})
		defer unsubscribe()

		msg := testMessage("1", "1111", models.StatusUnread)
		st.Add(msg)
		st.Add(msg) // duplicate: dropped, no notification

		assert.Equal(t, []string{"1"}, got)
	})

	t.Run("save failure keeps in-memory state authoritative", func(t *testing.T) {
		repo := &memRepo{failSave: true}
		st := NewStore(repo, testLogger())
		require.NoError(t, st.Load())

		assert.True(t, st.Add(testMessage("1", "1111", models.StatusUnread)))

		assert.Len(t, st.Messages(), 1)
		assert.Equal(t, 1, st.Stats().Total)
		assert.Equal(t, 0, repo.saves)
	})
}

func TestStore_Update(t *testing.T) {
	repo := &memRepo{}
	st := NewStore(repo, testLogger())
	require.NoError(t, st.Load())
	st.Add(testMessage("1", "1111", models.StatusUnread))
	st.Add(testMessage("2", "2222", models.StatusUnread))
	savesBefore := repo.saves

	t.Run("mutates in place and persists", func(t *testing.T) {
		found := st.Update("1", func(m *models.Message) bool {
			m.Status = models.StatusArchived
			return true
		})
		assert.True(t, found)

		msg, ok := st.Get("1")
		require.True(t, ok)
		assert.Equal(t, models.StatusArchived, msg.Status)
		assert.Equal(t, savesBefore+1, repo.saves)
		assert.Equal(t, 1, st.Stats().Archived)
	})

	t.Run("preserves collection order", func(t *testing.T) {
		messages := st.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, "2", messages[0].ID)
		assert.Equal(t, "1", messages[1].ID)
	})

	t.Run("unchanged record skips persistence", func(t *testing.T) {
		saves := repo.saves
		found := st.Update("1", func(m *models.Message) bool { return false })
		assert.True(t, found)
		assert.Equal(t, saves, repo.saves)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		saves := repo.saves
		found := st.Update("missing", func(m *models.Message) bool {
			t.Fatal("mutator must not run for unknown id")
			return true
		})
		assert.False(t, found)
		assert.Equal(t, saves, repo.saves)
	})
}

func TestStore_Remove(t *testing.T) {
	st := NewStore(&memRepo{}, testLogger())
	require.NoError(t, st.Load())
	st.Add(testMessage("1", "1111", models.StatusUnread))
	st.Add(testMessage("2", "2222", models.StatusRead))

	assert.True(t, st.Remove("1"))
	assert.False(t, st.Remove("1"))
	assert.False(t, st.Remove("missing"))

	messages := st.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "2", messages[0].ID)

	_, found := st.FindByCode("1111")
	assert.False(t, found, "removed message must not be findable by code")
}

func TestStore_FindByCode(t *testing.T) {
	st := NewStore(&memRepo{}, testLogger())
	require.NoError(t, st.Load())
	st.Add(testMessage("1", "1111", models.StatusUnread))
	st.Add(testMessage("2", "2222", models.StatusUnread))

	msg, found := st.FindByCode("1111")
	assert.True(t, found)
	assert.Equal(t, "1", msg.ID)

	_, found = st.FindByCode("9999")
	assert.False(t, found)

	t.Run("duplicate codes resolve to first encountered", func(t *testing.T) {
		st.Add(testMessage("3", "1111", models.StatusUnread))

		msg, found := st.FindByCode("1111")
		assert.True(t, found)
		// "3" was prepended, so it is encountered first
		assert.Equal(t, "3", msg.ID)
	})
}

func TestStore_MessagesSnapshot(t *testing.T) {
	st := NewStore(&memRepo{}, testLogger())
	require.NoError(t, st.Load())
	st.Add(testMessage("1", "1111", models.StatusUnread))

	snapshot := st.Messages()
	snapshot[0].Status = models.StatusArchived

	msg, _ := st.Get("1")
	assert.Equal(t, models.StatusUnread, msg.Status, "snapshot mutation must not reach the store")
}
