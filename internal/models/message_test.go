package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	msg := NewMessage("Alice", "alice@example.com", "0600000000", "Leak")

	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Alice", msg.Name)
	assert.Equal(t, "alice@example.com", msg.Email)
	assert.Equal(t, "0600000000", msg.Phone)
	assert.Equal(t, "Nouvelle demande - Alice", msg.Subject)
	assert.Equal(t, "Leak", msg.Content)

	// Creation defaults
	assert.Equal(t, TypeRequest, msg.Type)
	assert.Equal(t, PriorityMedium, msg.Priority)
	assert.Equal(t, StatusUnread, msg.Status)
	assert.False(t, msg.Expanded)
	assert.False(t, msg.HasAppointment())

	assert.Regexp(t, regexp.MustCompile(`^\d{4}$`), msg.Code)
	assert.Equal(t, msg.CreatedAt, msg.UpdatedAt)
	assert.WithinDuration(t, time.Now(), msg.CreatedAt, time.Minute)

	require.NoError(t, msg.Validate())
}

func TestNewMessage_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewMessage("Bob", "", "", "x")
		assert.False(t, seen[msg.ID], "duplicate id generated")
		seen[msg.ID] = true
	}
}

func TestMessage_Validate(t *testing.T) {
	valid := func() *Message {
		return NewMessage("Alice", "", "0600000000", "Leak")
	}

	t.Run("valid message", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		m := valid()
		m.ID = ""
		assert.Error(t, m.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		m := valid()
		m.Name = ""
		assert.Error(t, m.Validate())
	})

	t.Run("invalid status", func(t *testing.T) {
		m := valid()
		m.Status = "PENDING"
		assert.Error(t, m.Validate())
	})

	t.Run("invalid priority", func(t *testing.T) {
		m := valid()
		m.Priority = "CRITICAL"
		assert.Error(t, m.Validate())
	})

	t.Run("invalid type", func(t *testing.T) {
		m := valid()
		m.Type = "SPAM"
		assert.Error(t, m.Validate())
	})

	t.Run("malformed code", func(t *testing.T) {
		m := valid()
		m.Code = "12345"
		assert.Error(t, m.Validate())

		m.Code = "12a4"
		assert.Error(t, m.Validate())
	})
}

func TestMessage_DisplayCode(t *testing.T) {
	m := Message{Code: "1234"}
	assert.Equal(t, "EBF-1234", m.DisplayCode())

	m.Code = ""
	assert.Equal(t, "", m.DisplayCode())
}

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^\d{4}$`)
	for i := 0; i < 200; i++ {
		code := GenerateCode()
		assert.Regexp(t, pattern, code)
		// First digit is never zero: codes run 1000-9999
		assert.NotEqual(t, byte('0'), code[0])
	}
}

func TestParseTrackingCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  string
		ok    bool
	}{
		{"valid", "EBF-1234", "1234", true},
		{"lowercase prefix accepted", "ebf-1234", "1234", true},
		{"surrounding whitespace", "  EBF-1234 ", "1234", true},
		{"missing prefix", "1234", "", false},
		{"wrong prefix", "ABC-1234", "", false},
		{"too short", "EBF-123", "", false},
		{"too long", "EBF-12345", "", false},
		{"letters in code", "EBF-12a4", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := ParseTrackingCode(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}
