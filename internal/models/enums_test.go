package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_IsValid(t *testing.T) {
	valid := []Status{
		StatusUnread, StatusRead, StatusAnswered, StatusArchived,
		StatusInProgress, StatusCompleted, StatusUrgent,
	}
	for _, s := range valid {
		assert.True(t, s.IsValid(), "expected %s to be valid", s)
	}

	invalid := []Status{"", "unread", "PENDING", "CLOSED"}
	for _, s := range invalid {
		assert.False(t, s.IsValid(), "expected %s to be invalid", s)
	}
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("ARCHIVED")
	assert.True(t, ok)
	assert.Equal(t, StatusArchived, s)

	_, ok = ParseStatus("archived")
	assert.False(t, ok, "statuses are case-sensitive on the wire")

	_, ok = ParseStatus("")
	assert.False(t, ok)
}

func TestPriority_IsValid(t *testing.T) {
	valid := []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}
	for _, p := range valid {
		assert.True(t, p.IsValid(), "expected %s to be valid", p)
	}

	assert.False(t, Priority("").IsValid())
	assert.False(t, Priority("CRITICAL").IsValid())
}

func TestMessageType_IsValid(t *testing.T) {
	valid := []MessageType{TypeContact, TypeRequest, TypeComplaint, TypeInfo}
	for _, mt := range valid {
		assert.True(t, mt.IsValid(), "expected %s to be valid", mt)
	}

	assert.False(t, MessageType("").IsValid())
	assert.False(t, MessageType("SPAM").IsValid())
}
