package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ainnoce10/ebf-console/internal/models"
)

func TestBroker_PublishSubscribe(t *testing.T) {
	b := NewBroker()

	var got []string
	unsubscribe := b.Subscribe(func(m models.Message) {
		got = append(got, m.ID)
	})
	defer unsubscribe()

	b.Publish(models.Message{ID: "1"})
	b.Publish(models.Message{ID: "2"})

	assert.Equal(t, []string{"1", "2"}, got, "delivery is synchronous")
}

func TestBroker_LateSubscriberMissesEarlierEvents(t *testing.T) {
	b := NewBroker()

	b.Publish(models.Message{ID: "before"})

	var got []string
	unsubscribe := b.Subscribe(func(m models.Message) {
		got = append(got, m.ID)
	})
	defer unsubscribe()

	b.Publish(models.Message{ID: "after"})

	assert.Equal(t, []string{"after"}, got)
}

func TestBroker_Unsubscribe(t *testing.T) {
	b := NewBroker()

	var count int
	unsubscribe := b.Subscribe(func(models.Message) { count++ })

	b.Publish(models.Message{ID: "1"})
	unsubscribe()
	b.Publish(models.Message{ID: "2"})

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, b.Len())

	// A second call to the disposer is harmless
	unsubscribe()
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	b := NewBroker()

	var a, c int
	disposeA := b.Subscribe(func(models.Message) { a++ })
	disposeC := b.Subscribe(func(models.Message) { c++ })
	defer disposeA()
	defer disposeC()

	b.Publish(models.Message{ID: "1"})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, c)
	assert.Equal(t, 2, b.Len())
}
