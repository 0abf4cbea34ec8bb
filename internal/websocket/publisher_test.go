package websocket

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestHub_Publish(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	client := newMockClient("client-1", 1)
	hub.Register(client)

	var publisher EventPublisher = hub
	publisher.Publish(1, SettingsUpdated(map[string]string{"selectedTimeRange": "year"}))

	assert.Eventually(t, func() bool {
		return len(client.GetMessages()) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestHub_PublishAll(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	clients := []*mockClient{
		newMockClient("a", 1),
		newMockClient("b", 2),
		newMockClient("c", 2),
	}
	for _, c := range clients {
		hub.Register(c)
	}

	hub.PublishAll(BannerIconSet(map[string]string{"bannerId": "promoNanoX"}))

	for _, c := range clients {
		c := c
		assert.Eventually(t, func() bool {
			return len(c.GetMessages()) == 1
		}, time.Second, 5*time.Millisecond, "client %s", c.ID())
	}
}

func TestNoOpPublisher(t *testing.T) {
	publisher := &NoOpPublisher{}

	assert.NotPanics(t, func() {
		publisher.Publish(1, BannerDismissed(nil))
		publisher.PublishAll(BannerIconSet(nil))
	})
}

func TestNoOpPublisher_Implements_EventPublisher(t *testing.T) {
	var _ EventPublisher = (*NoOpPublisher)(nil)
}
