package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/gomoku-backend/internal/entity"
	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

func TestBroadcaster_SubscribeUnsubscribe(t *testing.T) {
	// Given: three subscribers over two games
	broadcaster := NewBroadcaster()
	first := broadcaster.Subscribe("game1")
	second := broadcaster.Subscribe("game1")
	other := broadcaster.Subscribe("game2")

	assert.Equal(t, 2, broadcaster.SubscriberCount("game1"))
	assert.Equal(t, 1, broadcaster.SubscriberCount("game2"))

	// When: unsubscribing all of them, one twice
	broadcaster.Unsubscribe(first)
	broadcaster.Unsubscribe(first)
	broadcaster.Unsubscribe(second)
	broadcaster.Unsubscribe(other)

	// Then: nobody is left and channels are closed
	assert.Equal(t, 0, broadcaster.SubscriberCount("game1"))
	assert.Equal(t, 0, broadcaster.SubscriberCount("game2"))

	_, ok := <-first.Events()
	assert.False(t, ok)
}

func TestBroadcaster_Publish(t *testing.T) {
	t.Run("Delivers only to subscribers of the same game", func(t *testing.T) {
		// Given: subscribers of two games
		broadcaster := NewBroadcaster()
		sub := broadcaster.Subscribe("game1")
		other := broadcaster.Subscribe("game2")

		// When: an event of game1 is published
		event := GameEvent{
			GameID: "game1",
			Event: gomoku.Event{
				Type:   gomoku.EventMoveApplied,
				Cell:   entity.NewCell(1, 2),
				Player: entity.White,
				State:  entity.GameState{CurrentPlayer: entity.Black},
			},
		}
		broadcaster.Publish(event)

		// Then: only game1 subscriber receives it
		select {
		case got := <-sub.Events():
			assert.Equal(t, event, got)
		case <-time.After(100 * time.Millisecond):
			require.FailNow(t, "subscriber did not receive the event")
		}

		select {
		case got := <-other.Events():
			require.FailNow(t, "unexpected event", "%+v", got)
		default:
		}
	})

	t.Run("Full buffer drops events instead of blocking", func(t *testing.T) {
		broadcaster := NewBroadcaster()
		sub := broadcaster.Subscribe("game1")

		for range subscriberBuffer + 5 {
			broadcaster.Publish(GameEvent{GameID: "game1"})
		}

		assert.Len(t, sub.Events(), subscriberBuffer)
	})
}
