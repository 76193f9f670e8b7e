package events

import (
	"sync"

	"github.com/rocketscienceinc/gomoku-backend/internal/gomoku"
)

const subscriberBuffer = 16

// GameEvent - engine event tagged with the game it belongs to.
type GameEvent struct {
	GameID string `json:"game_id"`
	gomoku.Event
}

// Subscriber - receives events of one game until unsubscribed.
type Subscriber struct {
	ch     chan GameEvent
	gameID string
}

func (that *Subscriber) Events() <-chan GameEvent {
	return that.ch
}

func (that *Subscriber) GameID() string {
	return that.gameID
}

// Broadcaster - fans game events out to subscribers grouped by game id.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[*Subscriber]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[*Subscriber]struct{}),
	}
}

func (that *Broadcaster) Subscribe(gameID string) *Subscriber {
	sub := &Subscriber{
		ch:     make(chan GameEvent, subscriberBuffer),
		gameID: gameID,
	}

	that.mu.Lock()
	that.subscribers[sub] = struct{}{}
	that.mu.Unlock()

	return sub
}

// Unsubscribe - removes the subscriber and closes its channel. Safe to call twice.
func (that *Broadcaster) Unsubscribe(sub *Subscriber) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.subscribers[sub]; ok {
		delete(that.subscribers, sub)
		close(sub.ch)
	}
}

// Publish - delivers the event to every subscriber of its game. Slow subscribers with a full buffer miss it.
func (that *Broadcaster) Publish(event GameEvent) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for sub := range that.subscribers {
		if sub.gameID != event.GameID {
			continue
		}

		select {
		case sub.ch <- event:
		default:
		}
	}
}

func (that *Broadcaster) SubscriberCount(gameID string) int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	count := 0
	for sub := range that.subscribers {
		if sub.gameID == gameID {
			count++
		}
	}

	return count
}
