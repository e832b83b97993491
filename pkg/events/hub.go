package events

import (
	"sync"
	"time"
)

// Event is a broadcast message about a booking or bus state change.
type Event struct {
	Type      string         `json:"type"`
	BusID     int64          `json:"bus_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

const (
	EventSeatBooked       = "seat_booked"
	EventSeatReleased     = "seat_released"
	EventPassengerBoarded = "passenger_boarded"
	EventTripCompleted    = "trip_completed"
	EventIncidentReported = "incident_reported"
)

// Hub fans events out to subscribers. Publish never blocks: a subscriber
// whose buffer is full misses the event rather than stalling the publisher.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a buffered channel for events. The returned cancel
// func removes the subscription and closes the channel.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subs[ch]; ok {
			delete(h.subs, ch)
			close(ch)
		}
		h.mu.Unlock()
	}

	return ch, cancel
}

func (h *Hub) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
