package runner

import (
	"log/slog"
	"sync"
	"time"
)

// ProgressEvent is a per-generation progress update.
type ProgressEvent struct {
	RunID      string
	State      State
	Generation int
	Best       float64
	Avg        float64
	Stale      int
	Timestamp  time.Time
}

// EventBroadcaster fans progress events out to subscribers of a run.
type EventBroadcaster struct {
	mu        sync.RWMutex
	clients   map[string]map[chan ProgressEvent]bool // runID -> set of client channels
	lastEvent map[string]ProgressEvent               // runID -> last event for new clients
}

// NewEventBroadcaster creates a new event broadcaster.
func NewEventBroadcaster() *EventBroadcaster {
	return &EventBroadcaster{
		clients:   make(map[string]map[chan ProgressEvent]bool),
		lastEvent: make(map[string]ProgressEvent),
	}
}

// Subscribe adds a client to receive events for a run.
func (eb *EventBroadcaster) Subscribe(runID string) chan ProgressEvent {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan ProgressEvent, 16) // Buffered to prevent blocking

	if eb.clients[runID] == nil {
		eb.clients[runID] = make(map[chan ProgressEvent]bool)
	}
	eb.clients[runID][ch] = true

	// Late subscribers still see where the run stands.
	if last, ok := eb.lastEvent[runID]; ok {
		select {
		case ch <- last:
		default:
		}
	}

	return ch
}

// Unsubscribe removes a client from receiving events.
func (eb *EventBroadcaster) Unsubscribe(runID string, ch chan ProgressEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if clients, ok := eb.clients[runID]; ok {
		if clients[ch] {
			delete(clients, ch)
			close(ch)
		}
		if len(clients) == 0 {
			delete(eb.clients, runID)
		}
	}
}

// Broadcast sends an event to all subscribed clients for a run.
func (eb *EventBroadcaster) Broadcast(event ProgressEvent) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.lastEvent[event.RunID] = event

	for ch := range eb.clients[event.RunID] {
		select {
		case ch <- event:
		default:
			// Slow subscriber, drop rather than block the run.
			slog.Warn("Progress channel full, dropping event", "run_id", event.RunID)
		}
	}
}

// Cleanup closes all subscriptions and cached events for a run.
func (eb *EventBroadcaster) Cleanup(runID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if clients, ok := eb.clients[runID]; ok {
		for ch := range clients {
			close(ch)
		}
		delete(eb.clients, runID)
	}
	delete(eb.lastEvent, runID)
}
