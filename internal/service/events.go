package service

import (
	"context"
	"sync"
)

// EventType defines the type of event
type EventType string

const (
	EventDatasetImported EventType = "dataset_imported"
	EventDatasetReloaded EventType = "dataset_reloaded"
	EventRecordChanged   EventType = "record_changed"
	EventViewLoaded      EventType = "view_loaded"
)

// Event represents an event that occurred in the system
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// EventBus allows publishing and subscribing to events
type EventBus struct {
	mu          sync.RWMutex
	subscribers []chan<- Event
}

// NewEventBus creates a new event bus
func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make([]chan<- Event, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (eb *EventBus) Subscribe(ch chan<- Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.subscribers = append(eb.subscribers, ch)
}

// Publish sends an event to all subscribers
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	for _, ch := range eb.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber is slow, skip
		}
	}
}

// ViewEvents publishes graph view lifecycle changes on the bus.
// It satisfies graphview.Observer.
type ViewEvents struct {
	bus *EventBus
}

// NewViewEvents creates a view observer publishing to bus
func NewViewEvents(bus *EventBus) *ViewEvents {
	return &ViewEvents{bus: bus}
}

// Loaded publishes view_loaded
func (v *ViewEvents) Loaded(nodes, edges int) {
	v.bus.Publish(Event{
		Type:    EventViewLoaded,
		Payload: map[string]int{"nodes": nodes, "edges": edges},
	})
}

// LoadFailed is not published; load failures are only logged
func (v *ViewEvents) LoadFailed(err error) {}

// Rendered is not published
func (v *ViewEvents) Rendered(nodes, edges int) {}

// EventName returns the SSE event name for e
func (e Event) EventName() string {
	return string(e.Type)
}

// ChangesGraph reports whether e follows a write to stored records
func (e Event) ChangesGraph() bool {
	switch e.Type {
	case EventDatasetImported, EventDatasetReloaded, EventRecordChanged:
		return true
	}
	return false
}

// OnGraphChange calls reload after every event that changes stored records
// until ctx is done. Changes arriving while a reload runs are coalesced into
// one more reload.
func OnGraphChange(ctx context.Context, bus *EventBus, reload func(context.Context)) {
	events := make(chan Event, 64)
	bus.Subscribe(events)
	pending := make(chan struct{}, 1)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-events:
				if !ev.ChangesGraph() {
					continue
				}
				select {
				case pending <- struct{}{}:
				default:
				}
			}
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-pending:
				reload(ctx)
			}
		}
	}()
}
