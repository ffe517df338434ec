// Package pubsub carries reader events (document loads, file changes, log
// lines) from producers to the Bubble Tea program.
package pubsub

import (
	"context"
	"time"
)

// EventType names what happened to the payload.
type EventType string

const (
	// LoadedEvent: a document finished loading and replaced the previous one.
	LoadedEvent EventType = "loaded"
	// ChangedEvent: the open file changed on disk.
	ChangedEvent EventType = "changed"
	// RemovedEvent: the open file was removed or renamed away.
	RemovedEvent EventType = "removed"
	// FailedEvent: a producer hit an error it could not recover from.
	FailedEvent EventType = "failed"
	// AppendedEvent: a line was appended to a stream (log entries).
	AppendedEvent EventType = "appended"
)

// Event is a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
