// Package pubsub fans typed events out to subscribers without ever
// blocking the publisher. The cache tier publishes invalidations through it
// and the logger publishes formatted lines.
package pubsub

import (
	"context"
	"time"
)

// EventType names what an event reports.
type EventType string

const (
	// LoggedEvent carries one formatted log line.
	LoggedEvent EventType = "logged"
	// EvictedEvent carries a cache invalidation.
	EvictedEvent EventType = "evicted"
)

// Event is one delivery. Timestamp is stamped by the broker at publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
