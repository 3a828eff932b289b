package pubsub

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// eviction stands in for a cache invalidation payload.
type eviction struct {
	key        string
	generation uint64
}

func receive[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for event")
		return Event[T]{}
	}
}

func TestBroker_DeliversToEverySubscriber(t *testing.T) {
	broker := NewBroker[eviction]()
	defer broker.Close()

	ctx := context.Background()
	subs := []<-chan Event[eviction]{broker.Subscribe(ctx), broker.Subscribe(ctx)}
	require.Equal(t, 2, broker.SubscriberCount())

	broker.Publish(EvictedEvent, eviction{key: "COMPONENT@markup://test:button", generation: 3})

	for _, ch := range subs {
		ev := receive(t, ch)
		require.Equal(t, EvictedEvent, ev.Type)
		require.Equal(t, uint64(3), ev.Payload.generation)
		require.False(t, ev.Timestamp.IsZero())
	}
}

func TestBroker_PreservesOrderPerSubscriber(t *testing.T) {
	broker := NewBroker[eviction]()
	defer broker.Close()

	ch := broker.Subscribe(context.Background())
	for gen := uint64(1); gen <= 5; gen++ {
		broker.Publish(EvictedEvent, eviction{generation: gen})
	}
	for gen := uint64(1); gen <= 5; gen++ {
		require.Equal(t, gen, receive(t, ch).Payload.generation)
	}
}

func TestBroker_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	broker := NewBrokerWithBuffer[eviction](1)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for gen := uint64(1); gen <= 3; gen++ {
			broker.Publish(EvictedEvent, eviction{generation: gen})
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Publish blocked on a full subscriber")
	}

	require.Equal(t, uint64(1), receive(t, ch).Payload.generation)
	require.Equal(t, uint64(2), broker.Dropped())
}

func TestBroker_CancelledSubscriptionIsClosed(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool { return broker.SubscriberCount() == 0 }, time.Second, 5*time.Millisecond)
	_, ok := <-ch
	require.False(t, ok)
}

func TestBroker_Close(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close()

	_, ok := <-ch
	require.False(t, ok)
	require.Zero(t, broker.SubscriberCount())

	late := broker.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok, "subscribing after close yields a closed channel")

	require.NotPanics(t, func() { broker.Publish(LoggedEvent, "after close") })
}

func TestBroker_ConcurrentPublishers(t *testing.T) {
	broker := NewBrokerWithBuffer[int](1000)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				broker.Publish(EvictedEvent, i*50+j)
			}
		}(i)
	}
	wg.Wait()

	require.Len(t, ch, 500)
	require.Zero(t, broker.Dropped())
}

func TestNext(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	ch := broker.Subscribe(ctx)

	broker.Publish(LoggedEvent, "[INFO] [cache] evicted")
	ev, ok := Next(ctx, ch)
	require.True(t, ok)
	require.Equal(t, LoggedEvent, ev.Type)

	done, stop := context.WithCancel(context.Background())
	stop()
	_, ok = Next(done, ch)
	require.False(t, ok)
}
