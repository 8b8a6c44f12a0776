package eventq

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestQueue_FIFO(t *testing.T) {
	q := New()
	first := q.Post(TypeRedraw, nil)
	q.Post(TypeInvoke, "two")
	q.Enqueue(Event{Type: "custom", Source: "timer", Payload: 3})

	require.Equal(t, 3, q.Len())
	assert.NotEqual(t, ulid.ULID{}, first)

	ev, ok := q.TryDequeue()
	require.True(t, ok)
	assert.Equal(t, first, ev.ID)
	assert.Equal(t, TypeRedraw, ev.Type)
	assert.False(t, ev.At.IsZero())

	ev, _ = q.DequeueBlocking()
	assert.Equal(t, "two", ev.Payload)
	ev, _ = q.DequeueBlocking()
	assert.Equal(t, "timer", ev.Source)

	_, ok = q.TryDequeue()
	assert.False(t, ok)
}

func TestQueue_DequeueBlockingWaits(t *testing.T) {
	q := New()
	got := make(chan Event, 1)
	go func() {
		ev, ok := q.DequeueBlocking()
		if ok {
			got <- ev
		}
	}()

	time.Sleep(10 * time.Millisecond)
	q.Post(TypeQuit, nil)

	select {
	case ev := <-got:
		assert.Equal(t, TypeQuit, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("DequeueBlocking did not wake up")
	}
}

func TestQueue_ClearReleasesWaiter(t *testing.T) {
	q := New()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.DequeueBlocking()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Clear()

	select {
	case ok := <-done:
		assert.False(t, ok, "a cleared wait returns no event")
	case <-time.After(time.Second):
		t.Fatal("Clear did not release the waiter")
	}
}

func TestQueue_Close(t *testing.T) {
	q := New()
	q.Post(TypeRedraw, nil)
	q.Close()

	assert.Equal(t, ulid.ULID{}, q.Post(TypeRedraw, nil))
	_, ok := q.DequeueBlocking()
	assert.True(t, ok, "events queued before Close are still delivered")
	_, ok = q.DequeueBlocking()
	assert.False(t, ok)
}

func TestQueue_DequeueContext(t *testing.T) {
	q := New()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, ok := q.DequeueContext(ctx)
	assert.False(t, ok)

	q.Post(TypeRedraw, nil)
	ev, ok := q.DequeueContext(context.Background())
	require.True(t, ok)
	assert.Equal(t, TypeRedraw, ev.Type)
}

func TestQueue_DrainKeepsOthers(t *testing.T) {
	q := New()
	q.Post(TypeKey, "a")
	q.Post(TypeInvoke, 1)
	q.Post(TypeKey, "b")
	q.Post(TypeRedraw, 2)

	drained := q.Drain(func(ev Event) bool { return ev.Type != TypeKey })
	require.Len(t, drained, 2)
	assert.Equal(t, 1, drained[0].Payload)
	assert.Equal(t, 2, drained[1].Payload)

	require.Equal(t, 2, q.Len())
	ev, _ := q.TryDequeue()
	assert.Equal(t, "a", ev.Payload)
	ev, _ = q.TryDequeue()
	assert.Equal(t, "b", ev.Payload)
}

func TestQueue_TakeFirstMatch(t *testing.T) {
	q := New()
	q.Post(TypeRedraw, 1)
	q.Post(TypeKey, "a")
	q.Post(TypeKey, "b")

	ev, ok := q.Take(func(ev Event) bool { return ev.Type == TypeKey })
	require.True(t, ok)
	assert.Equal(t, "a", ev.Payload)
	assert.Equal(t, 2, q.Len())

	_, ok = q.Take(func(ev Event) bool { return ev.Type == TypeQuit })
	assert.False(t, ok)
}

func TestQueue_ConcurrentProducers(t *testing.T) {
	const producers = 8
	const perProducer = 200

	q := New()
	var g errgroup.Group
	for p := 0; p < producers; p++ {
		g.Go(func() error {
			for i := 0; i < perProducer; i++ {
				q.Enqueue(Event{Type: "tick", Source: p, Payload: i})
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, producers*perProducer, q.Len())

	next := make(map[int]int)
	for i := 0; i < producers*perProducer; i++ {
		ev, ok := q.TryDequeue()
		require.True(t, ok)
		p := ev.Source.(int)
		assert.Equal(t, next[p], ev.Payload, fmt.Sprintf("producer %d out of order", p))
		next[p]++
	}
}
