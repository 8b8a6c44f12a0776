// Package eventq is the FIFO that carries events from any goroutine to the
// render loop.
package eventq

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Well-known event types.
const (
	// TypeKey carries a terminal.Token payload dispatched as input.
	TypeKey = "key"
	// TypeInvoke carries a func() run on the loop goroutine.
	TypeInvoke = "invoke"
	// TypeRedraw marks the whole tree dirty.
	TypeRedraw = "redraw"
	// TypeQuit stops the loop that applies it.
	TypeQuit = "quit"
)

// Event is a queued payload tagged with a type and an optional source.
type Event struct {
	ID      ulid.ULID
	Type    string
	Source  any
	Payload any
	At      time.Time
}

// Queue is safe for concurrent Enqueue. Dequeue is meant for a single
// consumer.
type Queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []Event
	gen    uint64
	closed bool
}

// New returns an empty queue.
func New() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends ev and wakes a waiting consumer. A zero ID or timestamp
// is filled in. Events sent after Close are dropped and the zero ID is
// returned.
func (q *Queue) Enqueue(ev Event) ulid.ULID {
	if ev.ID == (ulid.ULID{}) {
		ev.ID = ulid.Make()
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ulid.ULID{}
	}
	q.items = append(q.items, ev)
	q.cond.Signal()
	return ev.ID
}

// Post enqueues an event of the given type.
func (q *Queue) Post(eventType string, payload any) ulid.ULID {
	return q.Enqueue(Event{Type: eventType, Payload: payload})
}

// Invoke schedules fn on the consumer goroutine.
func (q *Queue) Invoke(fn func()) ulid.ULID {
	return q.Post(TypeInvoke, fn)
}

// DequeueBlocking waits for an event and removes the oldest one. It returns
// false if the queue is cleared or closed while waiting.
func (q *Queue) DequeueBlocking() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	gen := q.gen
	for len(q.items) == 0 {
		if q.closed || q.gen != gen {
			return Event{}, false
		}
		q.cond.Wait()
	}
	return q.popLocked(), true
}

// DequeueContext is DequeueBlocking that also gives up when ctx is done.
func (q *Queue) DequeueContext(ctx context.Context) (Event, bool) {
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()

	gen := q.gen
	for len(q.items) == 0 {
		if q.closed || q.gen != gen || ctx.Err() != nil {
			return Event{}, false
		}
		q.cond.Wait()
	}
	return q.popLocked(), true
}

// TryDequeue removes the oldest event without waiting.
func (q *Queue) TryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return Event{}, false
	}
	return q.popLocked(), true
}

// Take removes and returns the oldest event accepted by match.
func (q *Queue) Take(match func(Event) bool) (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, ev := range q.items {
		if match(ev) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return ev, true
		}
	}
	return Event{}, false
}

// Drain removes and returns, in order, every event accepted by keep.
// Rejected events stay queued in their original order.
func (q *Queue) Drain(keep func(Event) bool) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out []Event
	rest := q.items[:0]
	for _, ev := range q.items {
		if keep == nil || keep(ev) {
			out = append(out, ev)
		} else {
			rest = append(rest, ev)
		}
	}
	clear(q.items[len(rest):])
	q.items = rest
	return out
}

// Clear drops every queued event and releases blocked consumers. It
// returns the number dropped.
func (q *Queue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	q.items = nil
	q.gen++
	q.cond.Broadcast()
	return n
}

// Close rejects further events and releases blocked consumers. Events
// already queued can still be dequeued.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) popLocked() Event {
	ev := q.items[0]
	q.items[0] = Event{}
	q.items = q.items[1:]
	return ev
}
