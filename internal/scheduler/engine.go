// Package scheduler emits timed expiry events, such as toast dismissal, on a channel
// the Bubble Tea loop can wait on.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidDeadline = errors.New("scheduler: invalid deadline")
	ErrMissingKey      = errors.New("scheduler: event key is required")
	ErrStopped         = errors.New("scheduler: engine stopped")
)

// Event fires once At has passed. Key identifies it for Cancel.
type Event struct {
	Key  string
	Kind string
	At   time.Time
}

type entry struct {
	event Event
	index int
}

type deadlineHeap []*entry

func (h deadlineHeap) Len() int { return len(h) }

func (h deadlineHeap) Less(i, j int) bool { return h[i].event.At.Before(h[j].event.At) }

func (h deadlineHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *deadlineHeap) Push(x any) {
	e := x.(*entry)
	e.index = len(*h)
	*h = append(*h, e)
}

func (h *deadlineHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*h = old[:n-1]
	return e
}

// Engine delivers events in deadline order. Delivery never blocks; events that
// find the output buffer full are counted in Dropped.
type Engine struct {
	mu      sync.Mutex
	pending deadlineHeap
	byKey   map[string]*entry
	out     chan Event
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		byKey:  make(map[string]*entry),
		out:    make(chan Event, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// C is closed after Stop.
func (e *Engine) C() <-chan Event {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started || e.stopped {
		return
	}
	e.started = true
	go e.run()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.stopped = true
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// Schedule adds ev, replacing any pending event with the same key.
func (e *Engine) Schedule(ev Event) error {
	if ev.Key == "" {
		return ErrMissingKey
	}
	if ev.At.IsZero() {
		return ErrInvalidDeadline
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	if existing, ok := e.byKey[ev.Key]; ok {
		existing.event = ev
		heap.Fix(&e.pending, existing.index)
	} else {
		item := &entry{event: ev}
		heap.Push(&e.pending, item)
		e.byKey[ev.Key] = item
	}
	e.notify()
	return nil
}

// Cancel removes a pending event and reports whether one was found.
func (e *Engine) Cancel(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.byKey[key]
	if !ok {
		return false
	}
	heap.Remove(&e.pending, item.index)
	delete(e.byKey, key)
	e.notify()
	return true
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.doneCh)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	stopTimer(timer)
	defer timer.Stop()

	for {
		next, ok := e.next()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		timer.Reset(max(time.Until(next), 0))
		select {
		case <-timer.C:
			for _, ev := range e.expired(time.Now()) {
				select {
				case e.out <- ev:
				default:
					e.dropped.Add(1)
				}
			}
		case <-e.wakeup:
			stopTimer(timer)
		case <-e.stopCh:
			stopTimer(timer)
			return
		}
	}
}

func (e *Engine) notify() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) next() (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.pending) == 0 {
		return time.Time{}, false
	}
	return e.pending[0].event.At, true
}

func (e *Engine) expired(now time.Time) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	var out []Event
	for len(e.pending) > 0 && !e.pending[0].event.At.After(now) {
		item := heap.Pop(&e.pending).(*entry)
		delete(e.byKey, item.event.Key)
		out = append(out, item.event)
	}
	return out
}

func stopTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
