package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestEngineEmitsInDeadlineOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Event{Key: "later", Kind: "toast", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Event{Key: "sooner", Kind: "toast", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.Key != "sooner" || second.Key != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.Key, second.Key)
	}
}

func TestCancelPreventsDelivery(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	_ = engine.Schedule(Event{Key: "toast-1", At: now.Add(30 * time.Millisecond)})
	_ = engine.Schedule(Event{Key: "toast-2", At: now.Add(60 * time.Millisecond)})
	if !engine.Cancel("toast-1") {
		t.Fatal("expected toast-1 to be pending")
	}
	if engine.Cancel("missing") {
		t.Fatal("expected cancel of unknown key to report false")
	}

	got := waitEvent(t, engine.C(), time.Second)
	if got.Key != "toast-2" {
		t.Fatalf("expected toast-2, got %s", got.Key)
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestScheduleSameKeyReplacesDeadline(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	_ = engine.Schedule(Event{Key: "toast-1", At: now.Add(time.Hour)})
	_ = engine.Schedule(Event{Key: "toast-1", At: now.Add(20 * time.Millisecond)})
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending event, got %d", engine.Pending())
	}
	if got := waitEvent(t, engine.C(), time.Second); got.Key != "toast-1" {
		t.Fatalf("unexpected event %s", got.Key)
	}
}

func TestEngineDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	at := time.Now().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Event{Key: string(rune('a' + i)), At: at}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidation(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Event{Key: "bad"}); !errors.Is(err, ErrInvalidDeadline) {
		t.Fatalf("expected ErrInvalidDeadline, got %v", err)
	}
	if err := engine.Schedule(Event{At: time.Now()}); !errors.Is(err, ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
	engine.Stop()
	if err := engine.Schedule(Event{Key: "late", At: time.Now()}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}

func TestStopClosesChannel(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	select {
	case _, ok := <-engine.C():
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after Stop")
	}
}

func waitEvent(t *testing.T, ch <-chan Event, timeout time.Duration) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for event")
		return Event{}
	}
}
