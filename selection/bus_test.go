package selection

import (
	"testing"
	"time"
)

func TestBusNotifyAllSubscribers(t *testing.T) {
	bus := NewBus()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()

	bus.Notify(3, 24)

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case ev := <-ch:
			if ev.Count != 3 || ev.Size != 24 {
				t.Errorf("subscriber %d: got count=%d size=%d, want 3/24", i, ev.Count, ev.Size)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("subscriber %d: no event", i)
		}
	}
}

func TestBusNotifyNeverBlocks(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()

	done := make(chan struct{})
	go func() {
		for i := range 10 {
			bus.Notify(i, 0)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a full subscriber")
	}

	ev := <-ch
	if ev.Count != 9 {
		t.Errorf("pending event should be the latest one, got count=%d", ev.Count)
	}
	if ev.Ctx.Err() != nil {
		t.Error("latest event should not be cancelled")
	}
}

func TestBusCloseCancelsAndCloses(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe()
	bus.Notify(1, 1)
	ev := <-ch

	bus.Close()

	if ev.Ctx.Err() == nil {
		t.Error("context should be cancelled after Close")
	}
	if _, ok := <-ch; ok {
		t.Error("channel should be closed")
	}
}
