package selection

import (
	"context"
)

// Event describes the selection after a change. Ctx is cancelled by the
// next change, so consumers can abandon work started for a stale selection.
type Event struct {
	Count int // selected nodes
	Size  int // sum of their memory sizes
	Ctx   context.Context
}

// Bus fans selection changes out to subscribers without ever blocking the
// input path.
type Bus struct {
	subscribers []chan Event
	cancel      context.CancelFunc
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe returns a channel receiving selection events. The channel keeps
// at most one pending event, always the latest; slow subscribers miss
// intermediate ones.
func (b *Bus) Subscribe() <-chan Event {
	ch := make(chan Event, 1)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Notify cancels the previous event's context and broadcasts a new one.
func (b *Bus) Notify(count, size int) {
	if b.cancel != nil {
		b.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	b.cancel = cancel

	ev := Event{Count: count, Size: size, Ctx: ctx}
	for _, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			// Replace the stale pending event.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// Close cancels the pending context and closes every subscriber channel.
func (b *Bus) Close() {
	if b.cancel != nil {
		b.cancel()
	}
	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
}
