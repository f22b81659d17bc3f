package collision

import (
	"fmt"
	"iter"
	"slices"

	"github.com/vovakirdan/collide/internal/core"
)

// Event records one overlapping pair found during a tick. The pair is
// unordered in meaning; A and B are just two fixed slots. Rects are the world
// rects measured at detection time.
type Event struct {
	Tick  uint64
	A     core.EntityID
	RectA core.Rect
	B     core.EntityID
	RectB core.Rect
}

// Involves reports whether id is a party to the event.
func (e Event) Involves(id core.EntityID) bool {
	return id == e.A || id == e.B
}

// TryOther returns the entity paired with id, or false if id is not a party.
func (e Event) TryOther(id core.EntityID) (core.EntityID, bool) {
	switch id {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	default:
		return 0, false
	}
}

// TryOtherRect returns the world rect of the entity paired with id.
func (e Event) TryOtherRect(id core.EntityID) (core.Rect, bool) {
	switch id {
	case e.A:
		return e.RectB, true
	case e.B:
		return e.RectA, true
	default:
		return core.Rect{}, false
	}
}

// TryRect returns the world rect recorded for id itself.
func (e Event) TryRect(id core.EntityID) (core.Rect, bool) {
	switch id {
	case e.A:
		return e.RectA, true
	case e.B:
		return e.RectB, true
	default:
		return core.Rect{}, false
	}
}

// Other returns the entity paired with id.
// Panics if id is not a party to the event; use TryOther when unsure.
func (e Event) Other(id core.EntityID) core.EntityID {
	other, ok := e.TryOther(id)
	if !ok {
		panic(e.notParty(id))
	}
	return other
}

// OtherRect returns the world rect of the entity paired with id.
// Panics if id is not a party to the event; use TryOtherRect when unsure.
func (e Event) OtherRect(id core.EntityID) core.Rect {
	r, ok := e.TryOtherRect(id)
	if !ok {
		panic(e.notParty(id))
	}
	return r
}

// Rect returns the world rect recorded for id.
// Panics if id is not a party to the event; use TryRect when unsure.
func (e Event) Rect(id core.EntityID) core.Rect {
	r, ok := e.TryRect(id)
	if !ok {
		panic(e.notParty(id))
	}
	return r
}

func (e Event) notParty(id core.EntityID) string {
	return fmt.Sprintf("collision: entity %s is not a party to collision event (%s, %s)", id, e.A, e.B)
}

// Batch is the complete, read-only set of events from one detection pass.
// It lives for exactly one tick.
type Batch struct {
	tick   uint64
	events []Event
}

// NewBatch wraps events into a batch. The slice is owned by the batch
// afterwards.
func NewBatch(tick uint64, events []Event) *Batch {
	return &Batch{tick: tick, events: events}
}

// Tick returns the tick the batch was detected on.
func (b *Batch) Tick() uint64 {
	if b == nil {
		return 0
	}
	return b.tick
}

// Len returns the number of events.
func (b *Batch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.events)
}

// At returns the i-th event.
func (b *Batch) At(i int) Event {
	return b.events[i]
}

// Events returns a copy of the events in detection order.
func (b *Batch) Events() []Event {
	if b == nil {
		return nil
	}
	return slices.Clone(b.events)
}

// All iterates events in detection order.
func (b *Batch) All() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if b == nil {
			return
		}
		for _, e := range b.events {
			if !yield(e) {
				return
			}
		}
	}
}

// Involving iterates, in detection order, the events that id is a party to.
func (b *Batch) Involving(id core.EntityID) iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if b == nil {
			return
		}
		for _, e := range b.events {
			if e.Involves(id) && !yield(e) {
				return
			}
		}
	}
}
