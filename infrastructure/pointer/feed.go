package pointer

import (
	"sync"

	"hover_reader/domain/entities"
	"hover_reader/domain/interfaces"
)

// Feed is a pointer source driven by explicit Move calls.
// Samples are delivered synchronously, one at a time.
type Feed struct {
	mu       sync.Mutex
	dispatch sync.Mutex
	nextID   int
	handlers map[int]func(entities.PointerEvent)
	order    []int
}

// NewFeed - creates a feed with no subscribers
func NewFeed() *Feed {
	return &Feed{handlers: make(map[int]func(entities.PointerEvent))}
}

// Subscribe - attaches handler until the returned func is called
func (f *Feed) Subscribe(handler func(entities.PointerEvent)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.nextID
	f.nextID++
	f.handlers[id] = handler
	f.order = append(f.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { f.remove(id) })
	}
}

func (f *Feed) remove(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.handlers, id)
	for i, v := range f.order {
		if v == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Subscribers - returns the number of attached handlers
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}

// Move - delivers a pointer sample at viewport position (x, y)
func (f *Feed) Move(x, y float64) {
	f.Emit(entities.PointerEvent{ClientX: x, ClientY: y})
}

// Emit - delivers event to every subscriber in subscription order
func (f *Feed) Emit(event entities.PointerEvent) {
	f.dispatch.Lock()
	defer f.dispatch.Unlock()

	f.mu.Lock()
	handlers := make([]func(entities.PointerEvent), 0, len(f.order))
	for _, id := range f.order {
		handlers = append(handlers, f.handlers[id])
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

var _ interfaces.PointerSource = (*Feed)(nil)
