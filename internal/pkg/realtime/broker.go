package realtime

import (
	"context"
	"sync"
)

// Handler receives published change events. It must not block.
type Handler func(ChangeEvent)

// Broker fans change events out to subscribers
type Broker interface {
	Publish(ctx context.Context, ev ChangeEvent) error
	// Subscribe registers h and returns a function that removes it
	Subscribe(h Handler) (unsubscribe func())
	Close() error
}

// LocalBroker delivers events to subscribers in the same process
type LocalBroker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]Handler
}

func NewLocalBroker() *LocalBroker {
	return &LocalBroker{subs: make(map[int]Handler)}
}

func (b *LocalBroker) Publish(_ context.Context, ev ChangeEvent) error {
	b.dispatch(ev)
	return nil
}

func (b *LocalBroker) dispatch(ev ChangeEvent) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, h := range b.subs {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

func (b *LocalBroker) Subscribe(h Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = h
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

func (b *LocalBroker) Close() error {
	b.mu.Lock()
	b.subs = make(map[int]Handler)
	b.mu.Unlock()
	return nil
}
