package store

import (
	"context"
	"sync"

	"tableflip.dev/dreams/pkg/dream"
)

// snapshot is one committed state of the collection.
type snapshot struct {
	version uint64
	dreams  []*dream.Dream
}

// writer persists snapshots on its own goroutine. Only the latest pending
// snapshot is kept, so a burst of mutations costs one durable write.
type writer struct {
	p      Persistence
	result func(version uint64, err error)

	mu       sync.Mutex
	next     *snapshot
	enqueued uint64
	written  uint64
	changed  chan struct{}

	kick chan struct{}
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func newWriter(p Persistence, result func(uint64, error)) *writer {
	w := &writer{
		p:       p,
		result:  result,
		changed: make(chan struct{}),
		kick:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// enqueue replaces any pending snapshot and never blocks.
func (w *writer) enqueue(s *snapshot) {
	w.mu.Lock()
	w.next = s
	if s.version > w.enqueued {
		w.enqueued = s.version
	}
	w.mu.Unlock()

	select {
	case w.kick <- struct{}{}:
	default:
	}
}

// idle reports whether every enqueued snapshot has been attempted.
func (w *writer) idle() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written >= w.enqueued
}

// flush waits until every snapshot enqueued so far has been attempted.
func (w *writer) flush(ctx context.Context) error {
	for {
		w.mu.Lock()
		if w.written >= w.enqueued {
			w.mu.Unlock()
			return nil
		}
		ch := w.changed
		w.mu.Unlock()

		select {
		case <-ch:
		case <-w.done:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// close drains pending snapshots and stops the goroutine.
func (w *writer) close(ctx context.Context) error {
	w.once.Do(func() { close(w.stop) })
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *writer) run() {
	defer close(w.done)
	for {
		select {
		case <-w.kick:
			w.drain()
		case <-w.stop:
			w.drain()
			return
		}
	}
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		s := w.next
		w.next = nil
		w.mu.Unlock()
		if s == nil {
			return
		}

		err := w.p.Save(context.Background(), s.dreams)
		if w.result != nil {
			w.result(s.version, err)
		}

		w.mu.Lock()
		if s.version > w.written {
			w.written = s.version
		}
		close(w.changed)
		w.changed = make(chan struct{})
		w.mu.Unlock()
	}
}
