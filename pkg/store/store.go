// Package store owns the canonical dream collection and its durable copy.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"tableflip.dev/dreams/pkg/dream"
	"tableflip.dev/dreams/pkg/filter"
)

var (
	// ErrNotFound is returned when no dream has the requested id.
	ErrNotFound = errors.New("store: dream not found")
	// ErrDuplicateID is returned when adding a dream whose id is already taken.
	ErrDuplicateID = errors.New("store: duplicate dream id")
	// ErrPersistence wraps every durable read or write failure.
	ErrPersistence = errors.New("store: persistence failure")
)

// Store holds all dreams, the active filter, and an in-progress draft.
// Mutations are applied in memory first and then handed to a background
// writer; they never wait for durable storage.
type Store struct {
	mu      sync.RWMutex
	dreams  []*dream.Dream
	filter  filter.Filter
	draft   *dream.Dream
	version uint64
	// retired remembers ids deleted during this process so they are never
	// handed out again.
	retired map[string]struct{}

	p       Persistence
	w       *writer
	logger  *slog.Logger
	onError func(error)

	errMu   sync.Mutex
	lastErr error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithErrorHandler registers a callback for persistence failures. It runs on
// the writer goroutine for write failures.
func WithErrorHandler(fn func(error)) Option {
	return func(s *Store) {
		s.onError = fn
	}
}

// New creates an empty store. A nil Persistence keeps the store in memory only.
func New(p Persistence, opts ...Option) *Store {
	s := &Store{
		dreams:  []*dream.Dream{},
		retired: make(map[string]struct{}),
		p:       p,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if p != nil {
		s.w = newWriter(p, s.writeResult)
	}
	return s
}

// Open loads the durable collection. On failure the store starts empty, the
// failure is reported, and the returned error wraps ErrPersistence; the store
// remains usable either way.
func (s *Store) Open(ctx context.Context) error {
	if s.p == nil {
		return nil
	}
	loaded, err := s.p.Load(ctx)
	if err != nil {
		err = fmt.Errorf("%w: load: %w", ErrPersistence, err)
		s.report(err)
		s.mu.Lock()
		s.dreams = []*dream.Dream{}
		s.mu.Unlock()
		return err
	}
	s.mu.Lock()
	s.dreams = s.sanitize(loaded)
	s.mu.Unlock()
	return nil
}

// Reload replaces the in-memory collection with the durable one. It is skipped
// while local writes are pending, since those will overwrite storage anyway,
// and discarded when a mutation commits while storage is being read.
func (s *Store) Reload(ctx context.Context) error {
	if s.p == nil {
		return nil
	}
	s.mu.RLock()
	version := s.version
	s.mu.RUnlock()
	if s.w != nil && !s.w.idle() {
		s.logger.Debug("reload skipped, writes pending")
		return nil
	}
	loaded, err := s.p.Load(ctx)
	if err != nil {
		err = fmt.Errorf("%w: reload: %w", ErrPersistence, err)
		s.report(err)
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != version {
		s.logger.Debug("reload discarded, collection changed while loading")
		return nil
	}
	if s.w != nil && !s.w.idle() {
		return nil
	}
	s.dreams = s.sanitize(loaded)
	return nil
}

// sanitize drops records that are nil, invalid, or repeat an earlier id.
func (s *Store) sanitize(loaded []*dream.Dream) []*dream.Dream {
	out := make([]*dream.Dream, 0, len(loaded))
	seen := make(map[string]struct{}, len(loaded))
	for _, d := range loaded {
		if err := d.Validate(); err != nil {
			s.logger.Warn("dropping invalid stored dream", "error", err)
			continue
		}
		if _, dup := seen[d.ID]; dup {
			s.logger.Warn("dropping duplicate stored dream", "id", d.ID)
			continue
		}
		seen[d.ID] = struct{}{}
		if d.Characters == nil {
			d.Characters = []string{}
		}
		if d.Symbols == nil {
			d.Symbols = []string{}
		}
		out = append(out, d)
	}
	return out
}

// Add appends a new dream. Adding the current draft clears it.
func (s *Store) Add(d *dream.Dream) error {
	if err := d.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, gone := s.retired[d.ID]; gone || s.indexOf(d.ID) >= 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
	}
	s.dreams = append(s.dreams, d.Clone())
	if s.draft != nil && s.draft.ID == d.ID {
		s.draft = nil
	}
	s.commit()
	return nil
}

// Update merges p into the dream with the given id and returns the result.
func (s *Store) Update(id string, p dream.Patch) (*dream.Dream, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if p.IsEmpty() {
		return s.dreams[i].Clone(), nil
	}
	merged, err := p.Apply(s.dreams[i])
	if err != nil {
		return nil, err
	}
	s.dreams[i] = merged
	s.commit()
	return merged.Clone(), nil
}

// Delete permanently removes the dream with the given id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.retired[id] = struct{}{}
	s.dreams = append(s.dreams[:i:i], s.dreams[i+1:]...)
	s.commit()
	return nil
}

// Clear removes every dream and returns how many were removed.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.dreams)
	if n == 0 {
		return 0
	}
	for _, d := range s.dreams {
		s.retired[d.ID] = struct{}{}
	}
	s.dreams = []*dream.Dream{}
	s.commit()
	return n
}

// Get returns a copy of the dream with the given id.
func (s *Store) Get(id string) (*dream.Dream, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.dreams[i].Clone(), nil
}

// All returns copies of every dream in insertion order.
func (s *Store) All() []*dream.Dream {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.dreams)
}

// Len returns the number of stored dreams.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.dreams)
}

// Filter returns the active filter.
func (s *Store) Filter() filter.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Clone()
}

// SetFilter replaces the active filter.
func (s *Store) SetFilter(f filter.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = f.Clone()
}

// Query applies the active filter to the collection.
func (s *Store) Query() []*dream.Dream {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filter.Apply(cloneAll(s.dreams), s.filter)
}

// Draft returns a copy of the in-progress draft, or nil.
func (s *Store) Draft() *dream.Dream {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft.Clone()
}

// SetDraft keeps a detached copy of d as the in-progress draft.
func (s *Store) SetDraft(d *dream.Dream) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d.Clone()
}

// ClearDraft discards the in-progress draft.
func (s *Store) ClearDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = nil
}

// Flush waits for every committed mutation to reach durable storage (or fail).
func (s *Store) Flush(ctx context.Context) error {
	if s.w == nil {
		return nil
	}
	return s.w.flush(ctx)
}

// Close flushes pending writes and stops the writer.
func (s *Store) Close(ctx context.Context) error {
	if s.w == nil {
		return nil
	}
	if err := s.w.flush(ctx); err != nil {
		return err
	}
	return s.w.close(ctx)
}

// LastError returns the most recent persistence failure, or nil once a later
// write succeeded.
func (s *Store) LastError() error {
	s.errMu.Lock()
	defer s.errMu.Unlock()
	return s.lastErr
}

// Watch reloads the store whenever durable storage changes outside this
// process and signals on the returned channel after each reload.
func (s *Store) Watch(ctx context.Context) (<-chan struct{}, error) {
	if s.p == nil {
		return nil, errors.New("store: no persistence configured")
	}
	events, err := s.p.Watch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for range events {
			if err := s.Reload(ctx); err != nil {
				continue
			}
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()
	return out, nil
}

// commit must be called with s.mu held.
func (s *Store) commit() {
	s.version++
	if s.w == nil {
		return
	}
	s.w.enqueue(&snapshot{version: s.version, dreams: cloneAll(s.dreams)})
}

func (s *Store) writeResult(version uint64, err error) {
	if err != nil {
		s.report(fmt.Errorf("%w: save v%d: %w", ErrPersistence, version, err))
		return
	}
	s.errMu.Lock()
	s.lastErr = nil
	s.errMu.Unlock()
}

func (s *Store) report(err error) {
	s.errMu.Lock()
	s.lastErr = err
	s.errMu.Unlock()
	s.logger.Error("persistence failure", "error", err)
	if s.onError != nil {
		s.onError(err)
	}
}

func (s *Store) indexOf(id string) int {
	for i, d := range s.dreams {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func cloneAll(in []*dream.Dream) []*dream.Dream {
	out := make([]*dream.Dream, len(in))
	for i, d := range in {
		out[i] = d.Clone()
	}
	return out
}
