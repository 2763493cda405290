package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// DefaultEventBuffer is the per-watcher channel size used when StoreConfig.EventBuffer is zero.
const DefaultEventBuffer = 100

// StoreConfig holds the configuration for a Store.
type StoreConfig struct {
	Logger *slog.Logger
	// OrderedSaves chains every save behind the previous one so saves complete
	// in dispatch order. When false saves race and the last to finish wins.
	OrderedSaves bool
	EventBuffer  int
	// OnSave is called once per save, after it completed.
	OnSave func(*SaveTask)
}

// Result describes the outcome of a mutation.
type Result struct {
	Note  Note       // the created, updated or deleted note
	Notes Collection // snapshot of the collection right after the mutation
	Save  *SaveTask  // the save dispatched by the mutation
}

// Store owns the authoritative in-memory collection of notes.
//
// Mutations are serialized and visible to the next read as soon as they return.
// Each one replaces the collection with a new value and dispatches a save of
// that snapshot through the Gateway without waiting for it.
type Store struct {
	mu      sync.RWMutex
	gateway Gateway
	config  StoreConfig
	logger  *slog.Logger

	notes    Collection
	nextID   int64
	hydrated bool

	seq            uint64
	lastSave       *SaveTask
	lastSaveErr    error
	inflight       map[*SaveTask]struct{}
	completedSaves uint64
	failedSaves    uint64

	watchMu  sync.Mutex
	watchers map[chan Event]struct{}
}

// NewStore creates an empty Store backed by gw. Call Initialize to hydrate it.
func NewStore(gw Gateway, config StoreConfig) *Store {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = DefaultEventBuffer
	}
	return &Store{
		gateway:  gw,
		config:   config,
		logger:   logger,
		notes:    Collection{},
		nextID:   1,
		inflight: make(map[*SaveTask]struct{}),
		watchers: make(map[chan Event]struct{}),
	}
}

// Initialize hydrates the store from the gateway.
//
// Load is attempted at most once per Store; later calls return nil without I/O.
// If the collection was populated while the load was in flight, the loaded
// value is discarded. Loaded notes with a missing or duplicate id get a fresh
// one and the repaired collection is saved back.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		s.logger.Debug("store already initialized, skipping load")
		return nil
	}
	s.hydrated = true
	s.mu.Unlock()

	loaded, err := s.gateway.Load(ctx)
	if err != nil {
		if !IsPersistence(err) {
			err = &PersistenceError{Op: "load", Err: err}
		}
		s.logger.Error("load failed", "kind", "persistence", "error", err)
		return err
	}

	notes, repaired := normalize(loaded)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.notes) > 0 {
		s.logger.Warn("discarding loaded notes, collection already populated",
			"loaded", len(notes), "current", len(s.notes))
		return nil
	}

	s.notes = notes
	if highest := notes.MaxID(); highest >= s.nextID {
		s.nextID = highest + 1
	}
	s.logger.Info("store hydrated", "notes", len(notes))

	if repaired > 0 {
		s.logger.Warn("repaired note ids", "count", repaired)
		s.dispatchSave(ctx, notes)
	}
	return nil
}

// normalize gives a fresh id to every note whose id is not positive or was
// already used by an earlier note.
func normalize(c Collection) (Collection, int) {
	out := make(Collection, 0, len(c))
	seen := make(map[int64]bool, len(c))
	next := c.MaxID() + 1
	repaired := 0
	for _, n := range c {
		if n.ID <= 0 || seen[n.ID] {
			n.ID = next
			next++
			repaired++
		}
		seen[n.ID] = true
		out = append(out, n)
	}
	return out, repaired
}

// Create appends a new note and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, title, description string) (Result, error) {
	if title == "" {
		return Result{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note := Note{ID: s.nextID, Title: title, Description: description}
	s.nextID++

	next := make(Collection, len(s.notes), len(s.notes)+1)
	copy(next, s.notes)
	next = append(next, note)

	return s.commit(ctx, EventCreate, note, next), nil
}

// Update replaces the title and description of an existing note, keeping its id and position.
func (s *Store) Update(ctx context.Context, id int64, title, description string) (Result, error) {
	if title == "" {
		return Result{}, fmt.Errorf("%w: title is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.notes.Index(id)
	if i < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	next := s.notes.Clone()
	next[i].Title = title
	next[i].Description = description

	return s.commit(ctx, EventModify, next[i], next), nil
}

// Delete removes a note.
func (s *Store) Delete(ctx context.Context, id int64) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.notes.Index(id)
	if i < 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	removed := s.notes[i]
	next := make(Collection, 0, len(s.notes)-1)
	next = append(next, s.notes[:i]...)
	next = append(next, s.notes[i+1:]...)

	return s.commit(ctx, EventDelete, removed, next), nil
}

// commit installs next as the current collection and saves it. Callers must hold s.mu.
func (s *Store) commit(ctx context.Context, typ EventType, note Note, next Collection) Result {
	s.notes = next
	s.logger.Debug("note mutated", "op", string(typ), "id", note.ID, "notes", len(next))
	s.publish(Event{Type: typ, ID: note.ID, Timestamp: now()})

	task := s.dispatchSave(ctx, next)
	return Result{Note: note, Notes: next.Clone(), Save: task}
}

// Get retrieves a note by id.
func (s *Store) Get(id int64) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Find(id)
}

// Notes returns a snapshot of the collection.
func (s *Store) Notes() Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notes.Clone()
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func now() int64 {
	return time.Now().Unix()
}

// Close flushes pending saves and releases the gateway if it holds resources.
func (s *Store) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	if c, ok := s.gateway.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}
