// Package session implements the single-record edit session: whether the user
// is creating a new note, editing an existing one, or neither, and which store
// operation a submit maps to.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/notepad/pkg/core"
)

// ErrInvalidState is returned when a transition is not allowed from the current state.
var ErrInvalidState = errors.New("invalid edit session state")

// Kind tags the session state.
type Kind int

const (
	Idle Kind = iota
	Creating
	Editing
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// State is the current session state. NoteID is only meaningful when Kind is Editing.
type State struct {
	Kind   Kind
	NoteID int64
}

func (s State) String() string {
	if s.Kind == Editing {
		return fmt.Sprintf("editing(%d)", s.NoteID)
	}
	return s.Kind.String()
}

// Form is the data shown in, and submitted from, the note form.
type Form struct {
	Title       string
	Description string
}

// Notes is the part of the note store a session drives. *core.Store satisfies it.
type Notes interface {
	Get(id int64) (core.Note, bool)
	Create(ctx context.Context, title, description string) (core.Result, error)
	Update(ctx context.Context, id int64, title, description string) (core.Result, error)
	Delete(ctx context.Context, id int64) (core.Result, error)
}

// Session tracks which note, if any, is being authored.
// Exactly one form is open at a time.
type Session struct {
	mu     sync.Mutex
	notes  Notes
	logger *slog.Logger
	state  State
	form   Form
}

// New creates an idle session over notes. A nil logger uses slog.Default().
func New(notes Notes, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{notes: notes, logger: logger}
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Form returns the form data for the current state: blank while creating, the
// note's values at the moment the edit was opened while editing.
func (s *Session) Form() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// OpenCreate opens a blank form. Only valid from Idle.
func (s *Session) OpenCreate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Kind != Idle {
		return fmt.Errorf("%w: cannot open create while %s", ErrInvalidState, s.state)
	}
	s.transition(State{Kind: Creating}, Form{})
	return nil
}

// OpenEdit opens the form prefilled from note id.
//
// Opening the note that is already being edited closes the form instead.
// Switching from one edited note to another is allowed; opening an edit while
// creating is not.
func (s *Session) OpenEdit(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.state.Kind == Editing && s.state.NoteID == id:
		s.transition(State{Kind: Idle}, Form{})
		return nil
	case s.state.Kind == Creating:
		return fmt.Errorf("%w: cannot edit note %d while %s", ErrInvalidState, id, s.state)
	}

	note, ok := s.notes.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", core.ErrNotFound, id)
	}
	s.transition(State{Kind: Editing, NoteID: id}, Form{Title: note.Title, Description: note.Description})
	return nil
}

// Submit dispatches the form to the store: Create while creating, Update
// while editing. On success the session returns to Idle.
//
// A validation error keeps the form open. An update whose target disappeared
// is treated as done and also closes the form, returning core.ErrNotFound.
func (s *Session) Submit(ctx context.Context, form Form) (core.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		res core.Result
		err error
	)
	switch s.state.Kind {
	case Creating:
		res, err = s.notes.Create(ctx, form.Title, form.Description)
	case Editing:
		res, err = s.notes.Update(ctx, s.state.NoteID, form.Title, form.Description)
	default:
		return core.Result{}, fmt.Errorf("%w: nothing to submit while %s", ErrInvalidState, s.state)
	}

	if err != nil && !errors.Is(err, core.ErrNotFound) {
		return core.Result{}, err
	}
	if err != nil {
		s.logger.Debug("edited note vanished before submit", "id", s.state.NoteID)
	}
	s.transition(State{Kind: Idle}, Form{})
	return res, err
}

// Cancel closes the form without persisting anything. Saves already in
// flight are not affected.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Kind != Idle {
		s.transition(State{Kind: Idle}, Form{})
	}
}

// Delete removes a note through the store and closes the form if it was
// editing that note.
func (s *Session) Delete(ctx context.Context, id int64) (core.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.notes.Delete(ctx, id)
	if s.state.Kind == Editing && s.state.NoteID == id {
		s.transition(State{Kind: Idle}, Form{})
	}
	return res, err
}

func (s *Session) transition(next State, form Form) {
	s.logger.Debug("edit session transition", "from", s.state.String(), "to", next.String())
	s.state = next
	s.form = form
}
