// Package store holds the in-memory collection of subjects and tasks along
// with the selection and editing state the UI works against.
//
// Every operation derives a complete new Snapshot from the current one and
// swaps it in. Requests that reference missing subjects or tasks leave the
// state unchanged; there is no error channel. A Store has a single writer:
// callers must not invoke mutations from more than one goroutine. Snapshots
// are immutable and may be shared freely.
package store

import (
	"log/slog"
	"time"

	"github.com/tgienger/kadai/internal/ids"
	"github.com/tgienger/kadai/internal/models"
)

// Store owns the current snapshot
type Store struct {
	snap Snapshot
	ids  ids.Generator
	now  func() time.Time
	log  *slog.Logger
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator sets the identifier source
func WithIDGenerator(g ids.Generator) Option {
	return func(s *Store) { s.ids = g }
}

// WithClock sets the time source used for new task deadlines
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger mutations are reported to
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithSubjects sets the initial collection and selects its first subject
func WithSubjects(subjects []models.Subject) Option {
	return func(s *Store) {
		snap := Snapshot{subjects: make([]models.Subject, len(subjects))}
		for i, subj := range subjects {
			snap.subjects[i] = subj.Clone()
		}
		if len(subjects) > 0 {
			snap.selectedID = subjects[0].ID
		}
		s.snap = snap
	}
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		ids: ids.UUID{},
		now: time.Now,
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seeded creates a store holding the demonstration dataset
func Seeded(opts ...Option) *Store {
	return New(append([]Option{WithSubjects(SeedSubjects())}, opts...)...)
}

// Snapshot returns the current state
func (s *Store) Snapshot() Snapshot {
	return s.snap
}

// Subjects returns every subject in insertion order
func (s *Store) Subjects() []models.Subject {
	return s.snap.Subjects()
}

// Subject looks up a subject by ID
func (s *Store) Subject(id string) (models.Subject, bool) {
	return s.snap.Subject(id)
}

// SelectedSubject returns the selected subject, if any
func (s *Store) SelectedSubject() (models.Subject, bool) {
	return s.snap.SelectedSubject()
}

// ListTasks returns the selected subject's tasks sorted by deadline
func (s *Store) ListTasks() []models.Task {
	return s.snap.ListTasks()
}

// Editing returns the editing slot
func (s *Store) Editing() EditSlot {
	return s.snap.Editing()
}

type mutation func(Snapshot) (Snapshot, bool)

// apply runs m against the current snapshot and installs the result if m changed anything
func (s *Store) apply(op string, m mutation, attrs ...any) {
	next, changed := m(s.snap)
	if !changed {
		s.log.Debug("ignored "+op, attrs...)
		return
	}
	s.snap = next
	s.log.Debug(op, attrs...)
}

// freshID draws identifiers until one is not taken
func (s *Store) freshID(prefix string, taken func(string) bool) string {
	for {
		id := s.ids.NewID(prefix)
		if !taken(id) {
			return id
		}
	}
}
