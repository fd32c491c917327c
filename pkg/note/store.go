package note

import (
	"slices"
	"strconv"
	"sync"

	"github.com/matzehuels/notegraph/pkg/errors"
)

// Store is a key-value collection of notes.
type Store interface {
	// Get returns the note with the given id.
	Get(id ID) (Note, error)
	// List returns all notes in insertion order.
	List() ([]Note, error)
	// Put inserts or replaces a note and returns the stored copy. A note
	// without an id is assigned one.
	Put(n Note) (Note, error)
	// Delete removes the note with the given id.
	Delete(id ID) error
}

// MemoryStore is an in-memory [Store]. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	order []ID
	notes map[ID]Note
	next  int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns a store holding notes, in order. Notes without an
// id are assigned one that no other note in notes claims, so a note loaded
// from a file never replaces another note of the same file.
func NewMemoryStore(notes ...Note) (*MemoryStore, error) {
	s := &MemoryStore{notes: make(map[ID]Note)}
	claimed := make(map[ID]bool, len(notes))
	for _, n := range notes {
		if n.ID != "" {
			claimed[n.ID] = true
		}
	}
	for _, n := range notes {
		if n.ID == "" {
			n.ID = s.nextID(claimed)
		}
		if _, err := s.Put(n); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Get returns a copy of the note with the given id, or a NOT_FOUND error.
func (s *MemoryStore) Get(id ID) (Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notes[id]
	if !ok {
		return Note{}, errors.New(errors.ErrCodeNotFound, "note %q not found", id)
	}
	return n.Clone(), nil
}

// List returns copies of all notes in insertion order.
func (s *MemoryStore) List() ([]Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Note, len(s.order))
	for i, id := range s.order {
		out[i] = s.notes[id].Clone()
	}
	return out, nil
}

// Put validates n and stores a copy. A note without an id gets the next free
// sequential id. Replacing an existing note keeps its position in [MemoryStore.List].
func (s *MemoryStore) Put(n Note) (Note, error) {
	if err := errors.ValidateTitle(n.Title); err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = s.nextID(nil)
	} else if err := errors.ValidateNoteID(string(n.ID)); err != nil {
		return Note{}, err
	}

	if _, exists := s.notes[n.ID]; !exists {
		s.order = append(s.order, n.ID)
	}
	s.notes[n.ID] = n.Clone()
	return n.Clone(), nil
}

// Delete removes the note with the given id, or returns a NOT_FOUND error.
func (s *MemoryStore) Delete(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "note %q not found", id)
	}
	delete(s.notes, id)
	s.order = slices.DeleteFunc(s.order, func(o ID) bool { return o == id })
	return nil
}

// Len returns the number of stored notes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Clear removes every note and restarts id assignment at 1.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.notes = make(map[ID]Note)
	s.next = 0
}

// nextID returns the smallest sequential id above the last assigned one
// that is neither stored nor in claimed. Callers hold s.mu or own s.
func (s *MemoryStore) nextID(claimed map[ID]bool) ID {
	for {
		s.next++
		id := ID(strconv.Itoa(s.next))
		if _, taken := s.notes[id]; !taken && !claimed[id] {
			return id
		}
	}
}
