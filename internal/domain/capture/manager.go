package capture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when no tracked workflow matches the id.
var ErrSessionNotFound = errors.New("capture session not found")

// Manager holds the open capture sessions. One chart session typically has at
// most one open workflow, but sessions are keyed by id so a stale client
// cannot resume someone else's modal.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Workflow
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Workflow)}
}

// Track registers an opened workflow.
func (m *Manager) Track(w *Workflow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[w.ID] = w
}

// Get returns the workflow for id.
func (m *Manager) Get(id uuid.UUID) (*Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return w, nil
}

// Release drops a closed workflow.
func (m *Manager) Release(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Mutate runs fn against the workflow for id under the manager lock, keeping
// concurrent HTTP requests from interleaving edits on the same session.
func (m *Manager) Mutate(id uuid.UUID, fn func(w *Workflow) error) (*Workflow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := fn(w); err != nil {
		return w, err
	}
	return w, nil
}
