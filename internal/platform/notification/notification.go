// Package notification provides the operator toast capability: transient
// info/success/warning/error messages with auto-dismiss semantics, an
// in-memory feed the client polls, and Echo HTTP handlers. The Notifier
// interface is injected into whichever component needs to signal the
// operator; nothing here is a process-wide singleton.
package notification

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Level classifies a toast.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// AutoDismiss is how long a toast stays visible before it expires on its own.
const AutoDismiss = 4000 * time.Millisecond

// Position is where toasts are displayed.
const Position = "top-right"

// Toast is a single transient operator message.
type Toast struct {
	ID          string    `json:"id"`
	Level       Level     `json:"level"`
	Message     string    `json:"message"`
	Position    string    `json:"position"`
	Dismissible bool      `json:"dismissible"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	Dismissed   bool      `json:"dismissed"`
}

// Notifier is the capability handed to components that signal the operator.
// Calls are fire-and-forget.
type Notifier interface {
	Info(message string)
	Success(message string)
	Warning(message string)
	Error(message string)
}

// maxFeed bounds the retained toast history.
const maxFeed = 100

// Manager implements Notifier and keeps the recent toast feed for the client
// to poll.
type Manager struct {
	log    zerolog.Logger
	now    func() time.Time
	mu     sync.Mutex
	toasts []*Toast
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log, now: time.Now}
}

// SetClock replaces the manager clock, for tests.
func (m *Manager) SetClock(now func() time.Time) { m.now = now }

func (m *Manager) Info(message string)    { m.push(LevelInfo, message) }
func (m *Manager) Success(message string) { m.push(LevelSuccess, message) }
func (m *Manager) Warning(message string) { m.push(LevelWarning, message) }
func (m *Manager) Error(message string)   { m.push(LevelError, message) }

func (m *Manager) push(level Level, message string) {
	now := m.now()
	t := &Toast{
		ID:          uuid.New().String(),
		Level:       level,
		Message:     message,
		Position:    Position,
		Dismissible: true,
		CreatedAt:   now,
		ExpiresAt:   now.Add(AutoDismiss),
	}

	m.mu.Lock()
	m.toasts = append(m.toasts, t)
	if len(m.toasts) > maxFeed {
		m.toasts = m.toasts[len(m.toasts)-maxFeed:]
	}
	m.mu.Unlock()

	evt := m.log.Info()
	if level == LevelError {
		evt = m.log.Error()
	}
	evt.Str("toast_id", t.ID).Str("level", string(level)).Msg(message)
}

// Active returns toasts that are neither dismissed nor past their expiry.
// Copies are returned so callers can read or marshal them without holding
// the manager lock while Dismiss mutates the originals.
func (m *Manager) Active() []Toast {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Toast
	for _, t := range m.toasts {
		if !t.Dismissed && now.Before(t.ExpiresAt) {
			out = append(out, *t)
		}
	}
	return out
}

// Dismiss marks a toast dismissed (click or drag on the client).
func (m *Manager) Dismiss(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.toasts {
		if t.ID == id {
			t.Dismissed = true
			return nil
		}
	}
	return fmt.Errorf("toast %q not found", id)
}

// Recorder is a Notifier test double that records messages per level.
type Recorder struct {
	mu       sync.Mutex
	Infos    []string
	Successs []string
	Warnings []string
	Errors   []string
}

func (r *Recorder) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Infos = append(r.Infos, message)
}

func (r *Recorder) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successs = append(r.Successs, message)
}

func (r *Recorder) Warning(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Warnings = append(r.Warnings, message)
}

func (r *Recorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, message)
}
