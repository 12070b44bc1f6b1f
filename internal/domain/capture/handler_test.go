package capture

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odonto/odonto/internal/domain/catalog"
	"github.com/odonto/odonto/internal/domain/odontogram"
	"github.com/odonto/odonto/internal/platform/notification"
)

// gatedSaver blocks inside SaveCondition until released, so tests can hold a
// save in flight while other requests race against the session.
type gatedSaver struct {
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls int
}

func newGatedSaver() *gatedSaver {
	return &gatedSaver{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (s *gatedSaver) SaveCondition(_ context.Context, _ *odontogram.ToothCondition) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	s.started <- struct{}{}
	<-s.release
	return nil
}

func (s *gatedSaver) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func submitContext(e *echo.Echo, id uuid.UUID) echo.Context {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	return c
}

func trackedWorkflow(m *Manager) *Workflow {
	w := Open(uuid.New(), 24, []catalog.Surface{catalog.SurfaceOcclusal})
	w.ConditionType = string(catalog.ConditionCaries)
	m.Track(w)
	return w
}

func TestSubmit_ConcurrentSubmitsPersistOnce(t *testing.T) {
	e := echo.New()
	m := NewManager()
	saver := newGatedSaver()
	h := NewHandler(m, saver, nil, &notification.Recorder{})
	w := trackedWorkflow(m)

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- h.Submit(submitContext(e, w.ID))
	}()
	<-saver.started

	// The session is mid-save; a second submit must be turned away without
	// reaching the saver.
	err := h.Submit(submitContext(e, w.ID))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusConflict {
		t.Fatalf("second submit = %v, want 409 conflict", err)
	}

	close(saver.release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if saver.callCount() != 1 {
		t.Errorf("saver called %d times, want exactly 1", saver.callCount())
	}
	if _, err := m.Get(w.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Error("session must be released after a successful submit")
	}
}

func TestCancelSession_RejectedWhileSaveInFlight(t *testing.T) {
	e := echo.New()
	m := NewManager()
	saver := newGatedSaver()
	h := NewHandler(m, saver, nil, &notification.Recorder{})
	w := trackedWorkflow(m)

	submitDone := make(chan error, 1)
	go func() {
		submitDone <- h.Submit(submitContext(e, w.ID))
	}()
	<-saver.started

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues(w.ID.String())

	err := h.CancelSession(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusConflict {
		t.Fatalf("cancel during save = %v, want 409 conflict", err)
	}

	close(saver.release)
	if err := <-submitDone; err != nil {
		t.Fatalf("submit failed: %v", err)
	}
}

func TestSubmit_UnknownSessionIs404(t *testing.T) {
	e := echo.New()
	h := NewHandler(NewManager(), newGatedSaver(), nil, &notification.Recorder{})

	err := h.Submit(submitContext(e, uuid.New()))
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusNotFound {
		t.Errorf("submit = %v, want 404", err)
	}
}
