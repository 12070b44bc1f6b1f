package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func paramsFor(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return FromContext(c)
}

func TestFromContextDefaults(t *testing.T) {
	p := paramsFor(t, "")
	if p.Limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Offset != 0 {
		t.Errorf("offset = %d, want 0", p.Offset)
	}
}

func TestFromContextExplicit(t *testing.T) {
	p := paramsFor(t, "limit=5&offset=30")
	if p.Limit != 5 || p.Offset != 30 {
		t.Errorf("got %+v, want limit=5 offset=30", p)
	}
}

func TestFromContextClampsLimit(t *testing.T) {
	p := paramsFor(t, "limit=5000")
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", p.Limit, MaxLimit)
	}
}

func TestFromContextNegativeValues(t *testing.T) {
	p := paramsFor(t, "limit=-1&offset=-9")
	if p.Limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", p.Limit, DefaultLimit)
	}
	if p.Offset != 0 {
		t.Errorf("offset = %d, want 0", p.Offset)
	}
}

func TestNewResponseHasMore(t *testing.T) {
	resp := NewResponse(nil, 50, 20, 0)
	if !resp.HasMore {
		t.Error("expected HasMore=true for first page of 50")
	}
	resp = NewResponse(nil, 50, 20, 40)
	if resp.HasMore {
		t.Error("expected HasMore=false for last page")
	}
}

func TestNextOffset(t *testing.T) {
	p := Params{Limit: 20, Offset: 40}
	if got := p.NextOffset(); got != 60 {
		t.Errorf("NextOffset = %d, want 60", got)
	}
	if !p.HasNext(100) {
		t.Error("expected HasNext for total=100")
	}
	if p.HasNext(60) {
		t.Error("did not expect HasNext for total=60")
	}
}
