package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/barbatoslupus21/unisync-overview/internal/handlers"
	"github.com/barbatoslupus21/unisync-overview/internal/middleware"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/internal/response"
	"github.com/barbatoslupus21/unisync-overview/pkg/logger"
)

type memLayouts struct {
	widgets map[string][]models.Widget
}

func (m *memLayouts) GetLayout(_ context.Context, uid string) ([]models.Widget, error) {
	if w, ok := m.widgets[uid]; ok {
		return w, nil
	}
	return []models.Widget{}, nil
}

func (m *memLayouts) SaveLayout(_ context.Context, uid string, widgets []models.Widget) error {
	m.widgets[uid] = widgets
	return nil
}

func (m *memLayouts) ResetLayout(_ context.Context, uid string) error {
	delete(m.widgets, uid)
	return nil
}

func fakeAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), middleware.UIDKey, "uid-1")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newTestRouter() (http.Handler, *memLayouts) {
	log := logger.New("error", logger.NewTestHandler)
	layouts := &memLayouts{widgets: map[string][]models.Widget{}}
	deps := &handlers.Deps{Log: log, ResponseHandler: response.New(log), LayoutSvc: layouts}
	return NewRouter(deps, Options{Auth: fakeAuth}), layouts
}

func TestLayoutFlowThroughRouter(t *testing.T) {
	r, layouts := newTestRouter()

	// prime the csrf cookie
	get := httptest.NewRequest(http.MethodGet, "/overview/api/layout/", nil)
	get.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, get)
	if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != `{"layout_data":[]}` {
		t.Fatalf("unexpected GET %d %s", rr.Code, rr.Body.String())
	}
	var csrf string
	for _, c := range rr.Result().Cookies() {
		if c.Name == middleware.CSRFCookie {
			csrf = c.Value
		}
	}
	if csrf == "" {
		t.Fatal("csrf cookie not issued")
	}

	body := `[{"id":"widget-1","type":"calendar","x":0,"y":0,"w":1,"h":1}]`
	post := httptest.NewRequest(http.MethodPost, "/overview/api/layout/save/", strings.NewReader(body))
	post.Header.Set("Authorization", "Bearer good")
	post.Header.Set(middleware.CSRFHeader, csrf)
	post.AddCookie(&http.Cookie{Name: middleware.CSRFCookie, Value: csrf})
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, post)
	if rr.Code != http.StatusOK {
		t.Fatalf("save failed %d %s", rr.Code, rr.Body.String())
	}
	if len(layouts.widgets["uid-1"]) != 1 {
		t.Fatalf("layout not stored: %+v", layouts.widgets)
	}
}

func TestSaveWithoutCSRFIsForbidden(t *testing.T) {
	r, layouts := newTestRouter()
	post := httptest.NewRequest(http.MethodPost, "/overview/api/layout/save/", strings.NewReader(`[]`))
	post.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, post)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rr.Code)
	}
	if len(layouts.widgets) != 0 {
		t.Fatal("layout should not be stored")
	}
}

func TestUnauthenticated(t *testing.T) {
	r, _ := newTestRouter()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/overview/api/layout/", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newTestRouter()
	for _, path := range []string{"/healthz", "/metrics"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
	}
}
