package overviewclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/grid"
	"github.com/barbatoslupus21/unisync-overview/internal/handlers"
	"github.com/barbatoslupus21/unisync-overview/internal/middleware"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/internal/response"
	"github.com/barbatoslupus21/unisync-overview/internal/router"
	"github.com/barbatoslupus21/unisync-overview/pkg/logger"
)

type memLayouts struct {
	mu      sync.Mutex
	widgets []models.Widget
	saves   int
}

func (m *memLayouts) GetLayout(context.Context, string) ([]models.Widget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.widgets == nil {
		return []models.Widget{}, nil
	}
	return m.widgets, nil
}

func (m *memLayouts) SaveLayout(_ context.Context, _ string, w []models.Widget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widgets = w
	m.saves++
	return nil
}

func (m *memLayouts) ResetLayout(context.Context, string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widgets = nil
	return nil
}

type stubUsers struct{}

func (stubUsers) Roles(context.Context, string, string, []string) ([]string, error) {
	return []string{grid.RoleDCFApprover}, nil
}

type stubNotes struct{}

func (stubNotes) ListNotes(_ context.Context, _, widgetID string) ([]*models.QuickNote, error) {
	return []*models.QuickNote{{NoteID: "n1", WidgetID: widgetID, Content: "call vendor"}}, nil
}

func (stubNotes) CreateNote(context.Context, string, string, dto.CreateNoteRequest) (*models.QuickNote, error) {
	return nil, errors.New("not used")
}

func (stubNotes) DeleteNote(context.Context, string, string) error { return nil }

type stubEvents struct{}

func (stubEvents) ListEvents(_ context.Context, _, widgetID string) ([]*models.CalendarEvent, error) {
	start := time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC)
	return []*models.CalendarEvent{{EventID: "e1", WidgetID: widgetID, Title: "Audit", Start: start}}, nil
}

func (stubEvents) CreateEvent(context.Context, string, string, dto.CreateEventRequest) (*models.CalendarEvent, error) {
	return nil, errors.New("not used")
}

func (stubEvents) UpdateEvent(context.Context, string, string, dto.UpdateEventRequest) (*models.CalendarEvent, error) {
	return nil, errors.New("not used")
}

func (stubEvents) DeleteEvent(context.Context, string, string) error { return nil }

func bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-1" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), middleware.UIDKey, "uid-1")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func newAPI(t *testing.T) (*httptest.Server, *memLayouts) {
	t.Helper()
	log := logger.New("error", logger.NewTestHandler)
	layouts := &memLayouts{}
	deps := &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		LayoutSvc:       layouts,
		NoteSvc:         stubNotes{},
		EventSvc:        stubEvents{},
		UserSvc:         stubUsers{},
	}
	srv := httptest.NewServer(router.NewRouter(deps, router.Options{Auth: bearerAuth}))
	t.Cleanup(srv.Close)
	return srv, layouts
}

func newClient(t *testing.T, baseURL, token string) *Client {
	t.Helper()
	c, err := New(Config{BaseURL: baseURL, Token: token})
	require.NoError(t, err)
	return c
}

func TestLayoutRoundTrip(t *testing.T) {
	ctx := context.Background()
	srv, layouts := newAPI(t)
	c := newClient(t, srv.URL, "token-1")

	empty, err := c.FetchLayout(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	layout := grid.Layout{
		{ID: "widget-a", Type: grid.KindCalendar, X: 0, Y: 0, W: 1, H: 1},
		{ID: "widget-b", Type: grid.KindDCFApproverChart, X: 1, Y: 0, W: 2, H: 1},
	}
	require.NoError(t, c.SaveLayout(ctx, layout))
	assert.Equal(t, 1, layouts.saves)

	got, err := c.FetchLayout(ctx)
	require.NoError(t, err)
	assert.Equal(t, layout, got)

	require.NoError(t, c.ResetLayout(ctx))
	got, err = c.FetchLayout(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveWithoutCookieJarPrimesCSRF(t *testing.T) {
	srv, _ := newAPI(t)
	c := newClient(t, srv.URL, "token-1")
	assert.Empty(t, c.csrfToken())
	require.NoError(t, c.SaveLayout(context.Background(), grid.Layout{}))
	assert.NotEmpty(t, c.csrfToken())
}

func TestUnauthorizedIsExternalServiceError(t *testing.T) {
	srv, _ := newAPI(t)
	c := newClient(t, srv.URL, "wrong")

	_, err := c.FetchLayout(context.Background())
	var ext *errs.ExternalServiceError
	require.ErrorAs(t, err, &ext)
	assert.False(t, ext.Transient)
	var status *StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, http.StatusUnauthorized, status.Code)
}

func TestMalformedLayoutResponse(t *testing.T) {
	for name, body := range map[string]string{
		"not json":       "<html>login</html>",
		"no layout_data": `{"widgets":[]}`,
		"null layout":    `{"layout_data":null}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()
			c := newClient(t, srv.URL, "")
			_, err := c.FetchLayout(context.Background())
			require.Error(t, err)
		})
	}
}

func TestServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"code":"external_error","message":"upstream down"}`))
	}))
	defer srv.Close()
	c := newClient(t, srv.URL, "")

	_, err := c.FetchLayout(context.Background())
	var ext *errs.ExternalServiceError
	require.ErrorAs(t, err, &ext)
	assert.True(t, ext.Transient)
	assert.Contains(t, err.Error(), "upstream down")
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)
	_, err = c.FetchLayout(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEnvelopedEndpoints(t *testing.T) {
	ctx := context.Background()
	srv, _ := newAPI(t)
	c := newClient(t, srv.URL, "token-1")

	roles, err := c.Roles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{grid.RoleDCFApprover}, roles)

	types, err := c.WidgetTypes(ctx)
	require.NoError(t, err)
	var tags []string
	for _, k := range types {
		tags = append(tags, k.Type)
	}
	assert.Contains(t, tags, grid.KindDCFApproverChart)
	assert.NotContains(t, tags, grid.KindDCFRequestorChart)

	notes, err := c.Notes(ctx, "widget-n")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "widget-n", notes[0].WidgetID)

	events, err := c.Events(ctx, "widget-c")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Audit", events[0].Title)
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New(Config{BaseURL: "localhost:8080"})
	require.Error(t, err)
}
