package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
)

// --- Stub service ---

type stubLayoutService struct {
	widgets  []models.Widget
	getErr   error
	saveErr  error
	resetErr error

	lastUID   string
	lastSaved []models.Widget
	resets    int
}

func (s *stubLayoutService) GetLayout(_ context.Context, uid string) ([]models.Widget, error) {
	s.lastUID = uid
	return s.widgets, s.getErr
}

func (s *stubLayoutService) SaveLayout(_ context.Context, uid string, widgets []models.Widget) error {
	s.lastUID = uid
	s.lastSaved = widgets
	return s.saveErr
}

func (s *stubLayoutService) ResetLayout(_ context.Context, uid string) error {
	s.lastUID = uid
	s.resets++
	return s.resetErr
}

// --- Tests ---

func TestGetLayout_BareBody(t *testing.T) {
	svc := &stubLayoutService{widgets: []models.Widget{{ID: "widget-1", Type: "calendar", W: 1, H: 1}}}
	resp := &stubResponseHandler{}
	h := NewLayoutHandlers(&Deps{ResponseHandler: resp, LayoutSvc: svc})

	req := withUID(httptest.NewRequest(http.MethodGet, "/overview/api/layout/", nil), "uid1")
	rr := httptest.NewRecorder()
	h.GetLayout(rr, req)

	if !resp.writeJSONCalled || resp.writeJSONStatus != http.StatusOK {
		t.Fatalf("expected WriteJSON with 200, got called=%v status=%d", resp.writeJSONCalled, resp.writeJSONStatus)
	}
	body, ok := resp.writeJSONBody.(dto.LayoutResponse)
	if !ok || len(body.LayoutData) != 1 {
		t.Fatalf("unexpected body %#v", resp.writeJSONBody)
	}
	if !strings.Contains(rr.Body.String(), `"layout_data":[{"id":"widget-1"`) {
		t.Fatalf("unexpected wire body %s", rr.Body.String())
	}
	if svc.lastUID != "uid1" {
		t.Fatalf("expected uid1, got %s", svc.lastUID)
	}
}

func TestGetLayout_Error(t *testing.T) {
	svc := &stubLayoutService{getErr: errs.NewDatabaseError("read", "failed to get layout", errors.New("x"))}
	resp := &stubResponseHandler{}
	h := NewLayoutHandlers(&Deps{ResponseHandler: resp, LayoutSvc: svc})

	rr := httptest.NewRecorder()
	h.GetLayout(rr, withUID(httptest.NewRequest(http.MethodGet, "/", nil), "uid1"))

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError")
	}
}

func TestSaveLayout_OK(t *testing.T) {
	svc := &stubLayoutService{}
	resp := &stubResponseHandler{}
	h := NewLayoutHandlers(&Deps{ResponseHandler: resp, LayoutSvc: svc})

	body := `[{"id":"widget-1","type":"quicknotes","x":0,"y":0,"w":1,"h":1},{"id":"widget-2","type":"dcf-approver-chart","x":2,"y":1,"w":2,"h":1}]`
	req := withUID(httptest.NewRequest(http.MethodPost, "/overview/api/layout/save/", strings.NewReader(body)), "uid1")
	rr := httptest.NewRecorder()
	h.SaveLayout(rr, req)

	if len(svc.lastSaved) != 2 || svc.lastSaved[1].X != 2 || svc.lastSaved[1].W != 2 {
		t.Fatalf("service received wrong layout: %+v", svc.lastSaved)
	}
	if strings.TrimSpace(rr.Body.String()) != `{"status":"success"}` {
		t.Fatalf("unexpected body %s", rr.Body.String())
	}
}

func TestSaveLayout_InvalidJSON(t *testing.T) {
	svc := &stubLayoutService{}
	resp := &stubResponseHandler{}
	h := NewLayoutHandlers(&Deps{ResponseHandler: resp, LayoutSvc: svc})

	req := withUID(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"layout":`)), "uid1")
	rr := httptest.NewRecorder()
	h.SaveLayout(rr, req)

	if !resp.errorWriteCalled || resp.errorWriteStatus != http.StatusBadRequest {
		t.Fatalf("expected 400 error write, got called=%v status=%d", resp.errorWriteCalled, resp.errorWriteStatus)
	}
	if svc.lastSaved != nil {
		t.Fatal("service should not be called")
	}
}

func TestSaveLayout_ValidationError(t *testing.T) {
	svc := &stubLayoutService{saveErr: errs.NewValidationError("duplicate widget id w1")}
	resp := &stubResponseHandler{}
	h := NewLayoutHandlers(&Deps{ResponseHandler: resp, LayoutSvc: svc})

	req := withUID(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`[]`)), "uid1")
	h.SaveLayout(httptest.NewRecorder(), req)

	var ve *errs.ValidationError
	if !resp.handleErrorCalled || !errors.As(resp.handleError, &ve) {
		t.Fatalf("expected validation error passed to HandleError, got %v", resp.handleError)
	}
	if svc.lastSaved == nil {
		t.Fatal("empty array should reach the service as an empty layout")
	}
}

func TestResetLayout(t *testing.T) {
	svc := &stubLayoutService{}
	resp := &stubResponseHandler{}
	h := NewLayoutHandlers(&Deps{ResponseHandler: resp, LayoutSvc: svc})

	rr := httptest.NewRecorder()
	h.ResetLayout(rr, withUID(httptest.NewRequest(http.MethodDelete, "/", nil), "uid1"))

	if svc.resets != 1 || !resp.writeJSONCalled {
		t.Fatalf("expected reset + WriteJSON, got resets=%d", svc.resets)
	}
}
