package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/barbatoslupus21/unisync-overview/internal/middleware"
)

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	writeJSONCalled bool
	writeJSONStatus int
	writeJSONBody   any

	handleErrorCalled bool
	handleError       error

	errorWriteCalled bool
	errorWriteStatus int
	errorWriteCode   string
	errorWriteMsg    string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteJSON(w http.ResponseWriter, _ *http.Request, status int, body any) {
	s.writeJSONCalled = true
	s.writeJSONStatus = status
	s.writeJSONBody = body

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, message string) {
	s.errorWriteCalled = true
	s.errorWriteStatus = status
	s.errorWriteCode = code
	s.errorWriteMsg = message
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// withUID injects a UID into the request context.
func withUID(r *http.Request, uid string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UIDKey, uid)
	return r.WithContext(ctx)
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}
