package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/middleware"
	"github.com/barbatoslupus21/unisync-overview/internal/response"
)

type calendarHandlers struct {
	ResponseHandler response.ResponseHandler
	EventSvc        EventService
}

func NewCalendarHandlers(deps *Deps) *calendarHandlers {
	return &calendarHandlers{
		ResponseHandler: deps.ResponseHandler,
		EventSvc:        deps.EventSvc,
	}
}

func (h *calendarHandlers) CalendarRoutes() chi.Router {
	r := chi.NewRouter()
	r.Put("/update/{eventId}/", h.UpdateEvent) // must be before /{widgetId}
	r.Delete("/delete/{eventId}/", h.DeleteEvent)
	r.Get("/{widgetId}/", h.ListEvents)
	r.Post("/{widgetId}/create/", h.CreateEvent)
	return r
}

func (h *calendarHandlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	events, err := h.EventSvc.ListEvents(r.Context(), uid, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.EventsResponse{Events: events})
}

func (h *calendarHandlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	event, err := h.EventSvc.CreateEvent(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, event)
}

func (h *calendarHandlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	eventID := chi.URLParam(r, "eventId")
	uid := middleware.UID(r.Context())
	event, err := h.EventSvc.UpdateEvent(r.Context(), uid, eventID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, event)
}

func (h *calendarHandlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	uid := middleware.UID(r.Context())
	if err := h.EventSvc.DeleteEvent(r.Context(), uid, eventID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
