package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/middleware"
	"github.com/barbatoslupus21/unisync-overview/internal/response"
)

type noteHandlers struct {
	ResponseHandler response.ResponseHandler
	NoteSvc         NoteService
}

func NewNoteHandlers(deps *Deps) *noteHandlers {
	return &noteHandlers{
		ResponseHandler: deps.ResponseHandler,
		NoteSvc:         deps.NoteSvc,
	}
}

func (h *noteHandlers) NoteRoutes() chi.Router {
	r := chi.NewRouter()
	r.Delete("/delete/{noteId}/", h.DeleteNote) // must be before /{widgetId}
	r.Get("/{widgetId}/", h.ListNotes)
	r.Post("/{widgetId}/create/", h.CreateNote)
	return r
}

func (h *noteHandlers) ListNotes(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	notes, err := h.NoteSvc.ListNotes(r.Context(), uid, widgetID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.NotesResponse{Notes: notes})
}

func (h *noteHandlers) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	widgetID := chi.URLParam(r, "widgetId")
	uid := middleware.UID(r.Context())
	note, err := h.NoteSvc.CreateNote(r.Context(), uid, widgetID, req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, note)
}

func (h *noteHandlers) DeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "noteId")
	uid := middleware.UID(r.Context())
	if err := h.NoteSvc.DeleteNote(r.Context(), uid, noteID); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
