package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/middleware"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
	"github.com/barbatoslupus21/unisync-overview/internal/response"
)

// maxLayoutBody bounds the save request body.
const maxLayoutBody = 1 << 20

type layoutHandlers struct {
	ResponseHandler response.ResponseHandler
	LayoutSvc       LayoutService
}

func NewLayoutHandlers(deps *Deps) *layoutHandlers {
	return &layoutHandlers{
		ResponseHandler: deps.ResponseHandler,
		LayoutSvc:       deps.LayoutSvc,
	}
}

func (h *layoutHandlers) LayoutRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetLayout)
	r.Delete("/", h.ResetLayout)
	r.Post("/save/", h.SaveLayout)
	return r
}

// GetLayout answers with the bare {"layout_data": [...]} body browser
// clients parse.
func (h *layoutHandlers) GetLayout(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	widgets, err := h.LayoutSvc.GetLayout(r.Context(), uid)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.LayoutResponse{LayoutData: widgets})
}

// SaveLayout replaces the stored layout with the posted widget array.
func (h *layoutHandlers) SaveLayout(w http.ResponseWriter, r *http.Request) {
	var widgets []models.Widget
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxLayoutBody)).Decode(&widgets); err != nil {
		h.ResponseHandler.WriteError(w, r, http.StatusBadRequest, "invalid_input", "Invalid layout data")
		return
	}
	if widgets == nil {
		widgets = []models.Widget{}
	}
	uid := middleware.UID(r.Context())
	if err := h.LayoutSvc.SaveLayout(r.Context(), uid, widgets); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.StatusResponse{Status: dto.StatusSuccess})
}

func (h *layoutHandlers) ResetLayout(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	if err := h.LayoutSvc.ResetLayout(r.Context(), uid); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.StatusResponse{Status: dto.StatusSuccess})
}
