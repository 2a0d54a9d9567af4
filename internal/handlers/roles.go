package handlers

import (
	"net/http"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/grid"
	"github.com/barbatoslupus21/unisync-overview/internal/middleware"
	"github.com/barbatoslupus21/unisync-overview/internal/response"
)

type roleHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewRoleHandlers(deps *Deps) *roleHandlers {
	return &roleHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

// GetRoles returns the caller's roles that gate widget offers.
func (h *roleHandlers) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.RolesResponse{Roles: roles.List()})
}

// GetWidgetTypes returns the widget catalog filtered to what the caller may add.
func (h *roleHandlers) GetWidgetTypes(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	kinds := grid.OfferedKinds(roles)
	out := make([]dto.WidgetTypeEntry, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, dto.WidgetTypeEntry{
			Type:       k.Tag,
			Title:      k.Title,
			Icon:       k.Icon,
			W:          k.W,
			H:          k.H,
			DataSource: k.DataSource,
		})
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.WidgetTypesResponse{WidgetTypes: out})
}

func (h *roleHandlers) roles(r *http.Request) (grid.RoleSet, error) {
	ctx := r.Context()
	asserted, err := h.UserSvc.Roles(ctx, middleware.UID(ctx), middleware.Email(ctx), middleware.Roles(ctx))
	if err != nil {
		return nil, err
	}
	return grid.ResolveRoles(grid.Kinds(), asserted), nil
}
