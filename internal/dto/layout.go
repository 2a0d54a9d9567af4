package dto

import "github.com/barbatoslupus21/unisync-overview/internal/models"

// LayoutResponse is the bare body of GET /layout/.
type LayoutResponse struct {
	LayoutData []models.Widget `json:"layout_data"`
}

// StatusResponse is the bare body of the layout write endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

const StatusSuccess = "success"

type RolesResponse struct {
	Roles []string `json:"roles"`
}

// WidgetTypeEntry is one item of the widget catalog offered to a user.
type WidgetTypeEntry struct {
	Type       string `json:"type"`
	Title      string `json:"title"`
	Icon       string `json:"icon"`
	W          int    `json:"w"`
	H          int    `json:"h"`
	DataSource string `json:"dataSource,omitempty"`
}

type WidgetTypesResponse struct {
	WidgetTypes []WidgetTypeEntry `json:"widgetTypes"`
}
