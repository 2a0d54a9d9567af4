package overviewclient

import (
	"context"
	"net/url"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/models"
)

func (c *Client) Roles(ctx context.Context) ([]string, error) {
	var out dto.RolesResponse
	if err := c.enveloped(ctx, "/roles/", &out); err != nil {
		return nil, err
	}
	return out.Roles, nil
}

func (c *Client) WidgetTypes(ctx context.Context) ([]dto.WidgetTypeEntry, error) {
	var out dto.WidgetTypesResponse
	if err := c.enveloped(ctx, "/widget-types/", &out); err != nil {
		return nil, err
	}
	return out.WidgetTypes, nil
}

// Notes lists the notes of one Quick Notes widget, newest first.
func (c *Client) Notes(ctx context.Context, widgetID string) ([]*models.QuickNote, error) {
	var out dto.NotesResponse
	if err := c.enveloped(ctx, "/notes/"+url.PathEscape(widgetID)+"/", &out); err != nil {
		return nil, err
	}
	return out.Notes, nil
}

// Events lists the events of one Calendar widget ordered by start.
func (c *Client) Events(ctx context.Context, widgetID string) ([]*models.CalendarEvent, error) {
	var out dto.EventsResponse
	if err := c.enveloped(ctx, "/calendar/"+url.PathEscape(widgetID)+"/", &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}
