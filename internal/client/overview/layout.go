package overviewclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/barbatoslupus21/unisync-overview/internal/dto"
	"github.com/barbatoslupus21/unisync-overview/internal/errs"
	"github.com/barbatoslupus21/unisync-overview/internal/grid"
)

type layoutBody struct {
	LayoutData *grid.Layout `json:"layout_data"`
}

// FetchLayout returns the stored layout. A response without layout_data is
// treated as malformed.
func (c *Client) FetchLayout(ctx context.Context) (grid.Layout, error) {
	var body layoutBody
	if err := c.call(ctx, http.MethodGet, "/layout/", nil, &body); err != nil {
		return nil, err
	}
	if body.LayoutData == nil {
		return nil, errs.NewExternalServiceError(serviceName, false, fmt.Errorf("layout response has no layout_data"))
	}
	return *body.LayoutData, nil
}

// SaveLayout replaces the remote layout with the whole of layout.
func (c *Client) SaveLayout(ctx context.Context, layout grid.Layout) error {
	if layout == nil {
		layout = grid.Layout{}
	}
	var status dto.StatusResponse
	if err := c.call(ctx, http.MethodPost, "/layout/save/", layout, &status); err != nil {
		return err
	}
	if status.Status != dto.StatusSuccess {
		return errs.NewExternalServiceError(serviceName, false, fmt.Errorf("unexpected save status %q", status.Status))
	}
	return nil
}

func (c *Client) ResetLayout(ctx context.Context) error {
	return c.call(ctx, http.MethodDelete, "/layout/", nil, nil)
}
