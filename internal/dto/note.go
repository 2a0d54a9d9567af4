package dto

import (
	"strings"

	"github.com/barbatoslupus21/unisync-overview/internal/models"
)

type CreateNoteRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

func (r *CreateNoteRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

type NotesResponse struct {
	Notes []*models.QuickNote `json:"notes"`
}
