package grid

import "errors"

var (
	ErrWidgetNotFound    = errors.New("grid: widget not found")
	ErrUnknownWidgetType = errors.New("grid: unknown widget type")
	ErrNotEditing        = errors.New("grid: dashboard is not in edit mode")
	ErrInteractionActive = errors.New("grid: another widget is being moved or resized")
	ErrNoInteraction     = errors.New("grid: no widget is being moved or resized")
	ErrWrongInteraction  = errors.New("grid: operation does not match the active interaction")
	ErrOutOfBounds       = errors.New("grid: position or size is outside the grid")
)
