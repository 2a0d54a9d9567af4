package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/barbatoslupus21/unisync-overview/internal/persist"
)

// Toaster prints persistence notifications as single styled lines.
type Toaster struct {
	out    io.Writer
	mu     sync.Mutex
	styles map[persist.Level]lipgloss.Style
}

func NewToaster(out io.Writer) *Toaster {
	return &Toaster{
		out: out,
		styles: map[persist.Level]lipgloss.Style{
			persist.LevelSuccess: lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"}),
			persist.LevelInfo: lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"}),
			persist.LevelError: lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#D00000", Dark: "#FF5555"}).
				Bold(true),
		},
	}
}

func (t *Toaster) Notify(level persist.Level, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	style, ok := t.styles[level]
	if !ok {
		style = t.styles[persist.LevelInfo]
	}
	fmt.Fprintln(t.out, style.Render(toastIcon(level)+" "+message))
}

func toastIcon(level persist.Level) string {
	switch level {
	case persist.LevelSuccess:
		return "✓"
	case persist.LevelError:
		return "✗"
	default:
		return "i"
	}
}
