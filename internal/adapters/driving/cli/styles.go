package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

// Colour palette shared by all command output.
var (
	colourAccent  = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourError   = lipgloss.Color("#F38BA8")
	colourInfo    = lipgloss.Color("#06B6D4")
)

// styles holds the lipgloss styles for one output stream. Plain styles
// render text unchanged.
type styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

func newStyles(colour bool) styles {
	if !colour {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colourAccent),
		Label:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(colourMuted),
		Success: lipgloss.NewStyle().Foreground(colourSuccess),
		Warning: lipgloss.NewStyle().Foreground(colourWarning),
		Error:   lipgloss.NewStyle().Foreground(colourError),
		Info:    lipgloss.NewStyle().Foreground(colourInfo),
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// stylesFor returns coloured styles when w is a terminal.
func stylesFor(w io.Writer) styles {
	return newStyles(isTerminal(w))
}

// status renders an order status in its colour.
func (s styles) status(status domain.OrderStatus) string {
	switch status {
	case domain.StatusDelivered:
		return s.Success.Render(status.String())
	case domain.StatusCancelled:
		return s.Error.Render(status.String())
	case domain.StatusPending:
		return s.Warning.Render(status.String())
	case domain.StatusShipped:
		return s.Info.Render(status.String())
	default:
		return status.String()
	}
}
