package cli

import (
	"fmt"
	"io"

	"github.com/custodia-labs/ordersnap/internal/core/domain"
)

// progressPrinter renders import progress. On a terminal the current line
// is redrawn in place; otherwise only stage changes are printed.
type progressPrinter struct {
	w       io.Writer
	inPlace bool
	style   styles
	stage   domain.ProgressStage
	dirty   bool
}

func newProgressPrinter(w io.Writer) *progressPrinter {
	tty := isTerminal(w)
	return &progressPrinter{w: w, inPlace: tty, style: newStyles(tty)}
}

// Handle is a domain.ProgressFunc.
func (p *progressPrinter) Handle(e domain.ProgressEvent) {
	line := formatProgress(e)

	if p.inPlace {
		fmt.Fprintf(p.w, "\r\033[K%s", p.style.Muted.Render(line))
		p.dirty = true
		if e.Stage == domain.StageComplete {
			p.Done()
		}
		return
	}

	if e.Stage != p.stage || e.Stage == domain.StageOrders {
		fmt.Fprintln(p.w, line)
	}
	p.stage = e.Stage
}

// Done ends an in-place line.
func (p *progressPrinter) Done() {
	if p.dirty {
		fmt.Fprintln(p.w)
		p.dirty = false
	}
}

func formatProgress(e domain.ProgressEvent) string {
	switch {
	case e.TotalItems > 0 && e.ProcessedItems > 0:
		line := fmt.Sprintf("[%s] %s (%d/%d)", e.Stage, e.Message, e.ProcessedItems, e.TotalItems)
		if e.CurrentItem != "" {
			line += ": " + truncateText(e.CurrentItem, 50)
		}
		return line
	case e.CurrentItem != "":
		return fmt.Sprintf("[%s] %s: %s", e.Stage, e.Message, truncateText(e.CurrentItem, 50))
	default:
		return fmt.Sprintf("[%s] %s", e.Stage, e.Message)
	}
}

// truncateText shortens s to max runes, marking the cut with "...".
func truncateText(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
