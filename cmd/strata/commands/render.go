package commands

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/strata/internal/ui/output"
	"go.trai.ch/strata/internal/ui/style"
)

// printer writes styled lines to a command's output stream.
type printer struct {
	w io.Writer
	r *lipgloss.Renderer
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(output.ColorProfile())
	return &printer{w: w, r: r}
}

func (p *printer) render(s lipgloss.Style, text string) string {
	return s.Renderer(p.r).Render(text)
}

func (p *printer) heading(text string) string {
	return p.render(style.Heading, text)
}

func (p *printer) muted(text string) string {
	return p.render(style.Muted, text)
}

func (p *printer) good(text string) string {
	return p.render(style.Good, text)
}

func (p *printer) bad(text string) string {
	return p.render(style.Bad, text)
}

func (p *printer) line(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}
