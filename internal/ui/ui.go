// Package ui renders evaluation results for the terminal.
package ui

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
var (
	colorPrimary = lipgloss.Color("#00BFFF") // Cyan: headings
	colorSuccess = lipgloss.Color("#00E676") // Green: acyclic / ok
	colorWarning = lipgloss.Color("#FFD700") // Gold: cycle found
	colorDanger  = lipgloss.Color("#FF5252") // Red: errors
	colorMuted   = lipgloss.Color("#636363") // Gray: file paths
)

// Printer writes styled result lines to an output stream. Color is chosen
// from the capabilities of that stream, so a non-terminal writer receives
// plain text.
type Printer struct {
	w io.Writer

	heading lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	danger  lipgloss.Style
	muted   lipgloss.Style
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		heading: r.NewStyle().Foreground(colorPrimary).Bold(true),
		ok:      r.NewStyle().Foreground(colorSuccess).Bold(true),
		warn:    r.NewStyle().Foreground(colorWarning).Bold(true),
		danger:  r.NewStyle().Foreground(colorDanger).Bold(true),
		muted:   r.NewStyle().Foreground(colorMuted),
	}
}

// Cycle prints the outcome of a cycle check.
func (p *Printer) Cycle(source string, cycle bool) {
	if cycle {
		fmt.Fprintf(p.w, "%s %s\n", p.warn.Render("⟳ graph contains a cycle"), p.muted.Render(source))
		return
	}
	fmt.Fprintf(p.w, "%s %s\n", p.ok.Render("✓ graph is acyclic"), p.muted.Render(source))
}

// Pairs prints the cross-component pair count.
func (p *Printer) Pairs(source string, pairs int64) {
	fmt.Fprintf(p.w, "%s %s %s\n",
		p.heading.Render("pairs in different components:"),
		p.ok.Render(fmt.Sprintf("%d", pairs)),
		p.muted.Render(source))
}

// Components prints the component count followed by sizes, largest first.
func (p *Printer) Components(source string, sizes map[int]int) {
	list := make([]int, 0, len(sizes))
	for _, s := range sizes {
		list = append(list, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(list)))

	parts := make([]string, len(list))
	for i, s := range list {
		parts[i] = fmt.Sprintf("%d", s)
	}
	fmt.Fprintf(p.w, "%s %s\n", p.heading.Render(fmt.Sprintf("%d component(s)", len(list))), p.muted.Render(source))
	if len(parts) > 0 {
		fmt.Fprintf(p.w, "  sizes: %s\n", strings.Join(parts, " "))
	}
}

// Reloaded prints a separator announcing that a watched file changed.
func (p *Printer) Reloaded(source string) {
	fmt.Fprintf(p.w, "%s %s\n", p.heading.Render("── reloaded"), p.muted.Render(source))
}

// Error prints a non-fatal error.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.w, "%s%v\n", p.danger.Render("error: "), err)
}
