package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// DefaultWidth is used when stdout is not a terminal.
const DefaultWidth = 80

// TerminalWidth returns the width of stdout, or DefaultWidth.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return DefaultWidth
	}
	return w
}

// Frame describes one callout as the simulator draws it.
type Frame struct {
	Index     int
	Total     int
	Selector  string
	Body      string
	Placement domain.Placement
	Controls  []domain.ControlID
	Theme     domain.Theme
}

// RenderFrame draws a boxed callout with an arrow on the side facing the
// target, followed by the control row.
func RenderFrame(f Frame, width int) string {
	if width < 20 {
		width = 20
	}
	inner := width - 4

	var b strings.Builder
	arrow := arrowLine(f.Placement, inner)

	header := fmt.Sprintf("Step %d/%d  %s", f.Index+1, f.Total, f.Selector)
	pos := fmt.Sprintf("%s  top=%.0f left=%.0f arrow=%.0f", f.Placement.Side, f.Placement.Top, f.Placement.Left, f.Placement.ArrowOffset)

	if f.Placement.Side == domain.SideBottom {
		b.WriteString(arrow)
	}
	b.WriteString("┌" + strings.Repeat("─", inner+2) + "┐\n")
	for _, line := range []string{header, pos, ""} {
		b.WriteString(boxLine(line, inner))
	}
	for _, line := range strings.Split(f.Body, "\n") {
		b.WriteString(boxLine(line, inner))
	}
	b.WriteString(boxLine("", inner))
	b.WriteString(boxLine(controlRow(f.Controls, f.Theme), inner))
	b.WriteString("└" + strings.Repeat("─", inner+2) + "┘\n")
	if f.Placement.Side == domain.SideTop {
		b.WriteString(arrow)
	}
	return b.String()
}

func arrowLine(p domain.Placement, inner int) string {
	glyph := "▲"
	if p.Side == domain.SideTop {
		glyph = "▼"
	}
	// Scale the pixel offset into the box; callouts are at most 300px wide.
	col := int(p.ArrowOffset / 300 * float64(inner))
	if col < 1 {
		col = 1
	}
	if col > inner {
		col = inner
	}
	return strings.Repeat(" ", col+1) + glyph + "\n"
}

func controlRow(ctls []domain.ControlID, theme domain.Theme) string {
	p := termenv.ColorProfile()
	fg := "#ffffff"
	if theme == domain.ThemeLight {
		fg = "#333333"
	}
	keys := map[domain.ControlID]string{
		domain.ControlPrevious: "p",
		domain.ControlNext:     "n",
		domain.ControlClose:    "c",
	}
	parts := make([]string, 0, len(ctls))
	for _, c := range ctls {
		label := fmt.Sprintf("[%s] %s", keys[c], c.Label())
		parts = append(parts, termenv.String(label).Foreground(p.Color(fg)).String())
	}
	return strings.Join(parts, "  ")
}

func boxLine(s string, inner int) string {
	pad := inner - ansi.StringWidth(s)
	if pad < 0 {
		pad = 0
	}
	return "│ " + s + strings.Repeat(" ", pad) + " │\n"
}
