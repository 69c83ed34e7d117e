package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner writes the waypoint banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text, color string
	}{
		{`                        _       _   `, "#34d399"},
		{` __ __ ____ _ _  _ _ __ ___ (_)_ _ | |_ `, "#2dd4bf"},
		{` \ V  V / _' | || | '_ \/ _ \| | ' \|  _|`, "#22d3ee"},
		{`  \_/\_/\__,_|\_, | .__/\___/|_|_||_|\__|`, "#38bdf8"},
		{`              |__/|_|                   `, "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, termenv.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}

// Status colors a short status word: green for ok, yellow otherwise.
func Status(ok bool, text string) string {
	p := termenv.ColorProfile()
	color := "#fbbf24"
	if ok {
		color = "#34d399"
	}
	return termenv.String(text).Foreground(p.Color(color)).String()
}
