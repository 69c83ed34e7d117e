package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Overlay carries run-time state to highlight on the chart.
type Overlay struct {
	// Skipped lists step indexes whose target was not visible.
	Skipped []int
	// Current is the step being shown, or domain.IndexBeforeStart for none.
	Current int
}

// GenerateMermaid renders a tour as a Mermaid flowchart: a start circle,
// one box per step in order, and an end circle. Next edges are solid and
// previous edges dotted; the close control is implied from every step.
func GenerateMermaid(t domain.Tour, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	start := sanitizeMermaidID(t.ID) + "_start"
	end := sanitizeMermaidID(t.ID) + "_end"
	title := t.Title
	if title == "" {
		title = t.ID
	}
	fmt.Fprintf(&sb, "    %s((\"%s\"))\n", start, escape(title))

	prev := start
	for i, s := range t.Steps {
		id := stepID(i)
		fmt.Fprintf(&sb, "    %s[\"%d: %s\"]\n", id, i+1, escape(s.Selector))
		if prev == start {
			fmt.Fprintf(&sb, "    %s --> %s\n", prev, id)
		} else {
			fmt.Fprintf(&sb, "    %s -- next --> %s\n", prev, id)
			fmt.Fprintf(&sb, "    %s -. prev .-> %s\n", id, prev)
		}
		prev = id
	}
	fmt.Fprintf(&sb, "    %s((\"end\"))\n", end)
	if prev == start {
		fmt.Fprintf(&sb, "    %s --> %s\n", start, end)
	} else {
		fmt.Fprintf(&sb, "    %s -- next --> %s\n", prev, end)
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text stays readable on both light and dark Mermaid themes.
		sb.WriteString("    classDef skipped fill:#eeeeee,stroke:#9e9e9e,stroke-dasharray:4 2,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, i := range overlay.Skipped {
			if i < 0 || i >= len(t.Steps) || seen[i] {
				continue
			}
			seen[i] = true
			fmt.Fprintf(&sb, "    class %s skipped;\n", stepID(i))
		}
		if overlay.Current >= 0 && overlay.Current < len(t.Steps) {
			fmt.Fprintf(&sb, "    class %s current;\n", stepID(overlay.Current))
		}
	}

	return sb.String()
}

func stepID(i int) string {
	return fmt.Sprintf("step_%d", i)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	if s == "" {
		s = "tour"
	}
	return s
}
