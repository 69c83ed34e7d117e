package tui

import (
	"regexp"
	"strings"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/charmbracelet/glamour"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// NewRenderer returns a function that renders step text as terminal
// markdown. Step text may carry inline HTML meant for browsers; tags are
// reduced to their text content first.
func NewRenderer(theme domain.Theme, width int) func(string) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	switch theme {
	case domain.ThemeLight:
		opts = append(opts, glamour.WithStandardStyle("light"))
	default:
		opts = append(opts, glamour.WithStandardStyle("dark"))
	}
	r, err := glamour.NewTermRenderer(opts...)

	return func(text string) (string, error) {
		plain := StripTags(text)
		if err != nil {
			return plain, nil
		}
		out, rerr := r.Render(plain)
		if rerr != nil {
			return plain, rerr
		}
		return strings.Trim(out, "\n"), nil
	}
}

// StripTags removes HTML tags and collapses <br> into newlines.
func StripTags(s string) string {
	s = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n").Replace(s)
	return tagPattern.ReplaceAllString(s, "")
}
