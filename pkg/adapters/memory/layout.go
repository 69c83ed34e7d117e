package memory

import (
	"fmt"
	"io"
	"os"

	"github.com/aretw0/waypoint/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Layout is the serialized form of a Document, used for simulation fixtures.
type Layout struct {
	Viewport domain.Viewport `yaml:"viewport"`
	Elements []LayoutElement `yaml:"elements"`
}

// LayoutElement describes one element of a Layout.
type LayoutElement struct {
	Selector   string  `yaml:"selector"`
	Top        float64 `yaml:"top"`
	Left       float64 `yaml:"left"`
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	Display    string  `yaml:"display,omitempty"`
	Visibility string  `yaml:"visibility,omitempty"`
}

// DecodeLayout parses a YAML layout.
func DecodeLayout(r io.Reader) (Layout, error) {
	var l Layout
	if err := yaml.NewDecoder(r).Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("failed to parse layout: %w", err)
	}
	if l.Viewport.Width <= 0 || l.Viewport.Height <= 0 {
		return Layout{}, fmt.Errorf("layout viewport must have positive width and height")
	}
	return l, nil
}

// LoadLayout reads a YAML layout file and builds a Document from it.
func LoadLayout(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open layout: %w", err)
	}
	defer f.Close()

	l, err := DecodeLayout(f)
	if err != nil {
		return nil, err
	}
	return l.Document(), nil
}

// Document builds a Document from the layout.
func (l Layout) Document() *Document {
	doc := NewDocument(l.Viewport)
	for _, e := range l.Elements {
		display := e.Display
		if display == "" {
			display = "block"
		}
		visibility := e.Visibility
		if visibility == "" {
			visibility = "visible"
		}
		doc.Add(e.Selector,
			domain.Rect{Top: e.Top, Left: e.Left, Width: e.Width, Height: e.Height},
			WithStyle(display, visibility),
		)
	}
	return doc
}
