package memory

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/aretw0/waypoint/pkg/domain"
	"github.com/aretw0/waypoint/pkg/ports"
)

// Node is one element of an in-memory document.
type Node struct {
	Selector string
	Rect     domain.Rect
	Style    domain.Style
	removed  bool
}

// Document implements ports.Environment over a flat, in-memory element list.
// Selectors match by exact string; several nodes may share one selector and
// Find returns the first in insertion (document) order.
// Safe for concurrent use.
type Document struct {
	mu       sync.RWMutex
	viewport domain.Viewport
	nodes    []*Node
	scrolled []string
}

var _ ports.Environment = (*Document)(nil)

// NewDocument creates an empty document with the given viewport.
func NewDocument(vp domain.Viewport) *Document {
	return &Document{viewport: vp}
}

// NodeOption configures a node added to a Document.
type NodeOption func(*Node)

// WithStyle sets the computed style of a node.
func WithStyle(display, visibility string) NodeOption {
	return func(n *Node) {
		n.Style = domain.Style{Display: display, Visibility: visibility}
	}
}

// Add appends an element. Nodes default to display "block", visibility "visible".
func (d *Document) Add(selector string, rect domain.Rect, opts ...NodeOption) *Node {
	n := &Node{
		Selector: selector,
		Rect:     rect,
		Style:    domain.Style{Display: "block", Visibility: "visible"},
	}
	for _, opt := range opts {
		opt(n)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.nodes = append(d.nodes, n)
	return n
}

// Remove detaches every node matching selector.
func (d *Document) Remove(selector string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kept := d.nodes[:0]
	for _, n := range d.nodes {
		if n.Selector == selector {
			n.removed = true
			continue
		}
		kept = append(kept, n)
	}
	d.nodes = kept
}

// SetStyle updates the computed style of the first node matching selector.
func (d *Document) SetStyle(selector string, style domain.Style) error {
	return d.update(selector, func(n *Node) { n.Style = style })
}

// SetRect updates the bounding box of the first node matching selector.
func (d *Document) SetRect(selector string, rect domain.Rect) error {
	return d.update(selector, func(n *Node) { n.Rect = rect })
}

// SetViewport replaces the viewport, e.g. to simulate a resize.
func (d *Document) SetViewport(vp domain.Viewport) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.viewport = vp
}

// Scrolled returns the selectors passed to ScrollIntoView, in order.
func (d *Document) Scrolled() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.scrolled...)
}

func (d *Document) update(selector string, fn func(*Node)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, n := range d.nodes {
		if n.Selector == selector {
			fn(n)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrElementNotFound, selector)
}

// Find implements ports.ElementLocator.
func (d *Document) Find(ctx context.Context, selector string) (ports.Element, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, n := range d.nodes {
		if n.Selector == selector {
			return &element{doc: d, node: n}, nil
		}
	}
	return nil, nil
}

// Viewport implements ports.ViewportMeasurer.
func (d *Document) Viewport(ctx context.Context) (domain.Viewport, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.viewport, nil
}

// ScrollIntoView implements ports.ScrollRequester. It centers the element
// vertically, never scrolling above the top of the document, and shifts every
// node's viewport coordinates accordingly.
func (d *Document) ScrollIntoView(ctx context.Context, el ports.Element) error {
	e, ok := el.(*element)
	if !ok || e.doc != d {
		return fmt.Errorf("%w: element does not belong to this document", domain.ErrElementNotFound)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if e.node.removed {
		return fmt.Errorf("%w: %s", domain.ErrElementNotFound, e.node.Selector)
	}

	d.scrolled = append(d.scrolled, e.node.Selector)

	r := e.node.Rect
	delta := r.Top + r.Height/2 - d.viewport.Height/2
	next := math.Max(0, d.viewport.ScrollY+delta)
	delta = next - d.viewport.ScrollY
	if delta == 0 {
		return nil
	}
	d.viewport.ScrollY = next
	for _, n := range d.nodes {
		n.Rect.Top -= delta
	}
	return nil
}

type element struct {
	doc  *Document
	node *Node
}

func (e *element) BoundingBox(ctx context.Context) (domain.Rect, error) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	if e.node.removed {
		return domain.Rect{}, fmt.Errorf("%w: %s", domain.ErrElementNotFound, e.node.Selector)
	}
	return e.node.Rect, nil
}

func (e *element) Style(ctx context.Context) (domain.Style, error) {
	e.doc.mu.RLock()
	defer e.doc.mu.RUnlock()
	if e.node.removed {
		return domain.Style{}, fmt.Errorf("%w: %s", domain.ErrElementNotFound, e.node.Selector)
	}
	return e.node.Style, nil
}
