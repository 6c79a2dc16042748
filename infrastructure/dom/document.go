package dom

import (
	"errors"
	"fmt"
	"sync"

	"hover_reader/domain/entities"
	"hover_reader/domain/interfaces"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ErrNotParsed is returned by Find on documents built without HTML source
var ErrNotParsed = errors.New("document was not parsed from HTML")

// Document is a static page with a scrollable viewport
type Document struct {
	mu     sync.RWMutex
	body   *Node
	scroll entities.Coordinate

	source *html.Node
	nodes  map[*html.Node]*Node
}

// NewDocument - creates an empty document with a body element
func NewDocument() *Document {
	doc := &Document{}
	doc.body = &Node{tag: "BODY", doc: doc}
	return doc
}

// Body - returns the body element
func (d *Document) Body() interfaces.Element {
	return d.body
}

// BodyNode - returns the body as a *Node for building
func (d *Document) BodyNode() *Node {
	return d.body
}

// ScrollOffset - returns the current scroll offset
func (d *Document) ScrollOffset() entities.Coordinate {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scroll
}

// Scroll - scrolls the viewport to (x, y)
func (d *Document) Scroll(x, y float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scroll = entities.Coordinate{X: x, Y: y}
}

// Find - returns the first element matching an XPath expression
func (d *Document) Find(expr string) (*Node, error) {
	if d.source == nil {
		return nil, ErrNotParsed
	}

	found, err := htmlquery.Query(d.source, expr)
	if err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	if found == nil {
		return nil, fmt.Errorf("no element matches %q", expr)
	}

	node, ok := d.nodes[found]
	if !ok {
		return nil, fmt.Errorf("%q matches a node outside the body", expr)
	}
	return node, nil
}

var (
	_ interfaces.Document = (*Document)(nil)
	_ interfaces.Element  = (*Node)(nil)
)
