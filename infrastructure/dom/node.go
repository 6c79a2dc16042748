// Package dom is a static, in-memory rendering of a page: a tree of elements
// whose layout is fixed at build time and a viewport that can be scrolled.
package dom

import (
	"strings"

	"hover_reader/domain/entities"
	"hover_reader/domain/interfaces"
)

// Node is an element of a static document
type Node struct {
	tag        string
	id         string
	lineHeight string
	box        entities.Rect
	parent     *Node
	content    []childNode
	doc        *Document
}

// childNode is either a text node or an element
type childNode struct {
	text string
	elem *Node
}

// Option configures a node created with Append
type Option func(*Node)

// ID sets the element id
func ID(id string) Option {
	return func(n *Node) { n.id = id }
}

// Box sets the document-space box of the element
func Box(left, top, width, height float64) Option {
	return func(n *Node) {
		n.box = entities.Rect{X: left, Y: top, Width: width, Height: height}
	}
}

// LineHeight sets the line-height, e.g. "24px". Unset values inherit.
func LineHeight(value string) Option {
	return func(n *Node) { n.lineHeight = value }
}

// Append - adds a child element and returns it
func (n *Node) Append(tag string, opts ...Option) *Node {
	child := &Node{
		tag:    strings.ToUpper(tag),
		parent: n,
		doc:    n.doc,
	}
	for _, opt := range opts {
		opt(child)
	}
	n.content = append(n.content, childNode{elem: child})
	return child
}

// AppendText - adds a text node and returns n for chaining
func (n *Node) AppendText(text string) *Node {
	n.content = append(n.content, childNode{text: text})
	return n
}

// TagName - returns the upper-case tag name
func (n *Node) TagName() string {
	return n.tag
}

// ElementID - returns the id attribute
func (n *Node) ElementID() string {
	return n.id
}

// Parent - returns the parent element, nil for the body
func (n *Node) Parent() *Node {
	return n.parent
}

// Children - returns the element children in document order
func (n *Node) Children() []interfaces.Element {
	var children []interfaces.Element
	for _, c := range n.content {
		if c.elem != nil {
			children = append(children, c.elem)
		}
	}
	return children
}

// TextContent - returns the concatenated descendant text
func (n *Node) TextContent() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, c := range n.content {
		if c.elem != nil {
			c.elem.writeText(sb)
		} else {
			sb.WriteString(c.text)
		}
	}
}

// FirstChildText - returns the first child node's text, "" if it is an element
func (n *Node) FirstChildText() string {
	if len(n.content) == 0 || n.content[0].elem != nil {
		return ""
	}
	return n.content[0].text
}

// LineHeight - returns the computed line-height, inherited from ancestors
func (n *Node) LineHeight() string {
	for cur := n; cur != nil; cur = cur.parent {
		if cur.lineHeight != "" {
			return cur.lineHeight
		}
	}
	return ""
}

// ClientRect - returns the box relative to the current scroll position
func (n *Node) ClientRect() entities.Rect {
	rect := n.box
	if n.doc != nil {
		scroll := n.doc.ScrollOffset()
		rect.X -= scroll.X
		rect.Y -= scroll.Y
	}
	return rect
}

// Describe - returns a label such as "div#content-1"
func (n *Node) Describe() string {
	label := strings.ToLower(n.tag)
	if n.id != "" {
		label += "#" + n.id
	}
	return label
}
