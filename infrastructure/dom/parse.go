package dom

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoBody is returned when the parsed page has no body element
var ErrNoBody = errors.New("html document has no body")

// ParseHTML - builds a static document from HTML.
//
// Layout comes from inline styles: top, left, width and height in px give
// the document-space box, line-height is kept as written and inherited by
// descendants that do not set their own. Comments are dropped.
func ParseHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	bodySrc := findBody(root)
	if bodySrc == nil {
		return nil, ErrNoBody
	}

	doc := NewDocument()
	doc.source = root
	doc.nodes = map[*html.Node]*Node{bodySrc: doc.body}
	applyAttributes(doc.body, bodySrc)
	doc.build(doc.body, bodySrc)

	return doc, nil
}

// ParseHTMLString - ParseHTML for a string
func ParseHTMLString(s string) (*Document, error) {
	return ParseHTML(strings.NewReader(s))
}

func (d *Document) build(parent *Node, src *html.Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			parent.AppendText(c.Data)
		case html.ElementNode:
			child := parent.Append(c.Data)
			applyAttributes(child, c)
			d.nodes[c] = child
			d.build(child, c)
		}
	}
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func applyAttributes(n *Node, src *html.Node) {
	for _, attr := range src.Attr {
		switch strings.ToLower(attr.Key) {
		case "id":
			n.id = attr.Val
		case "style":
			applyStyle(n, parseStyle(attr.Val))
		}
	}
}

func applyStyle(n *Node, style map[string]string) {
	n.box.X = parsePixels(style["left"])
	n.box.Y = parsePixels(style["top"])
	n.box.Width = parsePixels(style["width"])
	n.box.Height = parsePixels(style["height"])
	if lh, ok := style["line-height"]; ok {
		n.lineHeight = lh
	}
}

// parseStyle splits an inline style declaration list into property/value pairs
func parseStyle(decl string) map[string]string {
	style := make(map[string]string)
	for _, part := range strings.Split(decl, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(value)
		if name != "" && value != "" {
			style[name] = value
		}
	}
	return style
}

func parsePixels(value string) float64 {
	number, ok := strings.CutSuffix(strings.TrimSpace(value), "px")
	if !ok {
		number = value
	}
	px, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil {
		return 0
	}
	return px
}
