package interfaces

import "hover_reader/domain/entities"

// Element is a read-only handle to a node of a rendered document tree
type Element interface {
	// TagName returns the element's tag, in whatever case the host reports it
	TagName() string

	// Children returns the element children in document order
	Children() []Element

	// TextContent returns the concatenated text of all descendants
	TextContent() string

	// FirstChildText returns the value of the first child node when it is a
	// text node, and "" otherwise
	FirstChildText() string

	// LineHeight returns the computed line-height, e.g. "24px" or "normal"
	LineHeight() string

	// ClientRect returns the element's box relative to the viewport
	ClientRect() entities.Rect
}

// Describer is implemented by elements that can label themselves for humans
type Describer interface {
	Describe() string
}

// Describe returns a short label for an element
func Describe(el Element) string {
	if d, ok := el.(Describer); ok {
		return d.Describe()
	}
	return el.TagName()
}
