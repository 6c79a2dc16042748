package interfaces

import "hover_reader/domain/entities"

// Viewport reports the current scroll position of the page
type Viewport interface {
	ScrollOffset() entities.Coordinate
}

// Document is a rendered page: a viewport with a body element to scan
type Document interface {
	Viewport
	Body() Element
}

// PointerSource delivers pointer-move samples one at a time
type PointerSource interface {
	// Subscribe attaches handler and returns the func that detaches it
	Subscribe(handler func(entities.PointerEvent)) (unsubscribe func())
}
