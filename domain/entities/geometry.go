package entities

// Coordinate is a point in document space (viewport position plus scroll offset)
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a viewport-relative box, as reported by the rendering environment
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementBounds is a document-space box. X == Left and Y == Top.
type ElementBounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewElementBounds builds bounds from a document-space origin and size
func NewElementBounds(left, top, width, height float64) ElementBounds {
	return ElementBounds{
		X:      left,
		Y:      top,
		Top:    top,
		Left:   left,
		Width:  width,
		Height: height,
	}
}

// Right returns the right edge
func (b ElementBounds) Right() float64 {
	return b.Left + b.Width
}

// Bottom returns the bottom edge
func (b ElementBounds) Bottom() float64 {
	return b.Top + b.Height
}
