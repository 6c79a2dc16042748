package geometry

import (
	"math"
	"strconv"
	"strings"

	"hover_reader/domain/entities"
	"hover_reader/domain/interfaces"
)

// Bounds returns the document-space box of el.
// It is queried fresh on every call since the page may scroll or reflow.
func Bounds(vp interfaces.Viewport, el interfaces.Element) entities.ElementBounds {
	rect := el.ClientRect()
	scroll := vp.ScrollOffset()
	return entities.NewElementBounds(rect.X+scroll.X, rect.Y+scroll.Y, rect.Width, rect.Height)
}

// Contains reports whether point lies inside el. All four edges count as inside.
func Contains(vp interfaces.Viewport, point entities.Coordinate, el interfaces.Element) bool {
	return ContainsPoint(Bounds(vp, el), point)
}

// ContainsPoint is Contains for already computed bounds
func ContainsPoint(b entities.ElementBounds, point entities.Coordinate) bool {
	return point.X >= b.Left && point.X <= b.Right() &&
		point.Y >= b.Top && point.Y <= b.Bottom()
}

// ParseLineHeight converts a computed line-height such as "24px" to pixels.
// Empty, unitless and unparseable values yield 0.
func ParseLineHeight(value string) float64 {
	value = strings.TrimSpace(value)
	number, ok := strings.CutSuffix(value, "px")
	if !ok {
		return 0
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil || math.IsNaN(height) || math.IsInf(height, 0) {
		return 0
	}
	return height
}

// FirstLineHeight returns the line-height in pixels of the first line of
// visible text inside el.
//
// The element's own line-height is the floor. When el starts with text that
// floor is the answer; otherwise children are searched depth first and the
// largest line-height met on the way to the first text-bearing leaf wins.
func FirstLineHeight(el interfaces.Element) float64 {
	maxHeight := math.Max(ParseLineHeight(el.LineHeight()), 0)

	if strings.TrimSpace(el.FirstChildText()) != "" {
		return maxHeight
	}

	for _, child := range el.Children() {
		if len(child.Children()) > 0 {
			maxHeight = math.Max(FirstLineHeight(child), maxHeight)
			continue
		}

		maxHeight = math.Max(ParseLineHeight(child.LineHeight()), maxHeight)
		if strings.TrimSpace(child.FirstChildText()) != "" {
			return maxHeight
		}
	}

	return maxHeight
}
