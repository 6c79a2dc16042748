package browser

import (
	"hover_reader/domain/entities"
	"hover_reader/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Live elements read the page on every call; failed queries degrade to
// zero values so the core never sees an error.

const (
	tagNameScript    = `el => el.tagName`
	firstTextScript  = `el => { const n = el.childNodes[0]; return n && n.nodeType === Node.TEXT_NODE ? n.nodeValue : ""; }`
	lineHeightScript = `el => window.getComputedStyle(el).lineHeight`
	describeScript   = `el => el.tagName.toLowerCase() + (el.id ? "#" + el.id : "")`
	scrollScript     = `() => [window.scrollX, window.scrollY]`
)

type liveDocument struct {
	page   playwright.Page
	logger *logrus.Logger
}

// Body - returns the live body element, nil when the page has none
func (d *liveDocument) Body() interfaces.Element {
	handle, err := d.page.QuerySelector("body")
	if err != nil || handle == nil {
		d.logger.Debugf("Body not available: %v", err)
		return nil
	}
	return &liveElement{handle: handle, logger: d.logger}
}

// ScrollOffset - returns window.scrollX/scrollY
func (d *liveDocument) ScrollOffset() entities.Coordinate {
	result, err := d.page.Evaluate(scrollScript)
	if err != nil {
		d.logger.Debugf("Failed to read scroll offset: %v", err)
		return entities.Coordinate{}
	}
	values, ok := result.([]interface{})
	if !ok || len(values) != 2 {
		return entities.Coordinate{}
	}
	return entities.Coordinate{X: toFloat(values[0]), Y: toFloat(values[1])}
}

type liveElement struct {
	handle playwright.ElementHandle
	logger *logrus.Logger
}

func (e *liveElement) TagName() string {
	return e.evalString(tagNameScript)
}

func (e *liveElement) Children() []interfaces.Element {
	handles, err := e.handle.QuerySelectorAll(":scope > *")
	if err != nil {
		e.logger.Debugf("Failed to list children: %v", err)
		return nil
	}
	children := make([]interfaces.Element, 0, len(handles))
	for _, h := range handles {
		children = append(children, &liveElement{handle: h, logger: e.logger})
	}
	return children
}

func (e *liveElement) TextContent() string {
	text, err := e.handle.TextContent()
	if err != nil {
		e.logger.Debugf("Failed to read text content: %v", err)
		return ""
	}
	return text
}

func (e *liveElement) FirstChildText() string {
	return e.evalString(firstTextScript)
}

func (e *liveElement) LineHeight() string {
	return e.evalString(lineHeightScript)
}

func (e *liveElement) ClientRect() entities.Rect {
	box, err := e.handle.BoundingBox()
	if err != nil || box == nil {
		return entities.Rect{}
	}
	return entities.Rect{X: box.X, Y: box.Y, Width: box.Width, Height: box.Height}
}

func (e *liveElement) Describe() string {
	return e.evalString(describeScript)
}

func (e *liveElement) evalString(script string) string {
	result, err := e.handle.Evaluate(script)
	if err != nil {
		e.logger.Debugf("Element query failed: %v", err)
		return ""
	}
	return getString(result)
}

// getString - extracts string value from an evaluation result
func getString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// toFloat - converts a JSON number from the page to float64
func toFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	}
	return 0
}

var (
	_ interfaces.Document  = (*liveDocument)(nil)
	_ interfaces.Element   = (*liveElement)(nil)
	_ interfaces.Describer = (*liveElement)(nil)
)
