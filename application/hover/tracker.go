package hover

import (
	"sync"

	"hover_reader/application/geometry"
	"hover_reader/domain/entities"
	"hover_reader/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// HoveredElementInfo is the readable element under the pointer together with
// the anchor box for the overlay. A fresh value is built for every hit.
type HoveredElementInfo struct {
	Element           interfaces.Element
	Top               float64
	Left              float64
	HeightOfFirstLine float64
}

// Options tune the tracker
type Options struct {
	// StickyHover keeps the last hovered element when a sample hits nothing.
	// When false a miss resets the tracker to nil and emits nil.
	StickyHover bool
}

// Tracker follows the pointer over a list of readable elements
type Tracker struct {
	source   interfaces.PointerSource
	viewport interfaces.Viewport
	logger   *logrus.Logger
	opts     Options

	handling sync.Mutex

	mu          sync.Mutex
	elements    []interfaces.Element
	current     *HoveredElementInfo
	unsubscribe func()
	listeners   []func(*HoveredElementInfo)
}

// NewTracker - creates a tracker reading samples from source
func NewTracker(source interfaces.PointerSource, viewport interfaces.Viewport, logger *logrus.Logger, opts Options) *Tracker {
	return &Tracker{
		source:   source,
		viewport: viewport,
		logger:   logger,
		opts:     opts,
	}
}

// Start - tracks elements, replacing any previous list and subscription
func (t *Tracker) Start(elements []interfaces.Element) {
	t.Stop()

	t.mu.Lock()
	t.elements = elements
	t.current = nil
	t.mu.Unlock()

	unsubscribe := t.source.Subscribe(t.Handle)

	t.mu.Lock()
	t.unsubscribe = unsubscribe
	t.mu.Unlock()

	t.logger.Debugf("Hover tracking started for %d elements", len(elements))
}

// Stop - releases the pointer subscription. Safe to call more than once.
func (t *Tracker) Stop() {
	t.mu.Lock()
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	t.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
		t.logger.Debug("Hover tracking stopped")
	}
}

// Active - reports whether the tracker holds a subscription
func (t *Tracker) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unsubscribe != nil
}

// OnChange - registers fn to receive every emitted value, nil included
func (t *Tracker) OnChange(fn func(*HoveredElementInfo)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listeners = append(t.listeners, fn)
}

// Current - returns the hovered element info, or nil when idle
func (t *Tracker) Current() *HoveredElementInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Handle - processes one pointer sample to completion
func (t *Tracker) Handle(event entities.PointerEvent) {
	t.handling.Lock()
	defer t.handling.Unlock()

	t.mu.Lock()

	scroll := t.viewport.ScrollOffset()
	point := entities.Coordinate{
		X: event.ClientX + scroll.X,
		Y: event.ClientY + scroll.Y,
	}

	// Overlapping candidates: the last one in list order wins.
	var hit interfaces.Element
	var hitBounds entities.ElementBounds
	for _, el := range t.elements {
		bounds := geometry.Bounds(t.viewport, el)
		if geometry.ContainsPoint(bounds, point) {
			hit, hitBounds = el, bounds
		}
	}

	var info *HoveredElementInfo
	if hit != nil {
		info = &HoveredElementInfo{
			Element:           hit,
			Top:               hitBounds.Top,
			Left:              hitBounds.Left,
			HeightOfFirstLine: geometry.FirstLineHeight(hit),
		}
	}

	if info == nil && t.opts.StickyHover {
		t.mu.Unlock()
		return
	}

	t.current = info
	listeners := append([]func(*HoveredElementInfo){}, t.listeners...)
	t.mu.Unlock()

	if info != nil {
		t.logger.WithFields(logrus.Fields{
			"element": interfaces.Describe(info.Element),
			"top":     info.Top,
			"left":    info.Left,
			"height":  info.HeightOfFirstLine,
		}).Debug("Hovering readable element")
	}

	for _, fn := range listeners {
		fn(info)
	}
}
