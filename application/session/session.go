package session

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"hover_reader/application/geometry"
	"hover_reader/application/hover"
	"hover_reader/application/selector"
	"hover_reader/domain/entities"
	"hover_reader/domain/interfaces"

	"github.com/sirupsen/logrus"
)

const excerptLength = 80

// Session scans one document and tracks the pointer over its readable elements
type Session struct {
	doc     interfaces.Document
	tracker *hover.Tracker
	logger  *logrus.Logger

	mu       sync.Mutex
	elements []interfaces.Element
}

// NewSession - creates a session over doc, reading pointer samples from pointer
func NewSession(doc interfaces.Document, pointer interfaces.PointerSource, logger *logrus.Logger, opts hover.Options) *Session {
	return &Session{
		doc:     doc,
		tracker: hover.NewTracker(pointer, doc, logger, opts),
		logger:  logger,
	}
}

// Scan - selects readable elements from the body and starts tracking them
func (s *Session) Scan() []interfaces.Element {
	return s.ScanFrom(s.doc.Body())
}

// ScanFrom - selects readable elements below root and starts tracking them
func (s *Session) ScanFrom(root interfaces.Element) []interfaces.Element {
	started := time.Now()
	elements := selector.SelectTopLevelReadable(root)

	s.mu.Lock()
	s.elements = elements
	s.mu.Unlock()

	s.tracker.Start(elements)

	s.logger.WithFields(logrus.Fields{
		"root":     describeRoot(root),
		"readable": len(elements),
		"took":     time.Since(started),
	}).Info("Page scanned")

	return elements
}

// Elements - returns the readable elements of the last scan
func (s *Session) Elements() []interfaces.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elements
}

// Hovered - returns the currently hovered element info, nil when idle
func (s *Session) Hovered() *hover.HoveredElementInfo {
	return s.tracker.Current()
}

// OnHover - registers fn for every hover update
func (s *Session) OnHover(fn func(*hover.HoveredElementInfo)) {
	s.tracker.OnChange(fn)
}

// Tracking - reports whether the session listens to the pointer
func (s *Session) Tracking() bool {
	return s.tracker.Active()
}

// Report - summarizes the last scan
func (s *Session) Report(source string) entities.ScanReport {
	elements := s.Elements()

	report := entities.ScanReport{
		Source:    source,
		ScannedAt: time.Now().UTC(),
		Elements:  make([]entities.ReadableSummary, 0, len(elements)),
	}
	for i, el := range elements {
		report.Elements = append(report.Elements, entities.ReadableSummary{
			Index:           i,
			Tag:             el.TagName(),
			Label:           interfaces.Describe(el),
			Excerpt:         Excerpt(el.TextContent(), excerptLength),
			Bounds:          geometry.Bounds(s.doc, el),
			FirstLineHeight: geometry.FirstLineHeight(el),
		})
	}
	return report
}

// Close - stops pointer tracking
func (s *Session) Close() {
	s.tracker.Stop()
}

// Excerpt - collapses whitespace and truncates text to maxLen runes
func Excerpt(text string, maxLen int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLen]) + "..."
}

func describeRoot(root interfaces.Element) string {
	if root == nil {
		return "<nil>"
	}
	return interfaces.Describe(root)
}
