package session

import (
	"testing"

	"hover_reader/application/hover"
	"hover_reader/infrastructure/dom"
	"hover_reader/infrastructure/pointer"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

const page = `<html><body>
	<div id="intro" style="top: 10px; left: 20px; width: 300px; height: 60px; line-height: 24px">
		Welcome to the   reading
		assistant demo page.
	</div>
	<div id="main" style="top: 100px; left: 20px; width: 300px; height: 200px; line-height: 18px">
		<p id="one" style="top: 100px; left: 20px; width: 300px; height: 90px">First paragraph.</p>
		<p id="two" style="top: 200px; left: 20px; width: 300px; height: 90px; line-height: 30px">Second paragraph.</p>
	</div>
</body></html>`

func newSession(t *testing.T, opts hover.Options) (*Session, *dom.Document, *pointer.Feed) {
	t.Helper()
	doc, err := dom.ParseHTMLString(page)
	if err != nil {
		t.Fatalf("ParseHTMLString: %v", err)
	}
	logger, _ := logtest.NewNullLogger()
	feed := pointer.NewFeed()
	s := NewSession(doc, feed, logger, opts)
	t.Cleanup(s.Close)
	return s, doc, feed
}

func TestScanStartsTracking(t *testing.T) {
	s, _, feed := newSession(t, hover.Options{})

	elements := s.Scan()
	if len(elements) != 3 {
		t.Fatalf("readable elements = %d, want 3", len(elements))
	}
	if !s.Tracking() || feed.Subscribers() != 1 {
		t.Fatal("scan must subscribe exactly once")
	}

	s.Scan()
	if feed.Subscribers() != 1 {
		t.Errorf("rescan left %d subscriptions, want 1", feed.Subscribers())
	}

	s.Close()
	if s.Tracking() || feed.Subscribers() != 0 {
		t.Error("close must release the subscription")
	}
}

func TestHoverThroughSession(t *testing.T) {
	s, doc, feed := newSession(t, hover.Options{})
	s.Scan()

	var updates []*hover.HoveredElementInfo
	s.OnHover(func(info *hover.HoveredElementInfo) { updates = append(updates, info) })

	feed.Move(50, 250)
	got := s.Hovered()
	if got == nil {
		t.Fatal("expected p#two to be hovered")
	}
	if label := got.Element.(*dom.Node).Describe(); label != "p#two" {
		t.Errorf("hovered %s, want p#two", label)
	}
	if got.HeightOfFirstLine != 30 {
		t.Errorf("first line height = %v, want 30", got.HeightOfFirstLine)
	}

	doc.Scroll(0, 200)
	feed.Move(50, 0)
	if got := s.Hovered(); got == nil || got.Element.(*dom.Node).Describe() != "p#two" {
		t.Error("scrolled sample should still land on p#two")
	}

	feed.Move(5, 5)
	if s.Hovered() != nil {
		t.Error("expected idle after leaving every element")
	}
	if len(updates) != 3 {
		t.Errorf("updates = %d, want 3", len(updates))
	}
}

func TestScanFromRoot(t *testing.T) {
	s, doc, _ := newSession(t, hover.Options{})

	root, err := doc.Find(`//div[@id="main"]`)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	elements := s.ScanFrom(root)
	if len(elements) != 2 {
		t.Fatalf("readable elements = %d, want 2", len(elements))
	}
	if len(s.Elements()) != 2 {
		t.Errorf("Elements() = %d, want 2", len(s.Elements()))
	}
}

func TestReport(t *testing.T) {
	s, _, _ := newSession(t, hover.Options{})
	s.Scan()

	report := s.Report("page.html")
	if report.Source != "page.html" || report.ScannedAt.IsZero() {
		t.Errorf("unexpected header: %+v", report)
	}
	if len(report.Elements) != 3 {
		t.Fatalf("report elements = %d, want 3", len(report.Elements))
	}

	intro := report.Elements[0]
	if intro.Label != "div#intro" || intro.Tag != "DIV" || intro.Index != 0 {
		t.Errorf("unexpected first entry: %+v", intro)
	}
	if intro.Excerpt != "Welcome to the reading assistant demo page." {
		t.Errorf("excerpt = %q", intro.Excerpt)
	}
	if intro.Bounds.Top != 10 || intro.Bounds.Left != 20 || intro.FirstLineHeight != 24 {
		t.Errorf("unexpected geometry: %+v line=%v", intro.Bounds, intro.FirstLineHeight)
	}

	if one := report.Elements[1]; one.Label != "p#one" || one.FirstLineHeight != 18 {
		t.Errorf("p#one should inherit 18px, got %+v", one)
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"  short  text ", 20, "short text"},
		{"abcdefghij", 5, "abcde..."},
		{"ünïcödé text", 7, "ünïcödé..."},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := Excerpt(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
