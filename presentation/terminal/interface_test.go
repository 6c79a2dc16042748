package terminal

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"hover_reader/infrastructure/config"
	"hover_reader/infrastructure/storage"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

const snapshot = `<html><body>
<div id="a" style="top: 10px; left: 10px; width: 100px; height: 100px; line-height: 20px"><span style="line-height: 32px">Listen</span> to this</div>
<p id="b" style="top: 200px; left: 10px; width: 100px; height: 50px; line-height: 18px">Another paragraph</p>
</body></html>`

func runScript(t *testing.T, cfg *config.Config, script string) string {
	t.Helper()

	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	if err := os.WriteFile(page, []byte(snapshot), 0644); err != nil {
		t.Fatal(err)
	}
	script = strings.ReplaceAll(script, "$PAGE", page)

	cfg.StateDir = dir
	reports, err := storage.NewReportStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	logger, _ := logtest.NewNullLogger()

	var out bytes.Buffer
	term := newTerminal(cfg, logger, reports, strings.NewReader(script), &out)
	if err := term.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := term.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return out.String()
}

func TestStaticSession(t *testing.T) {
	out := runScript(t, &config.Config{}, "load $PAGE\nlist\nhover 50 50\nhover 50 150\nscroll 0 150\nhover 20 60\nexport\nquit\n")

	for _, want := range []string{
		"Found 2 readable elements",
		"div#a",
		"Hovering: div#a at top=10 left=10 first line=32px",
		"Hovering: nothing",
		"Hovering: p#b at top=200 left=10 first line=18px",
		"Saved report with 2 elements",
		"Bye!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestStickyHoverSession(t *testing.T) {
	out := runScript(t, &config.Config{StickyHover: true}, "load $PAGE\nhover 500 500\nhover 50 50\nhover 500 500\n")

	if !strings.Contains(out, "No readable element under the pointer") {
		t.Errorf("expected idle notice:\n%s", out)
	}
	if strings.Contains(out, "Hovering: nothing") {
		t.Errorf("sticky hover must not clear:\n%s", out)
	}
	if strings.Count(out, "Hovering: div#a") != 1 {
		t.Errorf("expected exactly one hover update:\n%s", out)
	}
}

func TestScanRoot(t *testing.T) {
	out := runScript(t, &config.Config{ScanRoot: `//p[@id="b"]`}, "load $PAGE\n")

	if !strings.Contains(out, "Found 0 readable elements") {
		t.Errorf("scanning inside p#b finds nothing:\n%s", out)
	}
}

func TestCommandErrors(t *testing.T) {
	out := runScript(t, &config.Config{}, "scan\nhover 1\nscroll a b\nwatch\nfly\nload /does/not/exist.html\n")

	for _, want := range []string{
		"Error: no page loaded",
		"Error: usage: hover <x> <y>",
		"Error: usage: scroll <x> <y>",
		"Error: watch needs a live page",
		"Error: unknown command: fly",
		"Error: failed to open /does/not/exist.html",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
