package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"hover_reader/application/hover"
	"hover_reader/application/session"
	"hover_reader/domain/interfaces"
	"hover_reader/infrastructure/browser"
	"hover_reader/infrastructure/config"
	"hover_reader/infrastructure/dom"
	"hover_reader/infrastructure/pointer"
	"hover_reader/infrastructure/storage"

	"github.com/sirupsen/logrus"
)

const helpText = `Commands:
  open <url>       open a page in the browser (live tracking)
  load <file>      load a static HTML snapshot
  scan             select top-level readable elements
  list             list readable elements of the last scan
  hover <x> <y>    move the pointer in a static snapshot
  scroll <x> <y>   scroll a static snapshot
  watch            print live hover updates until Enter
  export           save the scan report
  help             show this help
  quit             exit`

type TerminalInterface struct {
	cfg     *config.Config
	logger  *logrus.Logger
	reader  *bufio.Reader
	out     io.Writer
	reports interfaces.ReportStore

	browserCtrl interfaces.Browser
	static      *dom.Document
	feed        *pointer.Feed
	session     *session.Session
	source      string
	watching    atomic.Bool
}

func NewTerminalInterface() (*TerminalInterface, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logger
	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	reports, err := storage.NewReportStore(cfg.StateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize report storage: %w", err)
	}

	return newTerminal(cfg, logger, reports, os.Stdin, os.Stdout), nil
}

func newTerminal(cfg *config.Config, logger *logrus.Logger, reports interfaces.ReportStore, in io.Reader, out io.Writer) *TerminalInterface {
	return &TerminalInterface{
		cfg:     cfg,
		logger:  logger,
		reader:  bufio.NewReader(in),
		out:     out,
		reports: reports,
	}
}

func (t *TerminalInterface) Run() error {
	fmt.Fprintln(t.out, "Hover Reader")
	fmt.Fprintln(t.out, "============")
	fmt.Fprintln(t.out, "Type 'help' for commands, or 'quit' to exit")
	fmt.Fprintln(t.out)

	if t.cfg.StartURL != "" {
		if err := t.open(t.cfg.StartURL); err != nil {
			fmt.Fprintf(t.out, "Error: %v\n", err)
		}
	}

	for {
		fmt.Fprint(t.out, "> ")
		input, err := t.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}

		command, args := strings.ToLower(fields[0]), fields[1:]
		if command == "quit" || command == "exit" || command == "q" {
			fmt.Fprintln(t.out, "Bye!")
			return nil
		}

		if err := t.execute(command, args); err != nil {
			fmt.Fprintf(t.out, "Error: %v\n", err)
		}
	}
}

func (t *TerminalInterface) execute(command string, args []string) error {
	switch command {
	case "help":
		fmt.Fprintln(t.out, helpText)
		return nil
	case "open":
		if len(args) != 1 {
			return fmt.Errorf("usage: open <url>")
		}
		return t.open(args[0])
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("usage: load <file>")
		}
		return t.load(args[0])
	case "scan":
		return t.scan()
	case "list":
		return t.list()
	case "hover":
		x, y, err := parsePoint(args)
		if err != nil {
			return fmt.Errorf("usage: hover <x> <y>: %w", err)
		}
		return t.hover(x, y)
	case "scroll":
		x, y, err := parsePoint(args)
		if err != nil {
			return fmt.Errorf("usage: scroll <x> <y>: %w", err)
		}
		return t.scroll(x, y)
	case "watch":
		return t.watch()
	case "export":
		return t.export()
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// open - starts a live session on url, launching the browser on first use
func (t *TerminalInterface) open(url string) error {
	if t.browserCtrl == nil {
		ctrl, err := browser.NewBrowserController(browser.Options{
			Headless:       t.cfg.Headless,
			SlowMoMs:       t.cfg.SlowMoMs,
			ViewportWidth:  t.cfg.ViewportWidth,
			ViewportHeight: t.cfg.ViewportHeight,
			StateDir:       t.cfg.StateDir,
		}, t.logger)
		if err != nil {
			return fmt.Errorf("failed to initialize browser: %w", err)
		}
		t.browserCtrl = ctrl
	}

	if err := t.browserCtrl.Navigate(context.Background(), url); err != nil {
		return err
	}

	t.replaceSession(session.NewSession(t.browserCtrl.Document(), t.browserCtrl.Pointer(), t.logger, t.hoverOptions()), url, true)
	t.static, t.feed = nil, nil
	return t.scan()
}

// load - starts an offline session on a static HTML snapshot
func (t *TerminalInterface) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := dom.ParseHTML(f)
	if err != nil {
		return err
	}

	t.static = doc
	t.feed = pointer.NewFeed()
	t.replaceSession(session.NewSession(doc, t.feed, t.logger, t.hoverOptions()), path, false)
	return t.scan()
}

func (t *TerminalInterface) replaceSession(s *session.Session, source string, live bool) {
	if t.session != nil {
		t.session.Close()
	}
	t.session, t.source = s, source
	t.session.OnHover(func(info *hover.HoveredElementInfo) {
		// Live updates arrive on every mouse move; only show them while watching.
		if live && !t.watching.Load() {
			return
		}
		t.printHover(info)
	})
}

func (t *TerminalInterface) hoverOptions() hover.Options {
	return hover.Options{StickyHover: t.cfg.StickyHover}
}

func (t *TerminalInterface) scan() error {
	if t.session == nil {
		return fmt.Errorf("no page loaded, use open or load first")
	}

	var elements []interfaces.Element
	if t.cfg.ScanRoot != "" && t.static != nil {
		root, err := t.static.Find(t.cfg.ScanRoot)
		if err != nil {
			return fmt.Errorf("failed to resolve scan root: %w", err)
		}
		elements = t.session.ScanFrom(root)
	} else {
		elements = t.session.Scan()
	}

	fmt.Fprintf(t.out, "Found %d readable elements in %s\n", len(elements), t.source)
	return nil
}

func (t *TerminalInterface) list() error {
	if t.session == nil {
		return fmt.Errorf("no page loaded, use open or load first")
	}

	report := t.session.Report(t.source)
	for _, el := range report.Elements {
		fmt.Fprintf(t.out, "%3d  %-24s top=%.0f left=%.0f %.0fx%.0f line=%.0fpx  %s\n",
			el.Index, el.Label, el.Bounds.Top, el.Bounds.Left, el.Bounds.Width, el.Bounds.Height,
			el.FirstLineHeight, el.Excerpt)
	}
	return nil
}

func (t *TerminalInterface) hover(x, y float64) error {
	if t.feed == nil {
		return fmt.Errorf("hover needs a static snapshot, use load first")
	}
	t.feed.Move(x, y)
	if t.cfg.StickyHover && t.session.Hovered() == nil {
		fmt.Fprintln(t.out, "No readable element under the pointer")
	}
	return nil
}

func (t *TerminalInterface) scroll(x, y float64) error {
	if t.static == nil {
		return fmt.Errorf("scroll needs a static snapshot, use load first")
	}
	t.static.Scroll(x, y)
	return nil
}

// watch - prints live hover updates until the user presses Enter
func (t *TerminalInterface) watch() error {
	if t.session == nil || t.browserCtrl == nil {
		return fmt.Errorf("watch needs a live page, use open first")
	}

	fmt.Fprintln(t.out, "Watching pointer, press Enter to stop")
	t.watching.Store(true)
	defer t.watching.Store(false)

	_, err := t.reader.ReadString('\n')
	if err == io.EOF {
		return nil
	}
	return err
}

func (t *TerminalInterface) printHover(info *hover.HoveredElementInfo) {
	if info == nil {
		fmt.Fprintln(t.out, "Hovering: nothing")
		return
	}
	fmt.Fprintf(t.out, "Hovering: %s at top=%.0f left=%.0f first line=%.0fpx\n",
		interfaces.Describe(info.Element), info.Top, info.Left, info.HeightOfFirstLine)
}

func (t *TerminalInterface) export() error {
	if t.session == nil {
		return fmt.Errorf("no page loaded, use open or load first")
	}
	report := t.session.Report(t.source)
	if err := t.reports.SaveReport(report); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	fmt.Fprintf(t.out, "Saved report with %d elements\n", len(report.Elements))
	return nil
}

func (t *TerminalInterface) Close() error {
	if t.session != nil {
		t.session.Close()
	}
	if t.browserCtrl != nil {
		return t.browserCtrl.Close()
	}
	return nil
}

func parsePoint(args []string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected two numbers")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
