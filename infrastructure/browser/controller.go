package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"hover_reader/domain/entities"
	"hover_reader/domain/interfaces"
	"hover_reader/infrastructure/pointer"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

const browserStateFile = "browser_state.json"

// pointerBinding is the page-side function the mousemove listener calls
const pointerBinding = "__hoverReaderPointer"

// pointerListenerScript attaches a single mousemove listener to window per document
const pointerListenerScript = `
(() => {
	if (window.__hoverReaderListening) return;
	window.__hoverReaderListening = true;
	window.addEventListener("mousemove", (event) => {
		window.` + pointerBinding + `(event.clientX, event.clientY);
	});
})();
`

// Options configure the controlled browser
type Options struct {
	Headless       bool
	SlowMoMs       float64
	ViewportWidth  int
	ViewportHeight int
	StateDir       string
}

type browserController struct {
	pw          *playwright.Playwright
	browser     playwright.Browser
	context     playwright.BrowserContext
	page        playwright.Page
	storagePath string
	feed        *pointer.Feed
	samples     chan entities.PointerEvent
	done        chan struct{}
	logger      *logrus.Logger
	mu          sync.Mutex
	closeOnce   sync.Once
}

// sampleBuffer bounds the pointer samples waiting for the tracker
const sampleBuffer = 64

// NewBrowserController - launches Chromium and opens a page that reports pointer movement
func NewBrowserController(opts Options, logger *logrus.Logger) (interfaces.Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	if err := os.MkdirAll(opts.StateDir, 0755); err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	storagePath := filepath.Join(opts.StateDir, browserStateFile)

	contextOptions := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		JavaScriptEnabled: playwright.Bool(true),
		IgnoreHttpsErrors: playwright.Bool(true),
	}

	if data, err := os.ReadFile(storagePath); err == nil {
		var storageState playwright.StorageState
		if err := json.Unmarshal(data, &storageState); err == nil {
			contextOptions.StorageState = storageState.ToOptionalStorageState()
		} else {
			logger.Warnf("Ignoring unreadable browser state %s: %v", storagePath, err)
		}
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		SlowMo:   playwright.Float(opts.SlowMoMs),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
			"--disable-infobars",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(contextOptions)
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	controller := &browserController{
		pw:          pw,
		browser:     browser,
		context:     bctx,
		page:        page,
		storagePath: storagePath,
		feed:        pointer.NewFeed(),
		samples:     make(chan entities.PointerEvent, sampleBuffer),
		done:        make(chan struct{}),
		logger:      logger,
	}
	go controller.pumpPointer()

	if err := controller.bindPointer(page); err != nil {
		controller.Close()
		return nil, err
	}

	return controller, nil
}

// bindPointer - forwards window mousemove events of page into the pointer feed
func (b *browserController) bindPointer(page playwright.Page) error {
	err := page.ExposeFunction(pointerBinding, func(args ...interface{}) interface{} {
		if len(args) < 2 {
			return nil
		}
		sample := entities.PointerEvent{
			ClientX: toFloat(args[0]),
			ClientY: toFloat(args[1]),
		}
		select {
		case b.samples <- sample:
		default:
			b.logger.Debug("Pointer sample dropped, tracker is busy")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to expose pointer binding: %w", err)
	}

	if err := page.AddInitScript(playwright.Script{Content: playwright.String(pointerListenerScript)}); err != nil {
		return fmt.Errorf("failed to install pointer listener: %w", err)
	}
	if _, err := page.Evaluate(pointerListenerScript); err != nil {
		return fmt.Errorf("failed to install pointer listener: %w", err)
	}
	return nil
}

// pumpPointer - delivers queued samples one at a time, off the playwright dispatcher
func (b *browserController) pumpPointer() {
	for {
		select {
		case <-b.done:
			return
		case sample := <-b.samples:
			b.feed.Emit(sample)
		}
	}
}

// Navigate - navigates to the specified URL
func (b *browserController) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	currentPage := b.page
	b.mu.Unlock()

	_, err := currentPage.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(30000),
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}

	b.logger.Infof("Navigated to: %s", url)
	return nil
}

// Document - returns the live document of the current page
func (b *browserController) Document() interfaces.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &liveDocument{page: b.page, logger: b.logger}
}

// Pointer - returns the pointer-move source of the page
func (b *browserController) Pointer() interfaces.PointerSource {
	return b.feed
}

// SaveState - saves browser state to persistent storage
func (b *browserController) SaveState() error {
	if b.context == nil || b.storagePath == "" {
		return nil
	}

	if _, err := b.context.StorageState(b.storagePath); err != nil {
		if isClosedError(err) {
			return nil
		}
		return fmt.Errorf("failed to save browser state: %w", err)
	}
	return nil
}

// Close - saves state and closes the browser
func (b *browserController) Close() error {
	var closeErr error

	b.closeOnce.Do(func() { close(b.done) })

	if err := b.SaveState(); err != nil {
		closeErr = err
	}

	if b.context != nil {
		if err := b.context.Close(); err != nil && !isClosedError(err) {
			closeErr = joinErr(closeErr, fmt.Errorf("failed to close context: %w", err))
		}
		b.context = nil
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedError(err) {
			closeErr = joinErr(closeErr, fmt.Errorf("failed to close browser: %w", err))
		}
		b.browser = nil
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			closeErr = joinErr(closeErr, fmt.Errorf("failed to stop playwright: %w", err))
		}
		b.pw = nil
	}

	return closeErr
}

func isClosedError(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

func joinErr(prev, err error) error {
	if prev == nil {
		return err
	}
	return fmt.Errorf("%v; %w", prev, err)
}
