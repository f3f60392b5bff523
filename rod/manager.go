package rod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages a browser renders before it is replaced.
const DefaultMaxPages = 75

// ErrManagerClosed is returned by Acquire after Close.
var ErrManagerClosed = errors.New("browser manager is closed")

// BrowserManager hands out leases on a headless Chrome browser and replaces
// the browser after a page budget, since Chrome's memory baseline keeps
// growing under load. A replaced browser is shut down when its last lease
// is released, so pages still rendering on it finish normally.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	current  *generation
	draining map[*generation]struct{}
	closed   bool

	maxPages  int
	bin       string
	noSandbox bool
}

// generation is one launched browser process and its lease accounting.
type generation struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	leased   int
	active   int
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets the number of leases a browser serves before it is replaced.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// WithBrowserBin sets the Chrome/Chromium binary to launch.
// By default rod looks up a local installation or downloads one.
func WithBrowserBin(path string) ManagerOption {
	return func(bm *BrowserManager) {
		bm.bin = path
	}
}

// WithNoSandbox disables the Chrome sandbox, which containers running as
// root require.
func WithNoSandbox() ManagerOption {
	return func(bm *BrowserManager) {
		bm.noSandbox = true
	}
}

// NewBrowserManager launches a headless browser.
// Close must be called when the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{
		maxPages: DefaultMaxPages,
		draining: make(map[*generation]struct{}),
	}
	for _, opt := range opts {
		opt(bm)
	}
	if bm.maxPages < 1 {
		bm.maxPages = 1
	}

	g, err := bm.launch()
	if err != nil {
		return nil, err
	}
	bm.current = g
	return bm, nil
}

// Acquire leases the current browser for one page. The release func must
// be called once the page is closed; extra calls are ignored.
//
// When the current browser has served its page budget a new one is
// launched first. If that launch fails the old browser keeps serving and
// the replacement is retried on the next Acquire.
func (bm *BrowserManager) Acquire() (*rod.Browser, func(), error) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil, nil, ErrManagerClosed
	}
	if bm.current.leased >= bm.maxPages {
		bm.replace()
	}

	g := bm.current
	g.leased++
	g.active++

	var once sync.Once
	release := func() {
		once.Do(func() { bm.release(g) })
	}
	return g.browser, release, nil
}

// Closed reports whether Close has been called.
func (bm *BrowserManager) Closed() bool {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	return bm.closed
}

// Close shuts down every browser, including ones with leases outstanding.
// Close is safe to call multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	err := bm.current.shutdown()
	bm.current = nil
	for g := range bm.draining {
		err = errors.Join(err, g.shutdown())
		delete(bm.draining, g)
	}
	return err
}

// LauncherPID returns the process ID of the current browser launcher,
// or 0 after Close.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.current == nil || bm.current.launcher == nil {
		return 0
	}
	return bm.current.launcher.PID()
}

func (bm *BrowserManager) launch() (*generation, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		NoSandbox(bm.noSandbox).
		Leakless(true).
		Headless(true)
	if bm.bin != "" {
		l = l.Bin(bm.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &generation{browser: browser, launcher: l}, nil
}

// replace swaps in a fresh browser and retires the current one.
// Must be called with mu held.
func (bm *BrowserManager) replace() {
	next, err := bm.launch()
	if err != nil {
		return
	}

	old := bm.current
	bm.current = next
	if old.active == 0 {
		_ = old.shutdown()
		return
	}
	bm.draining[old] = struct{}{}
}

func (bm *BrowserManager) release(g *generation) {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	g.active--
	if _, ok := bm.draining[g]; ok && g.active == 0 {
		delete(bm.draining, g)
		_ = g.shutdown()
	}
}

// shutdown closes the browser and kills its launcher. Safe on a
// generation that is already shut down.
func (g *generation) shutdown() error {
	var err error
	if g.browser != nil {
		err = g.browser.Close()
		g.browser = nil
	}
	if g.launcher != nil {
		g.launcher.Kill()
		g.launcher = nil
	}
	return err
}
