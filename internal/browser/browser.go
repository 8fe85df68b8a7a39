package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
)

const (
	URLLogin        = "https://gopro.com/login"
	URLMediaLibrary = "https://gopro.com/media-library"
)

// Options configures the browser session.
type Options struct {
	Headless    bool
	DownloadDir string // created if absent; receives everything the browser downloads
}

// Manager owns the browser instance for the duration of one run.
type Manager struct {
	Browser *rod.Browser
	opts    Options
}

// New launches a browser and routes its downloads into opts.DownloadDir.
// A launch failure is fatal to the run; the caller does not retry.
func New(opts Options) (*Manager, error) {
	downloadDir, err := filepath.Abs(opts.DownloadDir)
	if err != nil {
		return nil, fmt.Errorf("resolve download dir: %w", err)
	}
	if err := os.MkdirAll(downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("create download dir: %w", err)
	}

	// Prefer the system browser; rod downloads its own Chromium otherwise.
	path, _ := launcher.LookPath()

	l := newLauncher(opts.Headless)
	if path != "" {
		logger.Debug("Using system browser: %s", path)
		l = l.Bin(path)
	}

	url, err := l.Launch()
	if err != nil {
		logger.Info("System browser failed to launch, falling back to managed Chromium...")
		url, err = newLauncher(opts.Headless).Launch()
		if err != nil {
			return nil, fmt.Errorf("launch browser: %w", err)
		}
	}

	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	err = proto.BrowserSetDownloadBehavior{
		Behavior:      proto.BrowserSetDownloadBehaviorBehaviorAllow,
		DownloadPath:  downloadDir,
		EventsEnabled: true,
	}.Call(b)
	if err != nil {
		b.MustClose()
		return nil, fmt.Errorf("route downloads to %s: %w", downloadDir, err)
	}
	logger.Debug("Downloads routed to %s", downloadDir)

	return &Manager{Browser: b, opts: opts}, nil
}

func newLauncher(headless bool) *launcher.Launcher {
	l := launcher.New().
		Headless(headless).
		Devtools(false).
		Set("lang", "en-US").
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("disable-blink-features", "AutomationControlled").
		Set("exclude-switches", "enable-automation").
		Set("use-automation-extension", "false")
	if !headless {
		l = l.Set("start-maximized")
	}
	return l
}

// Close shuts the browser down. Safe on a nil-browser manager.
func (m *Manager) Close() {
	if m != nil && m.Browser != nil {
		m.Browser.MustClose()
	}
}

// Open navigates a new page to the given URL and waits for the load event.
func (m *Manager) Open(url string) (*rod.Page, error) {
	page, err := m.Browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	return page, nil
}

// CookieHeader joins the session cookies into a Cookie header value and, when
// the gp_access_token cookie is present, returns it as a bearer token too.
func (m *Manager) CookieHeader() (header string, token string, err error) {
	cookies, err := m.Browser.GetCookies()
	if err != nil {
		return "", "", fmt.Errorf("read cookies: %w", err)
	}
	if len(cookies) == 0 {
		return "", "", fmt.Errorf("no cookies found after login")
	}

	parts := make([]string, 0, len(cookies))
	for _, c := range cookies {
		parts = append(parts, c.Name+"="+c.Value)
		if c.Name == "gp_access_token" {
			token = c.Value
		}
	}
	logger.Info("Captured %d cookies.", len(cookies))
	if token != "" {
		logger.Debug("Found gp_access_token cookie; will send as Bearer token.")
	}
	return strings.Join(parts, "; "), token, nil
}
