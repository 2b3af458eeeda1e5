package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/kayz/sonar/internal/config"
	"github.com/kayz/sonar/internal/logger"
	"github.com/kayz/sonar/internal/security"
)

const fetchUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0.0.0 Safari/537.36"

const maxFetchBytes = 2 << 20 // 2MB per page

// BrowserFetcher fetches pages with a shared headless browser, falling back
// to a plain HTTP GET when the browser is unavailable or the page fails to
// render. The browser is launched lazily on first use.
type BrowserFetcher struct {
	timeout  time.Duration
	disabled bool

	mu      sync.Mutex
	browser *rod.Browser

	httpClient *http.Client
}

// NewBrowserFetcher creates a fetcher from browser config.
func NewBrowserFetcher(cfg config.BrowserConfig) *BrowserFetcher {
	timeout := time.Duration(cfg.PageLoadTimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 35 * time.Second
	}
	return &BrowserFetcher{
		timeout:    timeout,
		disabled:   cfg.Disabled,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch returns the raw markup for url. waitSelector, when non-empty, names
// an element the page must render before the markup is captured.
func (f *BrowserFetcher) Fetch(ctx context.Context, url, waitSelector string) (string, error) {
	if err := security.ValidateFetchURL(url); err != nil {
		return "", err
	}

	if !f.disabled {
		html, err := f.fetchWithBrowser(ctx, url, waitSelector)
		if err == nil {
			return html, nil
		}
		logger.Warn("[Fetch] browser fetch failed for %s: %v, falling back to http", url, err)
	}

	return f.fetchWithHTTP(ctx, url)
}

func (f *BrowserFetcher) fetchWithBrowser(ctx context.Context, url, waitSelector string) (string, error) {
	browser, err := f.getBrowser()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)
	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("wait load: %w", err)
	}
	if waitSelector != "" {
		if _, err := page.Element(waitSelector); err != nil {
			return "", fmt.Errorf("wait for %q: %w", waitSelector, err)
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("read page html: %w", err)
	}
	return html, nil
}

func (f *BrowserFetcher) getBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.browser != nil {
		return f.browser, nil
	}

	controlURL, err := launcher.New().
		Headless(true).
		NoSandbox(true).
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	f.browser = browser
	return f.browser, nil
}

func (f *BrowserFetcher) fetchWithHTTP(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Close shuts the shared browser down.
func (f *BrowserFetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.browser != nil {
		if err := f.browser.Close(); err != nil {
			logger.Debug("[Fetch] browser close: %v", err)
		}
		f.browser = nil
	}
}
