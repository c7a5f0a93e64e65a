// Package fetch retrieves d3js.org documentation pages and Observable
// notebooks, converting HTML to Markdown and persisting everything through a
// TTL file cache. The search and extraction cores never reach the network:
// they only see content this package has already delivered.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/gallery"
	"github.com/starford/raido/internal/registry"
)

// NotebookAPIURL serves compiled notebook exports.
const NotebookAPIURL = "https://api.observablehq.com"

var excessNewlinesRe = regexp.MustCompile(`\n{3,}`)

// Client fetches upstream content with per-host rate limiting and caching.
type Client struct {
	http    *http.Client
	cache   *Cache
	logger  *slog.Logger
	rps     float64
	mu      sync.Mutex
	limiter map[string]*rate.Limiter

	docsBase    string
	notebookAPI string
	galleryURL  string
}

// NewClient builds a Client over the given cache. rps bounds outbound
// requests per second per upstream host.
func NewClient(cache *Cache, logger *slog.Logger, rps float64) *Client {
	return &Client{
		http:        &http.Client{Timeout: 30 * time.Second},
		cache:       cache,
		logger:      logger,
		rps:         rps,
		limiter:     make(map[string]*rate.Limiter),
		docsBase:    registry.BaseURL,
		notebookAPI: NotebookAPIURL,
		galleryURL:  gallery.GalleryURL,
	}
}

// SetBaseURLs overrides the upstream endpoints, for tests.
func (c *Client) SetBaseURLs(docs, notebookAPI, galleryURL string) {
	c.docsBase = docs
	c.notebookAPI = notebookAPI
	c.galleryURL = galleryURL
}

// wait blocks until the per-host rate limit admits one more request.
func (c *Client) wait(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("fetch: parse url: %w", err)
	}
	c.mu.Lock()
	lim, ok := c.limiter[u.Host]
	if !ok {
		lim = rate.NewLimiter(rate.Limit(c.rps), 1)
		c.limiter[u.Host] = lim
	}
	c.mu.Unlock()
	return lim.Wait(ctx)
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.wait(ctx, rawURL); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	c.logger.Debug("fetching", slog.String("url", rawURL))
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("fetch: %s: %w", rawURL, apperr.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch: %s: HTTP %d: %w", rawURL, resp.StatusCode, apperr.ErrUpstream)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read %s: %w", rawURL, err)
	}
	return body, nil
}

// Page returns a d3js.org documentation page as markdown, from cache when
// fresh. page is a path like "/d3-scale/linear".
func (c *Client) Page(ctx context.Context, page string) (string, error) {
	key := strings.TrimPrefix(page, "/") + ".md"
	if data, ok := c.cache.Read(key); ok {
		return string(data), nil
	}

	body, err := c.get(ctx, c.docsBase+page)
	if err != nil {
		return "", err
	}
	md, err := htmlToMarkdown(string(body))
	if err != nil {
		return "", fmt.Errorf("fetch: convert %s: %w", page, err)
	}
	if err := c.cache.Write(key, []byte(md)); err != nil {
		c.logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	c.logger.Info("cached page", slog.String("page", page), slog.Int("bytes", len(md)))
	return md, nil
}

// Notebook returns the compiled runtime export for an Observable path like
// "@d3/bar-chart/2".
func (c *Client) Notebook(ctx context.Context, path string) (string, error) {
	key := "examples/" + strings.TrimLeft(path, "@/") + ".js"
	if data, ok := c.cache.Read(key); ok {
		return string(data), nil
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/%s.js?v=4", c.notebookAPI, path))
	if err != nil {
		return "", err
	}
	if err := c.cache.Write(key, body); err != nil {
		c.logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	c.logger.Info("cached notebook", slog.String("path", path))
	return string(body), nil
}

// Gallery returns the example catalog, parsed from the Observable gallery
// and cached as JSON.
func (c *Client) Gallery(ctx context.Context) ([]gallery.Example, error) {
	const key = "_gallery.json"
	if data, ok := c.cache.Read(key); ok {
		var examples []gallery.Example
		if err := json.Unmarshal(data, &examples); err == nil {
			return examples, nil
		}
	}

	body, err := c.get(ctx, c.galleryURL)
	if err != nil {
		return nil, err
	}
	examples := gallery.Parse(string(body))
	if len(examples) == 0 {
		return nil, fmt.Errorf("fetch: no examples found in gallery page: %w", apperr.ErrUpstream)
	}
	if data, err := json.Marshal(examples); err == nil {
		if err := c.cache.Write(key, data); err != nil {
			c.logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
		}
	}
	c.logger.Info("cached gallery", slog.Int("examples", len(examples)))
	return examples, nil
}

// GetHTML fetches a raw HTML document (used by the registry drift check).
func (c *Client) GetHTML(ctx context.Context, rawURL string) (*goquery.Document, error) {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("fetch: parse %s: %w", rawURL, err)
	}
	return doc, nil
}

// htmlToMarkdown extracts the doc content from a d3js.org page and converts
// it. The site is VitePress: content lives in <main class="main">, with
// div.vp-doc and finally the whole body as fallbacks.
func htmlToMarkdown(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}

	sel := doc.Find("main.main")
	if sel.Length() == 0 {
		sel = doc.Find("div.vp-doc")
	}
	if sel.Length() == 0 {
		sel = doc.Find("body")
	}
	sel.Find("script, style, img").Remove()

	content, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		content = html
	}

	md, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(excessNewlinesRe.ReplaceAllString(md, "\n\n")), nil
}
