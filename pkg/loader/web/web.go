package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/OFFIS-RIT/plotline/pkg/loader"

	"codeberg.org/readeck/go-readability/v2"
	"golang.org/x/net/html/charset"
	"golang.org/x/sync/singleflight"
)

const maxWebBody = 32 << 20

// WebTextLoader loads content from web URLs. For HTML pages, readability
// extracts the main article text; other text responses are returned as is.
// Both are transcoded to UTF-8 based on the declared or sniffed charset.
type WebTextLoader struct {
	client *http.Client

	cache   map[string][]byte
	cacheMu sync.RWMutex
	group   singleflight.Group
}

// NewWebTextLoaderParams configures a WebTextLoader.
type NewWebTextLoaderParams struct {
	Client  *http.Client
	Timeout time.Duration
}

// NewWebTextLoader creates a new web loader. Timeout defaults to 30s when
// no Client is given.
func NewWebTextLoader(params NewWebTextLoaderParams) *WebTextLoader {
	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &WebTextLoader{
		client: client,
		cache:  make(map[string][]byte),
	}
}

// GetFileBytes fetches file.Path and extracts its readable text.
func (l *WebTextLoader) GetFileBytes(ctx context.Context, file loader.TextFile) ([]byte, error) {
	key := loader.CacheKey(file)

	l.cacheMu.RLock()
	if cached, ok := l.cache[key]; ok {
		l.cacheMu.RUnlock()
		return cached, nil
	}
	l.cacheMu.RUnlock()

	result, err, _ := l.group.Do(key, func() (any, error) {
		l.cacheMu.RLock()
		if cached, ok := l.cache[key]; ok {
			l.cacheMu.RUnlock()
			return cached, nil
		}
		l.cacheMu.RUnlock()

		result, err := l.fetch(ctx, file.Path)
		if err != nil {
			return nil, err
		}

		l.cacheMu.Lock()
		l.cache[key] = result
		l.cacheMu.Unlock()

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

func (l *WebTextLoader) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}
	if pageURL.Scheme != "http" && pageURL.Scheme != "https" {
		return nil, fmt.Errorf("%w: %s", loader.ErrUnsupportedSource, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch url: status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := charset.NewReader(io.LimitReader(resp.Body, maxWebBody), contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to detect charset: %w", err)
	}

	if strings.Contains(contentType, "text/html") {
		article, err := readability.FromReader(body, pageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse html: %w", err)
		}
		var builder strings.Builder
		if err := article.RenderText(&builder); err != nil {
			return nil, fmt.Errorf("failed to render article text: %w", err)
		}
		return []byte(builder.String()), nil
	}

	return io.ReadAll(body)
}
