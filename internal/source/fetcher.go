package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultUserAgent = "civics-quiz-refresh/1.0 (+https://github.com/mind-engage/civics-quiz)"
	maxBodyBytes     = 2 << 20
)

// Fetcher retrieves reference pages and returns them sanitized for an LLM.
// It never retries and never caches.
type Fetcher struct {
	HTTP      *http.Client
	UserAgent string
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		HTTP:      &http.Client{Timeout: timeout},
		UserAgent: DefaultUserAgent,
	}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", url, err)
	}
	ua := f.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	hc := f.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	res, err := hc.Do(req)
	if err != nil {
		return "", &UnreachableError{URL: url, Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return "", &UnavailableError{URL: url, Status: res.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return "", &UnreachableError{URL: url, Err: err}
	}
	return Sanitize(body)
}
