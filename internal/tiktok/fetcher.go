package tiktok

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	profileURLFormat = "https://www.tiktok.com/@%s"
	maxBodyBytes     = 4 << 20
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrBlocked         = errors.New("request blocked by tiktok")
)

// StatusError covers any unexpected non-success status that is neither
// a missing profile nor a block.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Status)
}

// HTTPClient lets tests substitute the transport.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// The header set mimics an ordinary desktop browser navigation so the
// page is served the same representations a real visitor would get.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Accept-Encoding":           "identity",
	"Connection":                "keep-alive",
	"Cache-Control":             "max-age=0",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"DNT":                       "1",
}

type Fetcher struct {
	client HTTPClient
}

// NewFetcher builds a fetcher; a nil client gets the default transport
// with a per-attempt timeout.
func NewFetcher(client HTTPClient) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Fetcher{client: client}
}

// FetchBio issues one GET against the public profile page and hands the
// body to the extractor. ok is false when the page was fetched fine but
// no bio could be recognized in it.
func (f *Fetcher) FetchBio(ctx context.Context, username string) (string, bool, error) {
	url := fmt.Sprintf(profileURLFormat, username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false, fmt.Errorf("build profile request: %w", err)
	}
	for key, value := range browserHeaders {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("fetch profile %s: %w", username, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", false, ErrProfileNotFound
	case resp.StatusCode == http.StatusForbidden:
		return "", false, ErrBlocked
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", false, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", false, fmt.Errorf("read profile page: %w", err)
	}

	bio, ok := ExtractBio(string(body))
	return bio, ok, nil
}
