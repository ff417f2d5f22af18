package resource

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"zenkai/pkg/std"
)

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher fetches resources over HTTP/HTTPS or from disk, resolving
// relative URIs against a base.
type DefaultFetcher struct {
	baseURL string
	timeout time.Duration
}

// NewFetcher creates a DefaultFetcher with the given base, which may be a
// URL or a directory. A zero timeout uses std.DefaultTimeout.
func NewFetcher(baseURL string, timeout time.Duration) *DefaultFetcher {
	return &DefaultFetcher{baseURL: baseURL, timeout: timeout}
}

// Fetch retrieves the resource at the given URI.
func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	if std.IsNetworkURL(uri) || std.IsNetworkURL(f.baseURL) {
		resolved := uri
		if !std.IsNetworkURL(uri) {
			resolved = std.ResolveURL(f.baseURL, uri)
		}
		resp, err := std.Fetch(ctx, resolved, f.timeout)
		if err != nil {
			return nil, "", err
		}
		return resp.Body, resp.ContentType, nil
	}

	path := strings.TrimPrefix(uri, "file://")
	if !filepath.IsAbs(path) && f.baseURL != "" {
		path = filepath.Join(f.baseURL, path)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", errors.Wrapf(err, "reading %s", path)
	}
	return body, contentTypeOf(path), nil
}

func contentTypeOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return "text/css"
	case ".js":
		return "text/javascript"
	case ".html", ".htm":
		return "text/html"
	}
	return ""
}

// FetchCSS fetches a stylesheet URI and returns its text content.
// Returns an error if the content type does not look like CSS or text.
func FetchCSS(ctx context.Context, f Fetcher, uri string) (string, error) {
	body, contentType, err := f.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	ct := strings.ToLower(contentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") && !strings.Contains(ct, "css") {
		return "", errors.Errorf("unexpected content type for CSS: %s", contentType)
	}
	return string(body), nil
}
