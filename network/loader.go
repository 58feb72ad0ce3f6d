package network

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"sync"
)

// ErrStatus is returned when an HTTP fetch ends with an error status.
var ErrStatus = errors.New("network: unexpected status")

// Resource is a loaded dialog input.
type Resource struct {
	URL         string
	Content     []byte
	ContentType string
	Charset     string
	StatusCode  int
	Cached      bool
}

// AsString returns the resource content as a string.
func (r *Resource) AsString() string {
	return string(r.Content)
}

// Extension returns the file extension of the resource URL, falling back
// to the one implied by its media type.
func (r *Resource) Extension() string {
	if !IsDataURL(r.URL) {
		if ext := Extension(r.URL); ext != "" {
			return ext
		}
	}
	return ExtensionForMediaType(r.ContentType)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache replaces the loader's cache.
func WithCache(cache *Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = cache
	}
}

// WithBaseURL sets the URL relative references are resolved against.
func WithBaseURL(base string) LoaderOption {
	return func(l *Loader) {
		l.baseURL = base
	}
}

// Loader loads resources from data URLs, the local filesystem or HTTP.
type Loader struct {
	client  *Client
	cache   *Cache
	baseURL string

	mu sync.RWMutex
}

// NewLoader creates a new resource loader. A nil client is created on the
// first HTTP fetch.
func NewLoader(client *Client, opts ...LoaderOption) *Loader {
	l := &Loader{
		client: client,
		cache:  NewCache(100),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SetBaseURL sets the base URL for resolving relative references.
func (l *Loader) SetBaseURL(baseURL string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.baseURL = baseURL
}

// BaseURL returns the current base URL.
func (l *Loader) BaseURL() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.baseURL
}

// Load fetches ref. Plain paths and file URLs are read from disk; http and
// https URLs go through the client and the cache.
func (l *Loader) Load(ctx context.Context, ref string) (*Resource, error) {
	if IsDataURL(ref) {
		return loadDataURL(ref)
	}

	if base := l.BaseURL(); base != "" {
		resolved, err := ResolveURL(base, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", ref, err)
		}
		ref = resolved
	}

	u, err := url.Parse(ref)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return loadFile(ref, ref)
	}
	switch u.Scheme {
	case "file":
		return loadFile(ref, u.Path)
	case "http", "https":
		return l.loadFromHTTP(ctx, ref)
	}
	return nil, fmt.Errorf("unsupported URL scheme %q", u.Scheme)
}

// ClearCache clears the loader's cache.
func (l *Loader) ClearCache() {
	l.cache.Clear()
}

func loadDataURL(ref string) (*Resource, error) {
	dataURL, err := ParseDataURL(ref)
	if err != nil {
		return nil, err
	}
	return &Resource{
		URL:         ref,
		Content:     dataURL.Data,
		ContentType: dataURL.MediaType,
		Charset:     dataURL.Charset,
		StatusCode:  200,
	}, nil
}

func loadFile(ref, path string) (*Resource, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &Resource{
		URL:         ref,
		Content:     content,
		ContentType: mediaTypeForExtension(Extension(path)),
		StatusCode:  200,
	}, nil
}

func (l *Loader) loadFromHTTP(ctx context.Context, ref string) (*Resource, error) {
	if entry, ok := l.cache.Get(ref); ok {
		res := *entry.Resource
		res.Cached = true
		return &res, nil
	}

	l.mu.Lock()
	if l.client == nil {
		client, err := NewClient()
		if err != nil {
			l.mu.Unlock()
			return nil, err
		}
		l.client = client
	}
	client := l.client
	l.mu.Unlock()

	resp, err := client.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s: %s", ErrStatus, ref, resp.Status)
	}

	mediaType, charset := ParseContentType(resp.ContentType)
	res := &Resource{
		URL:         ref,
		Content:     resp.Body,
		ContentType: mediaType,
		Charset:     charset,
		StatusCode:  resp.StatusCode,
	}
	l.cache.Set(ref, res, resp.Headers)
	return res, nil
}

func mediaTypeForExtension(ext string) string {
	switch ext {
	case "json":
		return "application/json"
	case "yaml", "yml":
		return "application/yaml"
	case "toml":
		return "application/toml"
	case "html", "htm":
		return "text/html"
	case "js", "mjs":
		return "text/javascript"
	}
	return "application/octet-stream"
}
