package core

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/caasmo/favicache/config"
	"github.com/caasmo/favicache/discover"
	"github.com/caasmo/favicache/router/servemux"
)

func nullLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockCache is an always-admitting map-backed cache.
type mockCache struct {
	mu       sync.Mutex
	entries  map[string]IconEntry
	setCalls int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]IconEntry)}
}

func (m *mockCache) Get(key string) (IconEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	return entry, ok
}

func (m *mockCache) SetWithTTL(key string, value IconEntry, cost int64, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	m.setCalls++
	return true
}

// mockFinder returns canned icons or errors keyed by page URL.
type mockFinder struct {
	mu      sync.Mutex
	icons   map[string][]discover.Icon
	errs    map[string]error
	calls   []string
	lastHdr http.Header
}

func newMockFinder() *mockFinder {
	return &mockFinder{
		icons: make(map[string][]discover.Icon),
		errs:  make(map[string]error),
	}
}

func (m *mockFinder) Find(ctx context.Context, pageURL string, hdr http.Header) ([]discover.Icon, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, pageURL)
	m.lastHdr = hdr.Clone()
	if err, ok := m.errs[pageURL]; ok {
		return nil, err
	}
	return m.icons[pageURL], nil
}

func (m *mockFinder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockProxy writes a distinctive response so tests can assert verbatim
// passthrough.
type mockProxy struct {
	called bool
	domain string
}

func (m *mockProxy) ServeIcon(w http.ResponseWriter, r *http.Request, domain string) {
	m.called = true
	m.domain = domain
	w.Header().Set("X-Proxy-Source", "upstream")
	w.Header().Set("Content-Type", "image/x-icon")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("proxied-icon-bytes"))
}

// newResolverApp builds an App dispatching through a real ServeMux router so
// the domain path parameter resolves.
func newResolverApp(t *testing.T, cfg *config.Config, opts ...Option) *App {
	t.Helper()

	base := []Option{
		WithConfigProvider(config.NewProvider(cfg)),
		WithRouter(servemux.New()),
		WithLogger(nullLogger()),
	}
	app, err := NewApp(append(base, opts...)...)
	if err != nil {
		t.Fatalf("failed to create app: %v", err)
	}
	app.Router().HandleFunc("/api/favicon/{domain}", app.FaviconHandler)
	return app
}
