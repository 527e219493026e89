package core

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/caasmo/favicache/config"
	"github.com/caasmo/favicache/discover"
)

func resolveRequest(app *App, domain string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/favicon/"+domain, nil)
	rr := httptest.NewRecorder()
	app.Router().ServeHTTP(rr, req)
	return rr
}

func TestFaviconHandler_CacheHit(t *testing.T) {
	t.Parallel()

	mc := newMockCache()
	mc.entries["example.com"] = IconEntry{
		Body:        []byte("cached-bytes"),
		ContentType: "image/x-icon",
	}
	finder := newMockFinder()

	app := newResolverApp(t, config.NewDefaultConfig(),
		WithCache(mc),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	rr := resolveRequest(app, "example.com")

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if got := rr.Body.String(); got != "cached-bytes" {
		t.Errorf("body got = %q, want cached bytes", got)
	}
	if got := rr.Header().Get("Content-Type"); got != "image/x-icon" {
		t.Errorf("Content-Type got = %q, want %q", got, "image/x-icon")
	}
	if got := rr.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("X-Cache got = %q, want HIT", got)
	}
	if !strings.HasSuffix(rr.Header().Get("X-Execution-Time"), "ms") {
		t.Errorf("X-Execution-Time got = %q, want ms suffix", rr.Header().Get("X-Execution-Time"))
	}
	if finder.callCount() != 0 {
		t.Errorf("discovery was attempted on a cache hit: %v", finder.calls)
	}
}

func TestFaviconHandler_InvalidDomainPlaceholder(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		domain     string
		wantLetter string
	}{
		{"not_a_domain", ">N<"},
		{"-.-", ">-<"},
		{"justoneword", ">J<"},
	}

	for _, tc := range testCases {
		t.Run(tc.domain, func(t *testing.T) {
			mc := newMockCache()
			finder := newMockFinder()
			app := newResolverApp(t, config.NewDefaultConfig(),
				WithCache(mc),
				WithIconFinder(finder),
				WithProxySource(&mockProxy{}),
			)

			rr := resolveRequest(app, tc.domain)

			if rr.Code != http.StatusNotFound {
				t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
			}
			if got := rr.Header().Get("Content-Type"); got != "image/svg+xml" {
				t.Errorf("Content-Type got = %q, want %q", got, "image/svg+xml")
			}
			if got := rr.Header().Get("Cache-Control"); got != "public, max-age=86400" {
				t.Errorf("Cache-Control got = %q, want day-long public", got)
			}
			if !strings.Contains(rr.Body.String(), tc.wantLetter) {
				t.Errorf("placeholder missing letter %q: %s", tc.wantLetter, rr.Body.String())
			}
			if finder.callCount() != 0 {
				t.Errorf("discovery was attempted for an invalid domain")
			}
			if mc.setCalls != 0 {
				t.Errorf("placeholder response was cached")
			}
		})
	}
}

func TestFaviconHandler_RemoteIconSuccess(t *testing.T) {
	t.Parallel()

	iconBytes := []byte("ico-file-contents")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/vnd.microsoft.icon")
		w.Write(iconBytes)
	}))
	defer srv.Close()

	mc := newMockCache()
	finder := newMockFinder()
	finder.icons["http://example.com"] = []discover.Icon{
		{Href: srv.URL + "/favicon.ico", Sizes: "16x16"},
		{Href: srv.URL + "/bigger.ico", Sizes: "512x512"},
	}

	app := newResolverApp(t, config.NewDefaultConfig(),
		WithCache(mc),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	rr := resolveRequest(app, "example.com")

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v (body %q)",
			rr.Code, http.StatusOK, rr.Body.String())
	}
	if got := rr.Body.String(); got != string(iconBytes) {
		t.Errorf("body got = %q, want icon bytes", got)
	}
	if got := rr.Header().Get("Content-Type"); got != "image/vnd.microsoft.icon" {
		t.Errorf("Content-Type got = %q, want %q", got, "image/vnd.microsoft.icon")
	}
	if got := rr.Header().Get("Content-Length"); got != strconv.Itoa(len(iconBytes)) {
		t.Errorf("Content-Length got = %q, want %d", got, len(iconBytes))
	}
	if got := rr.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("X-Cache got = %q, want MISS", got)
	}

	// First descriptor wins, no size-based ranking.
	entry, ok := mc.entries["example.com"]
	if !ok {
		t.Fatalf("resolved icon was not written to the cache")
	}
	if string(entry.Body) != string(iconBytes) {
		t.Errorf("cached body got = %q, want icon bytes", entry.Body)
	}
	if entry.ContentType != "image/vnd.microsoft.icon" {
		t.Errorf("cached content type got = %q", entry.ContentType)
	}
}

func TestFaviconHandler_HTTPSFallbackDiscovery(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png"))
	}))
	defer srv.Close()

	finder := newMockFinder()
	finder.errs["http://example.com"] = errors.New("connection refused")
	finder.icons["https://example.com"] = []discover.Icon{{Href: srv.URL + "/fav.png"}}

	app := newResolverApp(t, config.NewDefaultConfig(),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	rr := resolveRequest(app, "example.com")

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	wantCalls := []string{"http://example.com", "https://example.com"}
	if len(finder.calls) != len(wantCalls) {
		t.Fatalf("discovery calls got = %v, want %v", finder.calls, wantCalls)
	}
	for i := range wantCalls {
		if finder.calls[i] != wantCalls[i] {
			t.Errorf("discovery call[%d] got = %q, want %q", i, finder.calls[i], wantCalls[i])
		}
	}
}

func TestFaviconHandler_ProxyFallbackVerbatim(t *testing.T) {
	t.Parallel()

	proxy := &mockProxy{}
	app := newResolverApp(t, config.NewDefaultConfig(),
		WithIconFinder(newMockFinder()),
		WithProxySource(proxy),
	)

	rr := resolveRequest(app, "example.com")

	if !proxy.called {
		t.Fatalf("proxy fallback was not consulted")
	}
	if proxy.domain != "example.com" {
		t.Errorf("proxy got domain %q, want %q", proxy.domain, "example.com")
	}
	if got := rr.Body.String(); got != "proxied-icon-bytes" {
		t.Errorf("proxy body got = %q, want untouched passthrough", got)
	}
	if got := rr.Header().Get("X-Proxy-Source"); got != "upstream" {
		t.Errorf("proxy header got = %q, want untouched passthrough", got)
	}
	// The proxy owns the response: no resolver markers on top.
	if got := rr.Header().Get("X-Cache"); got != "" {
		t.Errorf("X-Cache got = %q, want unset on proxy path", got)
	}
}

func TestFaviconHandler_DataURI(t *testing.T) {
	t.Parallel()

	payload := []byte("fake-png-bytes")
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	mc := newMockCache()
	finder := newMockFinder()
	finder.icons["http://example.com"] = []discover.Icon{{Href: href}}

	app := newResolverApp(t, config.NewDefaultConfig(),
		WithCache(mc),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	rr := resolveRequest(app, "example.com")

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if got := rr.Body.String(); got != string(payload) {
		t.Errorf("body got = %q, want decoded payload", got)
	}
	if got := rr.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type got = %q, want %q", got, "image/png")
	}
	if got := rr.Header().Get("Content-Length"); got != strconv.Itoa(len(payload)) {
		t.Errorf("Content-Length got = %q, want %d on cached profile", got, len(payload))
	}
	if _, ok := mc.entries["example.com"]; !ok {
		t.Errorf("decoded icon was not written to the cache")
	}
}

func TestFaviconHandler_DataURI_EdgeProfile(t *testing.T) {
	t.Parallel()

	payload := []byte("fake-png-bytes")
	href := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	finder := newMockFinder()
	finder.icons["http://example.com"] = []discover.Icon{{Href: href}}

	app := newResolverApp(t, config.NewDefaultConfig(),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	rr := resolveRequest(app, "example.com")

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	if got := rr.Body.String(); got != string(payload) {
		t.Errorf("body got = %q, want decoded payload", got)
	}
	// The edge profile never set Content-Length on the data-URI path.
	if got := rr.Header().Get("Content-Length"); got != "" {
		t.Errorf("Content-Length got = %q, want unset on edge profile data path", got)
	}
	if got := rr.Header().Get("X-Cache"); got != "" {
		t.Errorf("X-Cache got = %q, want unset on edge profile", got)
	}
}

func TestFaviconHandler_EmptyDataURIPayload(t *testing.T) {
	t.Parallel()

	finder := newMockFinder()
	finder.icons["http://example.com"] = []discover.Icon{{Href: "data:image/png;base64,"}}

	app := newResolverApp(t, config.NewDefaultConfig(),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	rr := resolveRequest(app, "example.com")

	// The payload-less data-URI is fetched like a URL; the client rejects
	// the scheme and the failure surfaces as a 500.
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusInternalServerError)
	}
	if got := rr.Body.String(); got != fetchErrorBody {
		t.Errorf("body got = %q, want %q", got, fetchErrorBody)
	}
}

func TestFaviconHandler_UpstreamNotFoundPlaceholder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "icon is gone", http.StatusNotFound)
	}))
	defer srv.Close()

	mc := newMockCache()
	finder := newMockFinder()
	finder.icons["http://example.com"] = []discover.Icon{{Href: srv.URL + "/fav.ico"}}

	app := newResolverApp(t, config.NewDefaultConfig(),
		WithCache(mc),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	rr := resolveRequest(app, "example.com")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusNotFound)
	}
	if got := rr.Header().Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("Content-Type got = %q, want placeholder SVG, body %q", got, rr.Body.String())
	}
	if strings.Contains(rr.Body.String(), "icon is gone") {
		t.Errorf("upstream 404 body leaked through: %s", rr.Body.String())
	}
	if mc.setCalls != 0 {
		t.Errorf("placeholder response was cached")
	}
}

func TestFaviconHandler_TransportError500(t *testing.T) {
	t.Parallel()

	finder := newMockFinder()
	finder.icons["http://example.com"] = []discover.Icon{{Href: "http://127.0.0.1:1/fav.ico"}}

	app := newResolverApp(t, config.NewDefaultConfig(),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	rr := resolveRequest(app, "example.com")

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusInternalServerError)
	}
	if got := rr.Body.String(); got != fetchErrorBody {
		t.Errorf("body got = %q, want %q", got, fetchErrorBody)
	}
}

func TestFaviconHandler_EdgeProfileIdempotent(t *testing.T) {
	t.Parallel()

	iconBytes := []byte("stable-icon-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(iconBytes)
	}))
	defer srv.Close()

	finder := newMockFinder()
	finder.icons["http://example.com"] = []discover.Icon{{Href: srv.URL + "/fav.png"}}

	app := newResolverApp(t, config.NewDefaultConfig(),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	first := resolveRequest(app, "example.com")
	second := resolveRequest(app, "example.com")

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses got = %d, %d, want 200, 200", first.Code, second.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Errorf("repeated resolution produced different payloads")
	}
	// Without a cache every request re-resolves.
	if finder.callCount() != 2 {
		t.Errorf("discovery call count got = %d, want 2", finder.callCount())
	}
}

func TestFaviconHandler_ForwardsCleanedHeaders(t *testing.T) {
	t.Parallel()

	finder := newMockFinder()
	app := newResolverApp(t, config.NewDefaultConfig(),
		WithIconFinder(finder),
		WithProxySource(&mockProxy{}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/favicon/example.com", nil)
	req.Header.Set("User-Agent", "resolver-test")
	req.Header.Set("Content-Length", "99")
	rr := httptest.NewRecorder()
	app.Router().ServeHTTP(rr, req)

	if finder.lastHdr == nil {
		t.Fatalf("discovery did not receive headers")
	}
	if got := finder.lastHdr.Get("User-Agent"); got != "resolver-test" {
		t.Errorf("forwarded User-Agent got = %q, want %q", got, "resolver-test")
	}
	if got := finder.lastHdr.Get("Content-Length"); got != "" {
		t.Errorf("Content-Length forwarded to discovery: %q", got)
	}
}

func TestDecodeDataURI(t *testing.T) {
	t.Parallel()
	payload := base64.StdEncoding.EncodeToString([]byte("bytes"))

	testCases := []struct {
		name      string
		uri       string
		wantBody  string
		wantType  string
		wantOK    bool
		expectErr bool
	}{
		{
			name:     "png payload",
			uri:      "data:image/png;base64," + payload,
			wantBody: "bytes",
			wantType: "image/png",
			wantOK:   true,
		},
		{
			name:     "parameters after media type",
			uri:      "data:image/svg+xml;charset=utf-8;base64," + payload,
			wantBody: "bytes",
			wantType: "image/svg+xml",
			wantOK:   true,
		},
		{
			name:     "missing media type defaults",
			uri:      "data:;base64," + payload,
			wantBody: "bytes",
			wantType: "image/png",
			wantOK:   true,
		},
		{
			name:   "empty payload",
			uri:    "data:image/png;base64,",
			wantOK: false,
		},
		{
			name:   "no comma",
			uri:    "data:image/png;base64",
			wantOK: false,
		},
		{
			name:      "invalid base64",
			uri:       "data:image/png;base64,!!not-base64!!",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			body, mediaType, ok, err := decodeDataURI(tc.uri)

			if (err != nil) != tc.expectErr {
				t.Fatalf("decodeDataURI() error = %v, expectErr %v", err, tc.expectErr)
			}
			if tc.expectErr {
				return
			}
			if ok != tc.wantOK {
				t.Fatalf("decodeDataURI() ok = %v, want %v", ok, tc.wantOK)
			}
			if !ok {
				return
			}
			if string(body) != tc.wantBody {
				t.Errorf("body got = %q, want %q", body, tc.wantBody)
			}
			if mediaType != tc.wantType {
				t.Errorf("media type got = %q, want %q", mediaType, tc.wantType)
			}
		})
	}
}
