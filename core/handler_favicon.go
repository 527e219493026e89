package core

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	cacheControlDay    = "public, max-age=86400"
	defaultContentType = "image/png"
	fetchErrorBody     = "Failed to fetch the icon"

	cacheStatusHit  = "HIT"
	cacheStatusMiss = "MISS"
)

// errIconStatus marks an icon fetch that answered with a non-success HTTP
// status. It degrades to the placeholder instead of a 500.
var errIconStatus = errors.New("icon fetch returned non-success status")

// FaviconHandler resolves the favicon for the domain path parameter.
// Endpoint: GET /api/favicon/{domain}
//
// Resolution order: cache, page discovery over http then https, proxy
// fallback. Invalid domains and dead icon links degrade to a generated SVG
// placeholder; only the final fetch/decode stage can produce a 500.
func (a *App) FaviconHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	raw := a.router.Param(r, "domain")
	domain := NormalizeDomain(raw)

	if a.stats != nil {
		a.stats.Observe(domain)
	}

	if a.cache != nil {
		if entry, ok := a.cache.Get(domain); ok {
			cacheEvents.WithLabelValues("hit").Inc()
			a.writeIcon(w, entry, cacheStatusHit, true, start)
			return
		}
		cacheEvents.WithLabelValues("miss").Inc()
	}

	if !ValidDomain(domain) {
		a.writePlaceholder(w, raw, start)
		return
	}

	hdr := outboundHeaders(r)

	icons, err := a.finder.Find(r.Context(), "http://"+domain, hdr)
	if err != nil {
		a.logger.Warn("favicon: http discovery failed", "domain", domain, "err", err)
		icons = nil
	}
	if len(icons) == 0 {
		icons, err = a.finder.Find(r.Context(), "https://"+domain, hdr)
		if err != nil {
			a.logger.Warn("favicon: https discovery failed", "domain", domain, "err", err)
			icons = nil
		}
	}

	if len(icons) == 0 {
		a.proxy.ServeIcon(w, r, domain)
		return
	}

	// No ranking by declared size or type: the first reference wins.
	icon := icons[0]
	if icon.Href == "" {
		a.writePlaceholder(w, raw, start)
		return
	}

	entry, fromData, err := a.retrieveIcon(r.Context(), icon.Href, hdr)
	if err != nil {
		if errors.Is(err, errIconStatus) {
			a.logger.Info("favicon: icon fetch degraded to placeholder", "domain", domain, "err", err)
			a.writePlaceholder(w, raw, start)
			return
		}
		a.logger.Error("favicon: icon retrieval failed", "domain", domain, "err", err)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, fetchErrorBody)
		return
	}

	if a.cache != nil {
		ttl := a.Config().Cache.TTL.Duration
		if !a.cache.SetWithTTL(domain, entry, int64(len(entry.Body)), ttl) {
			a.logger.Debug("favicon: cache write not admitted", "domain", domain)
		}
	}

	a.writeIcon(w, entry, cacheStatusMiss, !fromData, start)
}

// retrieveIcon turns an icon reference into bytes and a content type, either
// by decoding an inline data-URI or by fetching the URL. fromData reports
// which path produced the result.
func (a *App) retrieveIcon(ctx context.Context, href string, hdr http.Header) (entry IconEntry, fromData bool, err error) {
	if strings.HasPrefix(href, "data:") {
		body, mediaType, ok, derr := decodeDataURI(href)
		if derr != nil {
			return IconEntry{}, false, derr
		}
		if ok {
			return IconEntry{Body: body, ContentType: mediaType}, true, nil
		}
		// Data-URI with nothing after the comma: fall through and fetch the
		// href as if it were a regular URL. The client rejects the scheme
		// and the failure surfaces through the normal fetch error path.
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, href, nil)
	if err != nil {
		return IconEntry{}, false, fmt.Errorf("invalid icon url %q: %w", href, err)
	}
	for key, values := range hdr {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return IconEntry{}, false, fmt.Errorf("fetch icon %q: %w", href, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return IconEntry{}, false, fmt.Errorf("%w: %d from %q", errIconStatus, resp.StatusCode, href)
	}

	reader := io.Reader(resp.Body)
	if max := a.Config().Favicon.MaxIconBytes; max > 0 {
		reader = io.LimitReader(resp.Body, max)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return IconEntry{}, false, fmt.Errorf("read icon body from %q: %w", href, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}

	return IconEntry{Body: body, ContentType: contentType}, false, nil
}

// decodeDataURI extracts the base64 payload after the first comma and the
// media type from the "data:<type>;..." prefix. ok is false when there is
// no payload to decode.
func decodeDataURI(uri string) (body []byte, mediaType string, ok bool, err error) {
	meta, payload, found := strings.Cut(uri, ",")
	if !found || payload == "" {
		return nil, "", false, nil
	}

	body, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false, fmt.Errorf("decode data-uri payload: %w", err)
	}

	mediaType = strings.TrimPrefix(meta, "data:")
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	if mediaType == "" {
		mediaType = defaultContentType
	}

	return body, mediaType, true, nil
}

// writeIcon writes a resolved icon. withLength is false only on the edge
// profile's data-URI path, which historically never set Content-Length.
func (a *App) writeIcon(w http.ResponseWriter, entry IconEntry, cacheStatus string, withLength bool, start time.Time) {
	w.Header().Set("Cache-Control", cacheControlDay)
	w.Header().Set("Content-Type", entry.ContentType)
	if a.cache != nil || withLength {
		w.Header().Set("Content-Length", strconv.Itoa(len(entry.Body)))
	}
	if a.cache != nil {
		w.Header().Set("X-Cache", cacheStatus)
	}
	w.Header().Set("X-Execution-Time", executionTime(start))
	w.WriteHeader(http.StatusOK)
	w.Write(entry.Body)
}

// writePlaceholder writes the 404 SVG glyph. The letter comes from the
// original requested domain. Placeholders are never stored in the cache.
func (a *App) writePlaceholder(w http.ResponseWriter, originalDomain string, start time.Time) {
	svg := PlaceholderSVG(originalDomain, a.Config().Favicon.PlaceholderSize)

	w.Header().Set("Cache-Control", cacheControlDay)
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Content-Length", strconv.Itoa(len(svg)))
	w.Header().Set("X-Execution-Time", executionTime(start))
	w.WriteHeader(http.StatusNotFound)
	w.Write(svg)
}

func executionTime(start time.Time) string {
	return strconv.FormatInt(time.Since(start).Milliseconds(), 10) + "ms"
}
