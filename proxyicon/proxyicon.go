// Package proxyicon proxies favicon requests to an external icon service.
// It is the last resort of the resolver: when page discovery yields nothing,
// the upstream's response is passed through verbatim and owns the outcome.
package proxyicon

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

type Client struct {
	client      *http.Client
	upstreamURL string // template with one %s verb for the domain
	logger      *slog.Logger
}

func New(client *http.Client, upstreamURL string, logger *slog.Logger) *Client {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		client:      client,
		upstreamURL: upstreamURL,
		logger:      logger,
	}
}

// ServeIcon fetches the upstream icon for domain and writes the upstream
// response to w untouched: status, headers and body. The caller must not
// write to w afterwards.
func (c *Client) ServeIcon(w http.ResponseWriter, r *http.Request, domain string) {
	if c.upstreamURL == "" {
		http.NotFound(w, r)
		return
	}

	target := fmt.Sprintf(c.upstreamURL, domain)
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		c.logger.Error("proxyicon: invalid upstream url", "url", target, "err", err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("proxyicon: upstream fetch failed", "domain", domain, "err", err)
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers are already out; nothing left to do but note it.
		c.logger.Warn("proxyicon: body copy interrupted", "domain", domain, "err", err)
	}
}
