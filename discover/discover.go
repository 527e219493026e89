// Package discover fetches a page and extracts its declared icon link
// references (<link rel="icon" ...> and friends).
package discover

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Icon is one declared icon reference. Href is either an absolute URL,
// resolved against the final page URL, or an inline data-URI kept verbatim.
type Icon struct {
	Href  string `json:"href"`
	Sizes string `json:"sizes,omitempty"`
}

// relTokens are the link rel values that declare an icon. A rel attribute
// like "shortcut icon" matches through its "icon" token.
var relTokens = map[string]bool{
	"icon":                         true,
	"apple-touch-icon":             true,
	"apple-touch-icon-precomposed": true,
	"mask-icon":                    true,
}

// Finder discovers icon links on a page.
type Finder struct {
	client       *http.Client
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewFinder(client *http.Client, maxBodyBytes int64, logger *slog.Logger) *Finder {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Finder{
		client:       client,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// Find fetches pageURL with the given outbound headers and returns the icons
// declared in its markup, in document order. A page that parses but declares
// no icons yields an empty slice and no error.
func (f *Finder) Find(ctx context.Context, pageURL string, hdr http.Header) ([]Icon, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("discover: invalid page url %q: %w", pageURL, err)
	}
	for key, values := range hdr {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discover: fetch %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("discover: fetch %q: unexpected status %d", pageURL, resp.StatusCode)
	}

	// Relative hrefs resolve against the URL the body actually came from,
	// which may differ from pageURL after redirects.
	base := req.URL
	if resp.Request != nil && resp.Request.URL != nil {
		base = resp.Request.URL
	}

	body := io.Reader(resp.Body)
	if f.maxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBodyBytes)
	}

	icons := extractIcons(body, base)
	f.logger.Debug("icon discovery finished", "page", base.String(), "icons", len(icons))
	return icons, nil
}

// extractIcons tokenizes HTML and collects icon link references. Parse errors
// end the scan; whatever was collected before the error is still returned,
// since truncated pages are common and the head usually comes first.
func extractIcons(r io.Reader, base *url.URL) []Icon {
	icons := []Icon{}
	z := html.NewTokenizer(r)

	for {
		switch z.Next() {
		case html.ErrorToken:
			return icons
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag == "body" {
				// link tags live in the head; no point scanning further.
				return icons
			}
			if tag != "link" || !hasAttr {
				continue
			}

			var rel, href, sizes string
			for {
				key, val, more := z.TagAttr()
				switch string(key) {
				case "rel":
					rel = string(val)
				case "href":
					href = string(val)
				case "sizes":
					sizes = string(val)
				}
				if !more {
					break
				}
			}

			if href == "" || !isIconRel(rel) {
				continue
			}

			icons = append(icons, Icon{
				Href:  resolveHref(href, base),
				Sizes: sizes,
			})
		}
	}
}

func isIconRel(rel string) bool {
	for _, token := range strings.Fields(strings.ToLower(rel)) {
		if relTokens[token] {
			return true
		}
	}
	return false
}

// resolveHref makes href absolute against base. Data-URIs and malformed
// hrefs pass through untouched.
func resolveHref(href string, base *url.URL) string {
	if strings.HasPrefix(href, "data:") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil || base == nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
