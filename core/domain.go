package core

import (
	"net/http"
	"net/url"
	"regexp"
)

// domainPattern accepts one or more dash/alphanumeric labels separated by
// dots, ending in an alphanumeric run.
var domainPattern = regexp.MustCompile(`(?i)^([a-z0-9-]+\.)+[a-z0-9]+$`)

// NormalizeDomain extracts the hostname from the requested domain string by
// parsing it as a URL authority. Normalization is best-effort: when parsing
// fails or yields no hostname, the raw input is returned unmodified, so
// callers must not assume the result is valid DNS syntax.
func NormalizeDomain(raw string) string {
	u, err := url.Parse("http://" + raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}

// ValidDomain reports whether domain looks like a resolvable hostname.
func ValidDomain(domain string) bool {
	return domainPattern.MatchString(domain)
}

// outboundHeaders clones the inbound request headers for upstream fetches.
// Host and Content-Length are request-specific and would corrupt the
// outbound fetch, so they are stripped.
func outboundHeaders(r *http.Request) http.Header {
	hdr := r.Header.Clone()
	if hdr == nil {
		hdr = http.Header{}
	}
	hdr.Del("Host")
	hdr.Del("Content-Length")
	return hdr
}
