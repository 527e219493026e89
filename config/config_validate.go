package config

import (
	"fmt"
	"net"
	"strings"
)

func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateCache(&cfg.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}
	if err := validateFavicon(&cfg.Favicon); err != nil {
		return fmt.Errorf("favicon config validation failed: %w", err)
	}
	if err := validateStats(&cfg.Stats); err != nil {
		return fmt.Errorf("stats config validation failed: %w", err)
	}
	return nil
}

// validateServer checks the Server configuration section.
// It ensures the Addr field is not empty and contains a valid host:port or :port format.
// If only a port is provided (e.g., ":8080"), it defaults the host to "localhost".
//
// Allowed formats:
//   - "host:port" (e.g., "example.com:8080", "127.0.0.1:8080", "[::1]:8080")
//   - ":port"     (e.g., ":8080" becomes "localhost:8080")
//
// The port part is mandatory.
func validateServer(server *Server) error {
	if server.Addr == "" {
		return fmt.Errorf("server address (Addr) cannot be empty")
	}

	host, port, err := net.SplitHostPort(server.Addr)
	if err != nil {
		// Check if it's just a port (e.g., ":8080")
		if strings.HasPrefix(server.Addr, ":") {
			port = strings.TrimPrefix(server.Addr, ":")
			host = "localhost" // Default host
		} else {
			return fmt.Errorf("invalid server address format '%s': %w", server.Addr, err)
		}
	}

	if port == "" {
		return fmt.Errorf("server address '%s' must include a port", server.Addr)
	}

	// Reconstruct the address with the defaulted host if necessary
	server.Addr = net.JoinHostPort(host, port)

	// Basic check: Ensure port is numeric (net.SplitHostPort doesn't guarantee this fully)
	if _, err := net.LookupPort("tcp", port); err != nil {
		return fmt.Errorf("invalid port '%s' in server address '%s': %w", port, server.Addr, err)
	}

	if server.EnableTLS {
		if server.CertData == "" || server.KeyData == "" {
			return fmt.Errorf("enable_tls requires both cert_data and key_data")
		}
	}

	return nil
}

func validateCache(cache *Cache) error {
	if !cache.Activated {
		return nil
	}
	if cache.TTL.Duration <= 0 {
		return fmt.Errorf("cache ttl must be positive when the cache is activated, got %s", cache.TTL.Duration)
	}
	if cache.SizeLevel == "" {
		return fmt.Errorf("cache size_level cannot be empty when the cache is activated")
	}
	return nil
}

func validateFavicon(fav *Favicon) error {
	if fav.RequestTimeout.Duration <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", fav.RequestTimeout.Duration)
	}
	if fav.MaxPageBytes <= 0 {
		return fmt.Errorf("max_page_bytes must be positive, got %d", fav.MaxPageBytes)
	}
	if fav.MaxIconBytes <= 0 {
		return fmt.Errorf("max_icon_bytes must be positive, got %d", fav.MaxIconBytes)
	}
	if fav.UpstreamURL != "" && strings.Count(fav.UpstreamURL, "%s") != 1 {
		return fmt.Errorf("upstream_url must contain exactly one %%s verb, got %q", fav.UpstreamURL)
	}
	if fav.PlaceholderSize <= 0 {
		return fmt.Errorf("placeholder_size must be positive, got %d", fav.PlaceholderSize)
	}
	return nil
}

func validateStats(stats *Stats) error {
	if !stats.Enabled {
		return nil
	}
	if stats.K <= 0 || stats.WindowSize <= 0 || stats.Width <= 0 || stats.Depth <= 0 {
		return fmt.Errorf("stats sketch dimensions (k, window_size, width, depth) must all be positive")
	}
	return nil
}
