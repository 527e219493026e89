package config

import (
	"fmt"
	"log/slog"
	"time"
)

// Config is the full application configuration. A single instance is loaded
// at startup and published through a Provider; handlers read it per request.
type Config struct {
	Server  Server  `toml:"server"`
	Log     Log     `toml:"log"`
	Cache   Cache   `toml:"cache"`
	Favicon Favicon `toml:"favicon"`
	Metrics Metrics `toml:"metrics"`
	Stats   Stats   `toml:"stats"`

	// Source records where the config was loaded from. Not part of the file.
	Source string `toml:"-"`
}

type Server struct {
	Addr                    string   `toml:"addr"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`
	ClientIpProxyHeader     string   `toml:"client_ip_proxy_header"`
	EnableTLS               bool     `toml:"enable_tls"`
	CertData                string   `toml:"cert_data"` // PEM
	KeyData                 string   `toml:"key_data"`  // PEM
}

type Log struct {
	Level   LogLevel   `toml:"level"`
	Request LogRequest `toml:"request"`
}

type LogRequest struct {
	Activated bool             `toml:"activated"`
	Limits    LogRequestLimits `toml:"limits"`
}

type LogRequestLimits struct {
	URILength       int `toml:"uri_length"`
	UserAgentLength int `toml:"user_agent_length"`
	RefererLength   int `toml:"referer_length"`
	RemoteIPLength  int `toml:"remote_ip_length"`
}

// Cache configures the resolved-icon cache. Deactivated means the edge
// profile: every request re-resolves from scratch.
type Cache struct {
	Activated bool     `toml:"activated"`
	TTL       Duration `toml:"ttl"`
	SizeLevel string   `toml:"size_level"`
}

// Favicon configures the resolver itself and its two upstream collaborators
// (page discovery and the proxy-icon fallback).
type Favicon struct {
	// RequestTimeout bounds each outbound fetch (page, icon, proxy upstream).
	RequestTimeout Duration `toml:"request_timeout"`
	// MaxPageBytes caps how much of a discovered page is read for link tags.
	MaxPageBytes int64 `toml:"max_page_bytes"`
	// MaxIconBytes caps the size of a fetched icon body.
	MaxIconBytes int64 `toml:"max_icon_bytes"`
	// UpstreamURL is the proxy-favicon fallback endpoint. Must contain a
	// single %s verb which receives the requested domain.
	UpstreamURL string `toml:"upstream_url"`
	// PlaceholderSize is the width/height in px of the generated SVG glyph.
	PlaceholderSize int `toml:"placeholder_size"`
}

type Metrics struct {
	Enabled    bool     `toml:"enabled"`
	AllowedIPs []string `toml:"allowed_ips"`
}

// Stats configures the sliding top-k sketch of requested domains.
type Stats struct {
	Enabled    bool     `toml:"enabled"`
	AllowedIPs []string `toml:"allowed_ips"`
	K          int      `toml:"k"`
	WindowSize int      `toml:"window_size"`
	Width      int      `toml:"width"`
	Depth      int      `toml:"depth"`
	TickSize   uint64   `toml:"tick_size"`
}

// Duration wraps time.Duration for TOML (un)marshalling in "1h30m" form.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// LogLevel wraps slog.Level for TOML (un)marshalling ("DEBUG", "INFO", ...).
type LogLevel struct {
	slog.Level
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	return l.Level.UnmarshalText(text)
}

func (l LogLevel) MarshalText() ([]byte, error) {
	return l.Level.MarshalText()
}
