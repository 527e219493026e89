package config

import (
	"log/slog"
	"time"
)

// NewDefaultConfig creates a new Config with sensible defaults. The result
// validates cleanly and runs a cached-profile resolver on :8080.
func NewDefaultConfig() *Config {
	return &Config{
		Server: Server{
			Addr:                    ":8080",
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
			ReadTimeout:             Duration{Duration: 2 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 10 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			ClientIpProxyHeader:     "",
			EnableTLS:               false,
			CertData:                "",
			KeyData:                 "",
		},
		Log: Log{
			Level: LogLevel{Level: slog.LevelInfo},
			Request: LogRequest{
				Activated: true,
				Limits: LogRequestLimits{
					URILength:       512, // Minimum: 64
					UserAgentLength: 256, // Minimum: 32
					RefererLength:   512, // Minimum: 64
					RemoteIPLength:  64,  // Minimum: 15
				},
			},
		},
		Cache: Cache{
			Activated: true,
			TTL:       Duration{Duration: 24 * time.Hour},
			SizeLevel: "medium",
		},
		Favicon: Favicon{
			RequestTimeout:  Duration{Duration: 10 * time.Second},
			MaxPageBytes:    1 << 20, // 1MB of HTML is plenty for <head>
			MaxIconBytes:    5 << 20,
			UpstreamURL:     "https://icons.duckduckgo.com/ip3/%s.ico",
			PlaceholderSize: 100,
		},
		Metrics: Metrics{
			Enabled:    false,
			AllowedIPs: []string{"127.0.0.1"},
		},
		Stats: Stats{
			Enabled:    false,
			AllowedIPs: []string{"127.0.0.1"},
			K:          10,
			WindowSize: 60,
			Width:      1024,
			Depth:      3,
			TickSize:   100,
		},
	}
}
