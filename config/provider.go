package config

import "sync/atomic"

// Provider gives concurrent readers access to the current configuration.
// Updates swap the whole Config atomically; readers never see a partially
// written struct.
type Provider struct {
	cfg atomic.Pointer[Config]
}

func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		panic("config: NewProvider requires a non-nil config")
	}
	p := &Provider{}
	p.cfg.Store(cfg)
	return p
}

// Get returns the currently active configuration.
func (p *Provider) Get() *Config {
	return p.cfg.Load()
}

// Update publishes a new configuration. The caller must not mutate cfg
// afterwards.
func (p *Provider) Update(cfg *Config) {
	if cfg == nil {
		return
	}
	p.cfg.Store(cfg)
}
