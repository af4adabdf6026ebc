package triage

import (
	"fmt"
	"strings"

	"locali/internal/config"
	"locali/internal/port"
)

// ProviderFactory creates a ContentClassifier from the triage config.
type ProviderFactory func(cfg *config.TriageConfig) (port.ContentClassifier, error)

// registry of classifier provider factories, populated by init() in each
// provider package.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a classifier provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewRemoteClassifier creates the configured remote classifier. It returns
// nil and no error when no API key is configured.
func NewRemoteClassifier(cfg *config.TriageConfig) (port.ContentClassifier, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil
	}
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown triage provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
