package providers

import (
	"fmt"
	"net/url"

	"sctr/internal/config"
)

// NewExtractor builds the extraction client described by cfg.
func NewExtractor(cfg config.Config) (*HTTPExtractor, error) {
	endpoint := cfg.ValidateURL()
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid extraction service url %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported extraction service scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("extraction service url %q has no host", endpoint)
	}
	return NewHTTPExtractor(endpoint, cfg.RequestTimeout), nil
}
