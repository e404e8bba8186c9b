package config

import (
	"fmt"
	"os"

	"github.com/dgallion1/mdharvest/internal/mdparse"
	"gopkg.in/yaml.v3"
)

// Scrape holds the web scraper settings and the optional element pattern
// overrides, loaded from a YAML file.
type Scrape struct {
	StartURLs []string `yaml:"start_urls"`
	UserAgent string   `yaml:"user_agent"`
	Delay     float64  `yaml:"delay"` // Seconds between requests.

	// Kept as a raw node so rule order survives decoding; Go maps would
	// scramble it and rule order is first-match-wins significant.
	MarkdownElements yaml.Node `yaml:"markdown_elements"`
}

// DefaultScrape returns the settings used when no config file is given.
func DefaultScrape() Scrape {
	return Scrape{
		UserAgent: "Mozilla/5.0",
		Delay:     1.0,
	}
}

// LoadScrape reads and decodes the scrape config file. An empty path yields
// defaults. A missing or malformed file is an error: bad configuration is
// fatal, unlike bad content.
func LoadScrape(path string) (Scrape, error) {
	if path == "" {
		return DefaultScrape(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scrape{}, fmt.Errorf("read scrape config: %w", err)
	}

	cfg := DefaultScrape()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Scrape{}, fmt.Errorf("parse scrape config %s: %w", path, err)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0"
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	return cfg, nil
}

// PatternSpecs converts the markdown_elements mapping into an ordered rule
// list, preserving YAML document order. Returns nil when no overrides are
// configured, which callers treat as "use the defaults".
func (s Scrape) PatternSpecs() []mdparse.PatternSpec {
	if s.MarkdownElements.Kind != yaml.MappingNode {
		return nil
	}

	var specs []mdparse.PatternSpec
	content := s.MarkdownElements.Content
	for i := 0; i+1 < len(content); i += 2 {
		var spec mdparse.PatternSpec
		if err := content[i+1].Decode(&spec); err != nil {
			continue
		}
		spec.Kind = content[i].Value
		specs = append(specs, spec)
	}
	return specs
}
