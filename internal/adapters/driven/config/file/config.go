// Package file loads geotag configuration from a TOML file.
//
// Example:
//
//	[gazetteer]
//	url = "http://localhost:9714"
//	timeout_seconds = 60
//
//	[query]
//	annotation_type = "org.texttechnologylab.annotation.LocationMention"
//	mode = "levenshtein"
//	result_selection = "first"
//	max_dist = 2
//	state_limit = 10000
//
//	[query.filter]
//	feature_class = "P"
package file

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/annolab/geotag/internal/adapters/driven/gazetteer/httpchannel"
	"github.com/annolab/geotag/internal/core/domain"
)

// Config is the on-disk configuration shape.
type Config struct {
	Gazetteer GazetteerConfig `toml:"gazetteer"`
	Query     QueryConfig     `toml:"query"`
}

// GazetteerConfig configures the HTTP channel to the lookup service.
type GazetteerConfig struct {
	URL            string `toml:"url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// QueryConfig configures span selection and matching.
type QueryConfig struct {
	AnnotationType  string        `toml:"annotation_type"`
	Mode            string        `toml:"mode"`
	ResultSelection string        `toml:"result_selection"`
	MaxDist         int           `toml:"max_dist"`
	StateLimit      int           `toml:"state_limit"`
	Filter          *FilterConfig `toml:"filter"`
}

// FilterConfig restricts matches by GeoNames attributes.
type FilterConfig struct {
	FeatureClass string `toml:"feature_class"`
	FeatureCode  string `toml:"feature_code"`
	CountryCode  string `toml:"country_code"`
}

// Load reads and parses a TOML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}

// TagConfig maps the file shape onto the typed configuration surface.
// Validation happens at query-build time, not here.
func (c *Config) TagConfig() domain.TagConfig {
	tc := domain.TagConfig{
		AnnotationType:  c.Query.AnnotationType,
		Mode:            domain.SearchMode(c.Query.Mode),
		ResultSelection: domain.ResultSelection(c.Query.ResultSelection),
		MaxDist:         c.Query.MaxDist,
		StateLimit:      c.Query.StateLimit,
	}
	if c.Query.Filter != nil {
		tc.Filter = &domain.ResultFilter{
			FeatureClass: c.Query.Filter.FeatureClass,
			FeatureCode:  c.Query.Filter.FeatureCode,
			CountryCode:  c.Query.Filter.CountryCode,
		}
	}
	return tc
}

// ChannelConfig maps the file shape onto the HTTP channel configuration.
func (c *Config) ChannelConfig() httpchannel.Config {
	return httpchannel.Config{
		BaseURL: c.Gazetteer.URL,
		Timeout: time.Duration(c.Gazetteer.TimeoutSeconds) * time.Second,
	}
}
