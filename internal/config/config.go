// Package config loads typesurface project configuration.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"gitlab.com/tozd/go/errors"

	"github.com/tsgonest/typesurface/internal/component"
	"github.com/tsgonest/typesurface/internal/resolver"
)

// Config represents the typesurface configuration.
type Config struct {
	// Snapshot is the type snapshot document to read.
	Snapshot string `yaml:"snapshot"`
	// Output is the JSON file the surface is written to.
	Output string `yaml:"output"`
	// Include and Exclude select modules by path (glob, ** supported).
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude,omitempty"`
	PublicOnly bool     `yaml:"publicOnly,omitempty"`
	Workers    int      `yaml:"workers,omitempty"`
	LogLevel   string   `yaml:"logLevel,omitempty"` // debug, info, warn, error

	Resolve    ResolveConfig    `yaml:"resolve"`
	Components ComponentsConfig `yaml:"components"`
}

// ResolveConfig tunes type resolution.
type ResolveConfig struct {
	IncludeExternalTypes bool `yaml:"includeExternalTypes,omitempty"`
	MaxProperties        int  `yaml:"maxProperties,omitempty"`
	MaxDepth             int  `yaml:"maxDepth,omitempty"`
	MaxCallbackDepth     int  `yaml:"maxCallbackDepth,omitempty"`
	// ExcludeProperties are property name patterns dropped from every
	// object (e.g. "_*", "__internal*").
	ExcludeProperties []string `yaml:"excludeProperties,omitempty"`
	ExternalAllowList []string `yaml:"externalAllowList,omitempty"`
	// StrictVisibility keeps only exports documented @public when
	// PublicOnly is set.
	StrictVisibility           bool `yaml:"strictVisibility,omitempty"`
	ExactOptionalPropertyTypes bool `yaml:"exactOptionalPropertyTypes,omitempty"`
}

// ComponentsConfig configures view component detection.
type ComponentsConfig struct {
	ReturnTypes []string `yaml:"returnTypes,omitempty"`
}

// FileNames are the config files Discover looks for, in priority order.
var FileNames = []string{"typesurface.yaml", "typesurface.yml", "typesurface.json"}

var logLevels = []string{"debug", "info", "warn", "error"}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Snapshot: "typesurface.snapshot.yaml",
		Output:   "dist/surface.json",
		Include:  []string{"src/**/*.ts", "src/**/*.tsx"},
		Exclude:  []string{"**/*.test.ts", "**/*.spec.ts"},
		Workers:  1,
		LogLevel: "info",
		Resolve: ResolveConfig{
			MaxProperties:    resolver.DefaultMaxProperties,
			MaxDepth:         resolver.DefaultMaxDepth,
			MaxCallbackDepth: resolver.DefaultMaxCallbackDepth,
		},
		Components: ComponentsConfig{
			ReturnTypes: append([]string(nil), component.DefaultReturnTypeNames...),
		},
	}
}

// Discover returns the first config file found in dir, or "" when there is
// none.
func Discover(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load reads and parses a typesurface config file. YAML and JSON are both
// accepted; unknown keys are rejected.
func Load(path string) (*Config, error) {
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml", ".json":
	default:
		return nil, errors.Errorf("unsupported config file extension %q (use .yaml, .yml or .json)", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("failed to read config file %q: %w", path, err)
	}

	config := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.WithDetails(
			errors.Errorf("failed to parse config file %q: %w", path, err),
			"source", yaml.FormatError(err, false, true),
		)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Errorf("invalid config in %q: %w", path, err)
	}

	return &config, nil
}

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	result := c.ValidateDetailed()
	if !result.IsValid() {
		return errors.New(strings.Join(result.Errors, "; "))
	}
	return nil
}

// ResolverOptions builds resolver options from the resolve section.
func (c *Config) ResolverOptions() resolver.Options {
	opts := resolver.DefaultOptions()
	r := c.Resolve
	opts.IncludeExternalTypes = r.IncludeExternalTypes
	if r.MaxProperties > 0 {
		opts.MaxProperties = r.MaxProperties
	}
	if r.MaxDepth > 0 {
		opts.MaxDepth = r.MaxDepth
	}
	if r.MaxCallbackDepth > 0 {
		opts.MaxCallbackDepth = r.MaxCallbackDepth
	}
	if len(r.ExternalAllowList) > 0 {
		opts.ExternalAllowList = append(opts.ExternalAllowList, r.ExternalAllowList...)
	}
	if patterns := r.ExcludeProperties; len(patterns) > 0 {
		opts.ShouldInclude = func(name string, _ int) resolver.Decision {
			if MatchesNamePattern(name, patterns) {
				return resolver.Deny
			}
			return resolver.NoOpinion
		}
	}
	return opts
}

// ComponentOptions builds component detection options.
func (c *Config) ComponentOptions() component.Options {
	opts := component.DefaultOptions()
	if len(c.Components.ReturnTypes) > 0 {
		opts.ReturnTypeNames = c.Components.ReturnTypes
	}
	opts.ExactOptionalPropertyTypes = c.Resolve.ExactOptionalPropertyTypes
	return opts
}

// SelectModules filters module paths through the include and exclude
// patterns.
func (c *Config) SelectModules(modules []string) []string {
	var out []string
	for _, m := range modules {
		if MatchesGlob(m, c.Include, c.Exclude) {
			out = append(out, m)
		}
	}
	return out
}
