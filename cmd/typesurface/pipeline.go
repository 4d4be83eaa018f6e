package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/tsgonest/typesurface/internal/config"
)

// TimingReport collects timing data for each extract phase.
type TimingReport struct {
	Config   time.Duration
	Snapshot time.Duration
	Resolve  time.Duration
	Write    time.Duration
	Total    time.Duration
}

// Print writes the timing breakdown to w.
func (t *TimingReport) Print(w io.Writer) {
	fmt.Fprintf(w, "\n--- timing ---\n")
	fmt.Fprintf(w, "  config:    %s\n", t.Config.Round(time.Millisecond))
	fmt.Fprintf(w, "  snapshot:  %s\n", t.Snapshot.Round(time.Millisecond))
	fmt.Fprintf(w, "  resolve:   %s\n", t.Resolve.Round(time.Millisecond))
	fmt.Fprintf(w, "  write:     %s\n", t.Write.Round(time.Millisecond))
	fmt.Fprintf(w, "  total:     %s\n", t.Total.Round(time.Millisecond))
}

// ConfigResult holds the result of loading a typesurface config file.
type ConfigResult struct {
	Config *config.Config
	Path   string // absolute path to the config file (empty if none found)
	Dir    string // directory relative paths resolve against (defaults to cwd)
}

// loadOrDiscoverConfig loads the config at configPath, or discovers one in
// cwd when configPath is empty. With no config file the defaults are used.
func loadOrDiscoverConfig(configPath, cwd string) (*ConfigResult, error) {
	result := &ConfigResult{Dir: cwd}

	path := configPath
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	if path == "" {
		path = config.Discover(cwd)
	}
	if path == "" {
		cfg := config.DefaultConfig()
		result.Config = &cfg
		return result, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	result.Config = cfg
	result.Path = path
	result.Dir = filepath.Dir(path)
	return result, nil
}

// resolvePath makes p absolute against dir. "-" and "" are kept as is.
func (r *ConfigResult) resolvePath(p string) string {
	if p == "" || p == "-" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(r.Dir, p)
}
