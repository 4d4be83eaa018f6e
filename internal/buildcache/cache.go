// Package buildcache lets extract skip a run when nothing it depends on has
// changed.
//
// A cached run is reused only when the snapshot document, the config file
// and the schema version all match and every recorded output still exists.
// Any mismatch means a full extraction.
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"gitlab.com/tozd/go/errors"
)

// SchemaVersion is bumped when the cache format or the surface format
// changes, so upgraded binaries never reuse stale outputs.
const SchemaVersion = 1

// Cache records what was true when extraction last succeeded.
type Cache struct {
	V int `json:"v"`

	// SnapshotHash is the SHA-256 hex digest of the snapshot document.
	SnapshotHash string `json:"snapshotHash"`

	// ConfigHash is the digest of the config file. Empty means no config
	// file was used.
	ConfigHash string `json:"configHash"`

	// Outputs are the files that must still exist for the cache to hold.
	Outputs []string `json:"outputs"`
}

// CachePath returns the cache file for an output file: a hidden sibling,
// "dist/surface.json" → "dist/.surface.typesurface-cache". Deleting the
// output directory drops the cache with it.
func CachePath(output string) string {
	dir := filepath.Dir(output)
	name := strings.TrimSuffix(filepath.Base(output), filepath.Ext(output))
	return filepath.Join(dir, "."+name+".typesurface-cache")
}

// Load reads a cache file. A missing or corrupt file is a cache miss and
// returns nil.
func Load(path string) *Cache {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}

	return &c
}

// Save writes the cache atomically (temp file, then rename).
func Save(path string, cache *Cache) error {
	data, err := json.Marshal(cache, jsontext.WithIndent("  "))
	if err != nil {
		return errors.Errorf("marshaling cache: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Errorf("creating cache directory %s: %w", dir, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Errorf("writing cache temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Errorf("renaming cache file: %w", err)
	}

	return nil
}

// Delete removes the cache file. Errors are ignored.
func Delete(path string) {
	os.Remove(path)
}

// IsValid reports whether the previous run can be reused:
//
//  1. schema version matches
//  2. snapshot and config hashes match
//  3. all outputs still exist
func (c *Cache) IsValid(snapshotHash, configHash string) bool {
	if c == nil {
		return false
	}
	if c.V != SchemaVersion {
		return false
	}
	if snapshotHash == "" || c.SnapshotHash != snapshotHash {
		return false
	}
	if c.ConfigHash != configHash {
		return false
	}
	for _, path := range c.Outputs {
		if _, err := os.Stat(path); err != nil {
			return false
		}
	}
	return true
}

// HashFile returns the SHA-256 hex digest of a file, or "" when it cannot be
// read.
func HashFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// New creates a Cache with the current schema version.
func New(snapshotHash, configHash string, outputs []string) *Cache {
	return &Cache{
		V:            SchemaVersion,
		SnapshotHash: snapshotHash,
		ConfigHash:   configHash,
		Outputs:      outputs,
	}
}
