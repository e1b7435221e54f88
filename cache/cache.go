// Package cache provides thread-safe file-based caching with TTL and
// version invalidation. The toolkit uses it to remember SAM CLI detection
// results between runs.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/ss22219/aws-toolkit-vscode/fileutil"
)

// Options configures a cache Manager.
type Options struct {
	// Dir stores cache entry files.
	Dir string
	// TTL expires entries. Zero disables expiry.
	TTL time.Duration
	// Version invalidates entries written by other toolkit versions.
	Version string
}

// metadata is stamped onto every cache entry.
type metadata struct {
	CachedAt time.Time `json:"cachedAt"`
	Version  string    `json:"version,omitempty"`
}

// envelope is the on-disk format wrapping cached data with its metadata.
type envelope struct {
	Metadata metadata        `json:"_cache"`
	Data     json.RawMessage `json:"data"`
}

var keySanitizer = regexp.MustCompile(`[^a-zA-Z0-9_\-.]`)

// Manager reads and writes cache entries under a directory.
type Manager struct {
	dir     string
	ttl     time.Duration
	version string
	mu      sync.RWMutex
}

// NewManager creates a cache manager.
func NewManager(opts Options) *Manager {
	return &Manager{
		dir:     opts.Dir,
		ttl:     opts.TTL,
		version: opts.Version,
	}
}

// Get loads a cached value by key into target, which must be a pointer.
// Returns false on a miss, including expired or version-mismatched entries.
func (m *Manager) Get(key string, target interface{}) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cache file: %w", err)
	}

	var entry envelope
	if err := json.Unmarshal(data, &entry); err != nil {
		return false, fmt.Errorf("failed to parse cache file: %w", err)
	}

	if m.version != "" && entry.Metadata.Version != m.version {
		return false, nil
	}
	if m.ttl > 0 && time.Since(entry.Metadata.CachedAt) > m.ttl {
		return false, nil
	}

	if err := json.Unmarshal(entry.Data, target); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}
	return true, nil
}

// Set stores a value under key.
func (m *Manager) Set(key string, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := fileutil.EnsureDir(m.dir); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	rawData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	entry := envelope{
		Metadata: metadata{
			CachedAt: time.Now(),
			Version:  m.version,
		},
		Data: rawData,
	}
	return fileutil.AtomicWriteJSON(m.keyPath(key), entry)
}

// Invalidate removes a specific cache entry. Removing a missing entry is
// not an error.
func (m *Manager) Invalidate(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.Remove(m.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove cache entry: %w", err)
	}
	return nil
}

// Clear removes all cache entries in the cache directory.
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cache directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove cache file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (m *Manager) keyPath(key string) string {
	return filepath.Join(m.dir, keySanitizer.ReplaceAllString(key, "_")+".json")
}
