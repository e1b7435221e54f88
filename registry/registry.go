// Package registry indexes recognized SAM template files per workspace.
// NOTE: This package uses in-memory storage only. No files are persisted.
// Registrations are transient and only valid while the host process runs.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// TemplateItem represents one registered template file.
type TemplateItem struct {
	// Path is the normalized absolute template path.
	Path string `json:"path"`
	// ResourceNames are the logical IDs declared in the template.
	ResourceNames []string `json:"resourceNames"`
	// RegisteredAt is when the item entered the registry.
	RegisteredAt time.Time `json:"registeredAt"`
}

// TemplateRegistry manages the registered templates for one workspace.
type TemplateRegistry struct {
	mu            sync.RWMutex
	items         map[string]*TemplateItem // key: normalized template path
	workspaceRoot string
}

var (
	registryCache   = make(map[string]*TemplateRegistry)
	registryCacheMu sync.RWMutex
)

// ForWorkspace returns the template registry instance for the given
// workspace root. If workspaceRoot is empty, uses the current working
// directory.
func ForWorkspace(workspaceRoot string) *TemplateRegistry {
	if workspaceRoot == "" {
		workspaceRoot = "."
	}

	absRoot, err := filepath.Abs(workspaceRoot)
	if err != nil {
		absRoot = workspaceRoot
	}

	registryCacheMu.Lock()
	defer registryCacheMu.Unlock()

	if reg, exists := registryCache[absRoot]; exists {
		return reg
	}

	reg := &TemplateRegistry{
		items:         make(map[string]*TemplateItem),
		workspaceRoot: absRoot,
	}

	logutil.Debug("created template registry", "workspaceRoot", absRoot)

	registryCache[absRoot] = reg
	return reg
}

// ResetAll clears every cached registry. Intended for tests and host
// shutdown so workflow logic never depends on ambient state surviving.
func ResetAll() {
	registryCacheMu.Lock()
	defer registryCacheMu.Unlock()
	registryCache = make(map[string]*TemplateRegistry)
}

// WorkspaceRoot returns the root directory this registry indexes.
func (r *TemplateRegistry) WorkspaceRoot() string {
	return r.workspaceRoot
}

// Add parses the template file at path and registers it. Files that do not
// declare any resources are rejected: the registry only tracks templates a
// debugger could target.
func (r *TemplateRegistry) Add(path string) error {
	normalized := normalizePath(path)

	data, err := os.ReadFile(normalized)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", normalized, err)
	}

	names, err := resourceNames(data)
	if err != nil {
		return fmt.Errorf("failed to parse template %s: %w", normalized, err)
	}
	if len(names) == 0 {
		return fmt.Errorf("template %s declares no resources", normalized)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[registryKey(normalized)] = &TemplateItem{
		Path:          normalized,
		ResourceNames: names,
		RegisteredAt:  time.Now(),
	}

	logutil.Debug("registered template", "path", normalized, "resources", len(names))
	return nil
}

// Registered returns the item for path, if present.
func (r *TemplateRegistry) Registered(path string) (*TemplateItem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[registryKey(normalizePath(path))]
	return item, ok
}

// Remove drops the item for path.
func (r *TemplateRegistry) Remove(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, registryKey(normalizePath(path)))
}

// Items returns a snapshot of all registered items.
func (r *TemplateRegistry) Items() []*TemplateItem {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*TemplateItem, 0, len(r.items))
	for _, item := range r.items {
		items = append(items, item)
	}
	return items
}

// samTemplate is the subset of a template document the registry inspects.
type samTemplate struct {
	Resources map[string]struct {
		Type string `yaml:"Type"`
	} `yaml:"Resources"`
}

// resourceNames extracts the logical resource IDs from template YAML.
func resourceNames(data []byte) ([]string, error) {
	var template samTemplate
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(template.Resources))
	for name := range template.Resources {
		names = append(names, name)
	}
	return names, nil
}

// normalizePath makes path absolute and cleaned.
func normalizePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return filepath.Clean(abs)
}

// registryKey folds case on case-insensitive filesystems so lookups match
// however the caller spelled the path.
func registryKey(normalized string) string {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		return strings.ToLower(normalized)
	}
	return normalized
}
