// Package env builds subprocess environments. The toolkit uses it to layer
// its own variables, such as the SAM CLI telemetry opt-out, onto the
// inherited environment.
package env

import (
	"sort"
	"strings"
)

// MapToSlice converts an environment map to "KEY=VALUE" form, sorted by key
// for deterministic subprocess environments.
func MapToSlice(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}

	out := make([]string, 0, len(env))
	for key, value := range env {
		out = append(out, key+"="+value)
	}
	sort.Strings(out)
	return out
}

// SliceToMap converts "KEY=VALUE" entries to a map. Entries without "=" are
// skipped; later duplicates win, matching OS environment semantics.
func SliceToMap(envSlice []string) map[string]string {
	out := make(map[string]string, len(envSlice))
	for _, entry := range envSlice {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Overlay returns base with the override variables applied, replacing any
// existing entries for the same key. The input slices are not modified.
func Overlay(base []string, overrides map[string]string) []string {
	if len(overrides) == 0 {
		out := make([]string, len(base))
		copy(out, base)
		return out
	}

	merged := SliceToMap(base)
	for key, value := range overrides {
		merged[key] = value
	}
	return MapToSlice(merged)
}

// FilterByPrefix returns the entries of env whose keys start with prefix.
func FilterByPrefix(env map[string]string, prefix string) map[string]string {
	out := make(map[string]string)
	for key, value := range env {
		if strings.HasPrefix(key, prefix) {
			out[key] = value
		}
	}
	return out
}
