package launchconfig

import (
	"path/filepath"
	"runtime"
	"strings"
)

// WorkspaceFolderVariable is the placeholder external providers substitute
// for the workspace root in template paths.
const WorkspaceFolderVariable = "${workspaceFolder}"

// ResolvePath resolves a configuration path against the workspace root:
// ${workspaceFolder} placeholders are substituted, relative paths are joined
// onto the root, and the result is cleaned.
func ResolvePath(path, workspaceRoot string) string {
	resolved := strings.ReplaceAll(path, WorkspaceFolderVariable, workspaceRoot)
	resolved = filepath.FromSlash(resolved)
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(workspaceRoot, resolved)
	}
	return filepath.Clean(resolved)
}

// PathsEqual reports whether two paths identify the same file once both are
// resolved against the workspace root. Comparison is case-insensitive on
// platforms with case-insensitive filesystems.
func PathsEqual(a, b, workspaceRoot string) bool {
	resolvedA := ResolvePath(a, workspaceRoot)
	resolvedB := ResolvePath(b, workspaceRoot)

	if caseInsensitiveFilesystem() {
		return strings.EqualFold(resolvedA, resolvedB)
	}
	return resolvedA == resolvedB
}

func caseInsensitiveFilesystem() bool {
	return runtime.GOOS == "windows" || runtime.GOOS == "darwin"
}
