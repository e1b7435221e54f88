// Package editor opens files in the user's preferred editor. The create
// command uses it to open a freshly scaffolded template for review.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
)

// OpenOptions configures how a file is opened.
type OpenOptions struct {
	// Editor overrides editor detection. When empty the EDITOR and VISUAL
	// environment variables are consulted, then a platform candidate list.
	Editor string

	// WaitForClose blocks until the editor process exits.
	WaitForClose bool
}

// Open opens the file in the user's preferred editor without waiting for
// the editor to exit.
func Open(path string) error {
	return OpenWithOptions(path, OpenOptions{})
}

// OpenWithOptions opens a file with custom options.
func OpenWithOptions(path string, opts OpenOptions) error {
	chosen := opts.Editor
	if chosen == "" {
		chosen = detectEditor()
	}
	if chosen == "" {
		return fmt.Errorf("no editor found; set the EDITOR or VISUAL environment variable")
	}

	cmd := exec.Command(chosen, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if opts.WaitForClose {
		return cmd.Run()
	}
	return cmd.Start()
}

// editorNamePattern limits bare command names to safe characters.
var editorNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// detectEditor finds an available editor, preferring EDITOR and VISUAL.
func detectEditor() string {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if value := os.Getenv(env); value != "" {
			if validated := validateEditor(value); validated != "" {
				return validated
			}
		}
	}

	for _, candidate := range editorCandidates() {
		if _, err := exec.LookPath(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// validateEditor accepts only simple command names resolvable in PATH or
// absolute paths to an existing executable. Relative paths and shell
// metacharacters from the environment are rejected.
func validateEditor(editor string) string {
	if editor == "" {
		return ""
	}

	if !filepath.IsAbs(editor) {
		if containsPathSeparator(editor) || !editorNamePattern.MatchString(editor) {
			return ""
		}
	}

	if _, err := exec.LookPath(editor); err == nil {
		return editor
	}
	return ""
}

func containsPathSeparator(s string) bool {
	for _, c := range s {
		if c == '/' || c == filepath.Separator {
			return true
		}
	}
	return false
}

// editorCandidates returns a prioritized per-platform editor list.
func editorCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"code", "notepad"}
	case "darwin":
		return []string{"code", "subl", "nano", "vim", "open"}
	default:
		return []string{"code", "subl", "nano", "vim", "vi", "xdg-open"}
	}
}
