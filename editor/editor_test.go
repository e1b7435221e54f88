package editor

import (
	"runtime"
	"testing"
)

func TestValidateEditor(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		valid  bool
	}{
		{name: "empty", editor: "", valid: false},
		{name: "relative path", editor: "bin/editor", valid: false},
		{name: "shell injection", editor: "vim; rm -rf /", valid: false},
		{name: "spaces", editor: "my editor", valid: false},
		{name: "nonexistent command", editor: "definitely-not-an-editor-xyz", valid: false},
		{name: "missing absolute path", editor: "/nonexistent/path/to/editor", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := validateEditor(tt.editor)
			if (got != "") != tt.valid {
				t.Errorf("validateEditor(%q) = %q, want valid=%v", tt.editor, got, tt.valid)
			}
		})
	}
}

func TestValidateEditorAcceptsResolvableCommand(t *testing.T) {
	// "go" is resolvable wherever the tests run.
	if got := validateEditor("go"); got != "go" {
		t.Errorf("validateEditor(\"go\") = %q, want \"go\"", got)
	}
}

func TestEditorCandidatesNotEmpty(t *testing.T) {
	candidates := editorCandidates()
	if len(candidates) == 0 {
		t.Fatal("editorCandidates() is empty")
	}
	if runtime.GOOS != "windows" {
		for _, c := range candidates {
			if c == "notepad" {
				t.Error("notepad offered on a non-windows platform")
			}
		}
	}
}

func TestContainsPathSeparator(t *testing.T) {
	if !containsPathSeparator("a/b") {
		t.Error("containsPathSeparator(\"a/b\") = false")
	}
	if containsPathSeparator("vim") {
		t.Error("containsPathSeparator(\"vim\") = true")
	}
}

func TestOpenWithOptionsNoEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	t.Setenv("PATH", t.TempDir())

	err := OpenWithOptions("somefile.yaml", OpenOptions{})
	if err == nil {
		t.Error("OpenWithOptions() = nil with no editor available")
	}
}
