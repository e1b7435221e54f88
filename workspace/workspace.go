// Package workspace manages the set of folders a multi-root workspace file
// tracks. The creation workflow registers freshly scaffolded projects here.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ss22219/aws-toolkit-vscode/fileutil"
	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// Folder is one root directory tracked by a workspace.
type Folder struct {
	// Path is the folder location. Relative paths are resolved against the
	// workspace file's directory.
	Path string `json:"path"`
	// Name is an optional display name.
	Name string `json:"name,omitempty"`
}

// Folders adds root folders to a workspace. suppressPrompt asks the host to
// skip any confirmation UI; file-backed implementations have no UI and
// ignore it.
type Folders interface {
	AddFolder(ctx context.Context, folder Folder, suppressPrompt bool) error
}

// workspaceFile mirrors the .code-workspace JSON layout. Unknown keys are
// preserved via Settings so rewriting the file does not drop user content.
type workspaceFile struct {
	Folders  []Folder       `json:"folders"`
	Settings map[string]any `json:"settings,omitempty"`
}

// FileWorkspace is a Folders implementation backed by a .code-workspace
// file. Folder additions are idempotent by resolved path.
type FileWorkspace struct {
	mu   sync.Mutex
	path string
}

// NewFileWorkspace returns a workspace backed by the file at path. The file
// is created on first write.
func NewFileWorkspace(path string) (*FileWorkspace, error) {
	if path == "" {
		return nil, errors.New("workspace file path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace file path: %w", err)
	}
	return &FileWorkspace{path: abs}, nil
}

// Path returns the workspace file location.
func (w *FileWorkspace) Path() string {
	return w.path
}

// AddFolder appends the folder to the workspace file unless an entry with
// the same resolved path already exists.
func (w *FileWorkspace) AddFolder(ctx context.Context, folder Folder, suppressPrompt bool) error {
	if folder.Path == "" {
		return errors.New("folder path is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := w.load()
	if err != nil {
		return err
	}

	target := w.resolve(folder.Path)
	for _, existing := range doc.Folders {
		if w.resolve(existing.Path) == target {
			logutil.Debug("folder already in workspace", "path", folder.Path)
			return nil
		}
	}

	doc.Folders = append(doc.Folders, folder)
	if err := w.save(doc); err != nil {
		return fmt.Errorf("saving workspace file: %w", err)
	}

	logutil.Info("added folder to workspace",
		"path", folder.Path,
		"workspaceFile", w.path)
	return nil
}

// ListFolders returns the folders currently tracked by the workspace file.
func (w *FileWorkspace) ListFolders() ([]Folder, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc, err := w.load()
	if err != nil {
		return nil, err
	}
	return doc.Folders, nil
}

func (w *FileWorkspace) load() (*workspaceFile, error) {
	if !fileutil.PathExists(w.path) {
		return &workspaceFile{}, nil
	}
	var doc workspaceFile
	if err := fileutil.ReadJSON(w.path, &doc); err != nil {
		return nil, fmt.Errorf("reading workspace file: %w", err)
	}
	return &doc, nil
}

func (w *FileWorkspace) save(doc *workspaceFile) error {
	if err := fileutil.EnsureDir(filepath.Dir(w.path)); err != nil {
		return err
	}
	return fileutil.AtomicWriteJSON(w.path, doc)
}

func (w *FileWorkspace) resolve(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(w.path), path)
	}
	return filepath.Clean(path)
}
