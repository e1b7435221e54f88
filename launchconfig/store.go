package launchconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ss22219/aws-toolkit-vscode/fileutil"
)

// Store persists debug configurations.
type Store interface {
	// DebugConfigurations returns all stored configurations.
	DebugConfigurations(ctx context.Context) ([]*DebugConfiguration, error)
	// AddDebugConfigurations appends configurations to the store.
	AddDebugConfigurations(ctx context.Context, configs []*DebugConfiguration) error
}

// launchFile is the on-disk launch.json document.
type launchFile struct {
	Version        string                `json:"version"`
	Configurations []*DebugConfiguration `json:"configurations"`
}

// launchFileVersion is the launch.json schema version written by the store.
const launchFileVersion = "0.2.0"

// FileStore stores configurations in <WorkspaceRoot>/.vscode/launch.json,
// writing atomically so a crashed run never corrupts the file.
type FileStore struct {
	WorkspaceRoot string
}

// NewFileStore creates a store rooted at the given workspace directory.
func NewFileStore(workspaceRoot string) *FileStore {
	return &FileStore{WorkspaceRoot: workspaceRoot}
}

func (s *FileStore) path() string {
	return filepath.Join(s.WorkspaceRoot, ".vscode", "launch.json")
}

// DebugConfigurations implements Store. A missing launch.json yields an
// empty list, not an error.
func (s *FileStore) DebugConfigurations(_ context.Context) ([]*DebugConfiguration, error) {
	var doc launchFile
	if err := fileutil.ReadJSON(s.path(), &doc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*DebugConfiguration{}, nil
		}
		return nil, err
	}
	if doc.Configurations == nil {
		return []*DebugConfiguration{}, nil
	}
	return doc.Configurations, nil
}

// AddDebugConfigurations implements Store.
func (s *FileStore) AddDebugConfigurations(ctx context.Context, configs []*DebugConfiguration) error {
	existing, err := s.DebugConfigurations(ctx)
	if err != nil {
		return fmt.Errorf("failed to load existing launch configurations: %w", err)
	}

	doc := launchFile{
		Version:        launchFileVersion,
		Configurations: append(existing, configs...),
	}

	if err := fileutil.EnsureDir(filepath.Dir(s.path())); err != nil {
		return err
	}
	return fileutil.AtomicWriteJSON(s.path(), doc)
}
