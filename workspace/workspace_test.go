package workspace

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ss22219/aws-toolkit-vscode/fileutil"
)

func newTestWorkspace(t *testing.T) *FileWorkspace {
	t.Helper()
	ws, err := NewFileWorkspace(filepath.Join(t.TempDir(), "project.code-workspace"))
	require.NoError(t, err)
	return ws
}

func TestNewFileWorkspaceRequiresPath(t *testing.T) {
	_, err := NewFileWorkspace("")
	assert.Error(t, err)
}

func TestAddFolderCreatesFile(t *testing.T) {
	ws := newTestWorkspace(t)

	err := ws.AddFolder(context.Background(), Folder{Path: "/projects/hello-sam", Name: "hello-sam"}, true)
	require.NoError(t, err)

	assert.True(t, fileutil.PathExists(ws.Path()))

	folders, err := ws.ListFolders()
	require.NoError(t, err)
	require.Len(t, folders, 1)
	assert.Equal(t, "/projects/hello-sam", folders[0].Path)
	assert.Equal(t, "hello-sam", folders[0].Name)
}

func TestAddFolderRequiresPath(t *testing.T) {
	ws := newTestWorkspace(t)
	err := ws.AddFolder(context.Background(), Folder{Name: "unnamed"}, false)
	assert.Error(t, err)
}

func TestAddFolderIsIdempotent(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()

	require.NoError(t, ws.AddFolder(ctx, Folder{Path: "/projects/app"}, false))
	require.NoError(t, ws.AddFolder(ctx, Folder{Path: "/projects/app", Name: "app"}, false))

	folders, err := ws.ListFolders()
	require.NoError(t, err)
	assert.Len(t, folders, 1)
}

func TestAddFolderResolvesRelativePaths(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()

	abs := filepath.Join(filepath.Dir(ws.Path()), "app")
	require.NoError(t, ws.AddFolder(ctx, Folder{Path: abs}, false))
	require.NoError(t, ws.AddFolder(ctx, Folder{Path: "app"}, false))

	folders, err := ws.ListFolders()
	require.NoError(t, err)
	assert.Len(t, folders, 1)
}

func TestAddFolderAppends(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx := context.Background()

	require.NoError(t, ws.AddFolder(ctx, Folder{Path: "/projects/one"}, false))
	require.NoError(t, ws.AddFolder(ctx, Folder{Path: "/projects/two"}, false))

	folders, err := ws.ListFolders()
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, "/projects/two", folders[1].Path)
}

func TestAddFolderCancelledContext(t *testing.T) {
	ws := newTestWorkspace(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ws.AddFolder(ctx, Folder{Path: "/projects/app"}, false)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListFoldersEmptyWorkspace(t *testing.T) {
	ws := newTestWorkspace(t)
	folders, err := ws.ListFolders()
	require.NoError(t, err)
	assert.Empty(t, folders)
}
