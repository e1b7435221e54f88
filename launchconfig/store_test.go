package launchconfig

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ss22219/aws-toolkit-vscode/fileutil"
)

func TestFileStoreMissingFile(t *testing.T) {
	store := NewFileStore(t.TempDir())

	configs, err := store.DebugConfigurations(context.Background())
	if err != nil {
		t.Fatalf("DebugConfigurations() error = %v", err)
	}
	if configs == nil || len(configs) != 0 {
		t.Errorf("configs = %v, want empty non-nil slice", configs)
	}
}

func TestFileStoreAddAndReadBack(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)
	ctx := context.Background()

	added := []*DebugConfiguration{
		templateConfig("first", "${workspaceFolder}/template.yaml"),
	}
	if err := store.AddDebugConfigurations(ctx, added); err != nil {
		t.Fatalf("AddDebugConfigurations() error = %v", err)
	}

	configs, err := store.DebugConfigurations(ctx)
	if err != nil {
		t.Fatalf("DebugConfigurations() error = %v", err)
	}
	if len(configs) != 1 {
		t.Fatalf("configs = %d, want 1", len(configs))
	}
	if configs[0].Name != "first" || configs[0].Invoke.LogicalID != "HelloWorldFunction" {
		t.Errorf("round-trip mismatch: %+v", configs[0])
	}
}

func TestFileStoreAppendsToExisting(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)
	ctx := context.Background()

	if err := store.AddDebugConfigurations(ctx, []*DebugConfiguration{templateConfig("a", "a.yaml")}); err != nil {
		t.Fatalf("first add error = %v", err)
	}
	if err := store.AddDebugConfigurations(ctx, []*DebugConfiguration{templateConfig("b", "b.yaml")}); err != nil {
		t.Fatalf("second add error = %v", err)
	}

	configs, err := store.DebugConfigurations(ctx)
	if err != nil {
		t.Fatalf("DebugConfigurations() error = %v", err)
	}
	if len(configs) != 2 {
		t.Fatalf("configs = %d, want 2", len(configs))
	}
	if configs[0].Name != "a" || configs[1].Name != "b" {
		t.Errorf("order not preserved: %+v", configs)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	root := t.TempDir()
	vscodePath := filepath.Join(root, ".vscode")
	if err := fileutil.EnsureDir(vscodePath); err != nil {
		t.Fatalf("EnsureDir() error = %v", err)
	}
	if err := fileutil.AtomicWriteFile(filepath.Join(vscodePath, "launch.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile() error = %v", err)
	}

	store := NewFileStore(root)
	if _, err := store.DebugConfigurations(context.Background()); err == nil {
		t.Fatal("expected parse error for corrupt launch.json")
	}
}
