package launchconfig

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// memoryStore is an in-memory Store test double.
type memoryStore struct {
	configs []*DebugConfiguration
	addErr  error
	adds    int
}

func (s *memoryStore) DebugConfigurations(context.Context) ([]*DebugConfiguration, error) {
	return s.configs, nil
}

func (s *memoryStore) AddDebugConfigurations(_ context.Context, configs []*DebugConfiguration) error {
	s.adds++
	if s.addErr != nil {
		return s.addErr
	}
	s.configs = append(s.configs, configs...)
	return nil
}

func templateConfig(name, templatePath string) *DebugConfiguration {
	return &DebugConfiguration{
		Type:    ConfigType,
		Name:    name,
		Request: RequestDirectInvoke,
		Invoke: InvokeTarget{
			Target:       TargetTemplate,
			TemplatePath: templatePath,
			LogicalID:    "HelloWorldFunction",
		},
	}
}

func TestReconcileMatchesPlaceholderPath(t *testing.T) {
	root := filepath.FromSlash("/w")
	target := filepath.FromSlash("/w/test.yaml")
	store := &memoryStore{}

	candidates := []*DebugConfiguration{
		templateConfig("match", "${workspaceFolder}/test.yaml"),
	}

	matched, err := Reconcile(context.Background(), candidates, root, target, "", store)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("matched = %d, want 1", len(matched))
	}
	if matched[0].Name != "match" {
		t.Errorf("matched config = %q", matched[0].Name)
	}
	if store.adds != 1 {
		t.Errorf("store.adds = %d, want 1", store.adds)
	}
}

func TestReconcileNoMatchReturnsEmptyNonNil(t *testing.T) {
	root := filepath.FromSlash("/w")
	target := filepath.FromSlash("/w/other.yaml")
	store := &memoryStore{}

	candidates := []*DebugConfiguration{
		templateConfig("no-match", "${workspaceFolder}/test.yaml"),
	}

	matched, err := Reconcile(context.Background(), candidates, root, target, "", store)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if matched == nil {
		t.Fatal("matched must be an empty slice, not nil")
	}
	if len(matched) != 0 {
		t.Errorf("matched = %d, want 0", len(matched))
	}
	if store.adds != 0 {
		t.Errorf("store.adds = %d, nothing should be persisted without matches", store.adds)
	}
}

func TestReconcileIgnoresCodeTargets(t *testing.T) {
	root := filepath.FromSlash("/w")
	target := filepath.FromSlash("/w/test.yaml")

	candidates := []*DebugConfiguration{
		{
			Type:    ConfigType,
			Name:    "code-target",
			Request: RequestDirectInvoke,
			Invoke: InvokeTarget{
				Target:        TargetCode,
				LambdaHandler: "app.handler",
				ProjectRoot:   "${workspaceFolder}",
			},
		},
		templateConfig("template-target", "${workspaceFolder}/test.yaml"),
	}

	matched, err := Reconcile(context.Background(), candidates, root, target, "", &memoryStore{})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if len(matched) != 1 || matched[0].Name != "template-target" {
		t.Errorf("matched = %+v, want only the template target", matched)
	}
}

func TestReconcileStampsRuntime(t *testing.T) {
	root := filepath.FromSlash("/w")
	target := filepath.FromSlash("/w/test.yaml")

	match := templateConfig("match", "${workspaceFolder}/test.yaml")
	other := templateConfig("other", "${workspaceFolder}/unrelated.yaml")

	matched, err := Reconcile(context.Background(), []*DebugConfiguration{match, other}, root, target, "someruntime", &memoryStore{})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	if len(matched) != 1 {
		t.Fatalf("matched = %d, want 1", len(matched))
	}
	if matched[0].Lambda == nil || matched[0].Lambda.Runtime != "someruntime" {
		t.Errorf("runtime not stamped: %+v", matched[0].Lambda)
	}
	if other.Lambda != nil {
		t.Error("unmatched config must not be mutated")
	}
}

func TestReconcilePersistFailurePropagates(t *testing.T) {
	root := filepath.FromSlash("/w")
	target := filepath.FromSlash("/w/test.yaml")
	storeErr := errors.New("disk full")
	store := &memoryStore{addErr: storeErr}

	candidates := []*DebugConfiguration{
		templateConfig("match", "${workspaceFolder}/test.yaml"),
	}

	matched, err := Reconcile(context.Background(), candidates, root, target, "", store)
	if !errors.Is(err, storeErr) {
		t.Fatalf("Reconcile() error = %v, want wrapped store error", err)
	}
	// The matched list is still returned for observation.
	if len(matched) != 1 {
		t.Errorf("matched = %d, want 1 even when persistence fails", len(matched))
	}
}
