package launchconfig

import (
	"context"
	"fmt"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// Reconcile filters candidates to the template-targeted configurations whose
// template path resolves to targetPath under workspaceRoot. When runtime is
// non-empty it is stamped onto every matched configuration in place. The
// matched list is persisted through store and returned to the caller whether
// or not persistence succeeded; persistence failures are returned as the
// error and never swallowed.
//
// An empty returned slice is non-nil, so callers can distinguish "nothing
// matched" from "reconciliation not attempted".
func Reconcile(ctx context.Context, candidates []*DebugConfiguration, workspaceRoot, targetPath, runtime string, store Store) ([]*DebugConfiguration, error) {
	matched := make([]*DebugConfiguration, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.IsTemplateTarget() {
			continue
		}
		if PathsEqual(candidate.Invoke.TemplatePath, targetPath, workspaceRoot) {
			matched = append(matched, candidate)
		}
	}

	logutil.Debug("reconciled launch configurations",
		"candidates", len(candidates),
		"matched", len(matched),
		"target", targetPath,
	)

	if runtime != "" {
		for _, config := range matched {
			config.SetRuntime(runtime)
		}
	}

	if len(matched) == 0 {
		return matched, nil
	}

	if err := store.AddDebugConfigurations(ctx, matched); err != nil {
		return matched, fmt.Errorf("failed to persist launch configurations: %w", err)
	}

	return matched, nil
}
