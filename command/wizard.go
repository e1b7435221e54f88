package command

import (
	"context"
	"path/filepath"

	"github.com/ss22219/aws-toolkit-vscode/creation"
	"github.com/ss22219/aws-toolkit-vscode/launchconfig"
	"github.com/ss22219/aws-toolkit-vscode/logutil"
	"github.com/ss22219/aws-toolkit-vscode/registry"
)

// staticWizard returns a selection assembled from command-line flags. The
// interactive wizard lives in the editor host; on the terminal every choice
// arrives as a flag, so the wizard step never prompts or cancels.
type staticWizard struct {
	selection *creation.Selection
}

func (w staticWizard) Run(ctx context.Context) (*creation.Selection, error) {
	return w.selection, nil
}

// registeringLookup adapts the template registry for registration polling.
// The editor host registers templates from a file watcher; on the terminal
// there is no watcher, so a miss triggers one registration attempt before
// the lookup.
type registeringLookup struct {
	registry *registry.TemplateRegistry
}

func (l *registeringLookup) Registered(path string) (*registry.TemplateItem, bool) {
	if item, ok := l.registry.Registered(path); ok {
		return item, true
	}
	if err := l.registry.Add(path); err != nil {
		logutil.Debug("template not registrable yet", "path", path, "error", err)
		return nil, false
	}
	return l.registry.Registered(path)
}

// projectCandidates produces one direct-invoke debug configuration template
// per registered resource of the new project's template.
type projectCandidates struct {
	projectName string
}

func (p *projectCandidates) DebugConfigTemplates(ctx context.Context, workspaceRoot string) ([]*launchconfig.DebugConfiguration, error) {
	templatePath := launchconfig.WorkspaceFolderVariable + "/" +
		filepath.ToSlash(filepath.Join(p.projectName, creation.TemplateFileName))

	reg := registry.ForWorkspace(workspaceRoot)
	item, ok := reg.Registered(filepath.Join(workspaceRoot, p.projectName, creation.TemplateFileName))
	if !ok {
		return []*launchconfig.DebugConfiguration{}, nil
	}

	configs := make([]*launchconfig.DebugConfiguration, 0, len(item.ResourceNames))
	for _, resource := range item.ResourceNames {
		configs = append(configs, &launchconfig.DebugConfiguration{
			Type:    launchconfig.ConfigType,
			Name:    p.projectName + ":" + resource,
			Request: launchconfig.RequestDirectInvoke,
			Invoke: launchconfig.InvokeTarget{
				Target:       launchconfig.TargetTemplate,
				TemplatePath: templatePath,
				LogicalID:    resource,
			},
		})
	}
	return configs, nil
}
