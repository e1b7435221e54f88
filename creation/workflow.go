package creation

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ss22219/aws-toolkit-vscode/launchconfig"
	"github.com/ss22219/aws-toolkit-vscode/logutil"
	"github.com/ss22219/aws-toolkit-vscode/notify"
	"github.com/ss22219/aws-toolkit-vscode/registry"
	"github.com/ss22219/aws-toolkit-vscode/retry"
	"github.com/ss22219/aws-toolkit-vscode/samcli"
	"github.com/ss22219/aws-toolkit-vscode/schemas"
	"github.com/ss22219/aws-toolkit-vscode/telemetry"
	"github.com/ss22219/aws-toolkit-vscode/workspace"
)

// State identifies a step of the creation workflow.
type State string

const (
	StateStart                       State = "Start"
	StateValidating                  State = "Validating"
	StateConfiguring                 State = "Configuring"
	StateInitializing                State = "Initializing"
	StateAwaitingSchemaDownload      State = "AwaitingSchemaDownload"
	StateRegisteringWorkspace        State = "RegisteringWorkspace"
	StatePollingTemplateRegistration State = "PollingTemplateRegistration"
	StateReconcilingLaunchConfig     State = "ReconcilingLaunchConfig"
	StateCompleted                   State = "Completed"
	StateFailed                      State = "Failed"
	StateCancelled                   State = "Cancelled"
)

// TemplateFileName is the template file the SAM CLI scaffolds at the
// project root.
const TemplateFileName = "template.yaml"

// Registration polling pace. The registry watcher usually picks the new
// template up within a second.
const (
	registrationPollInterval = 500 * time.Millisecond
	registrationPollTimeout  = 5000 * time.Millisecond
)

// HelpURL points users at the serverless application documentation when a
// degraded path needs a follow-up action.
const HelpURL = "https://docs.aws.amazon.com/toolkit-for-vscode/latest/userguide/serverless-apps.html"

// SchemaSelection carries the wizard's schema choice when the chosen
// template is schema-based.
type SchemaSelection struct {
	RegistryName  string
	SchemaName    string
	SchemaVersion string
	Language      string
}

// Selection is the wizard outcome: the init request plus an optional schema
// to download bindings for.
type Selection struct {
	Request samcli.InitRequest
	Schema  *SchemaSelection
}

// Wizard collects project parameters from the user. A nil Selection with a
// nil error means the user declined.
type Wizard interface {
	Run(ctx context.Context) (*Selection, error)
}

// TemplateLookup is the registry view the registration poll needs.
// *registry.TemplateRegistry satisfies it.
type TemplateLookup interface {
	Registered(path string) (*registry.TemplateItem, bool)
}

// CandidateProvider produces the debug configuration templates to reconcile
// against a newly created project.
type CandidateProvider interface {
	DebugConfigTemplates(ctx context.Context, workspaceRoot string) ([]*launchconfig.DebugConfiguration, error)
}

// Deps are the workflow's collaborators. All fields are required except
// Downloader, which may be nil when no schema templates are offered.
type Deps struct {
	Validator  samcli.Validator
	Invoker    samcli.Invoker
	// Env entries are layered onto the SAM CLI subprocess environment.
	Env        []string
	Wizard     Wizard
	Downloader schemas.CodeDownloader
	Folders    workspace.Folders
	Registry   TemplateLookup
	Candidates CandidateProvider
	Store      launchconfig.Store
	Notifier   notify.Notifier
	Telemetry  *telemetry.Recorder
}

func (d Deps) validate() error {
	switch {
	case d.Validator == nil:
		return errors.New("creation workflow: validator is required")
	case d.Invoker == nil:
		return errors.New("creation workflow: invoker is required")
	case d.Wizard == nil:
		return errors.New("creation workflow: wizard is required")
	case d.Folders == nil:
		return errors.New("creation workflow: workspace folders collaborator is required")
	case d.Registry == nil:
		return errors.New("creation workflow: template registry is required")
	case d.Candidates == nil:
		return errors.New("creation workflow: candidate provider is required")
	case d.Store == nil:
		return errors.New("creation workflow: launch config store is required")
	case d.Notifier == nil:
		return errors.New("creation workflow: notifier is required")
	case d.Telemetry == nil:
		return errors.New("creation workflow: telemetry recorder is required")
	}
	return nil
}

// Result reports where a run ended up and what it produced along the way.
type Result struct {
	State          State
	ProjectRoot    string
	TemplatePath   string
	MatchedConfigs []*launchconfig.DebugConfiguration
}

// Workflow drives one project creation from wizard to launch config. A
// Workflow is single-use: construct one per run.
type Workflow struct {
	deps Deps
	poll retry.Policy

	state   State
	outcome telemetry.CreateEvent
}

// New builds a workflow over the given collaborators.
func New(deps Deps) (*Workflow, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	return &Workflow{
		deps: deps,
		poll: retry.Policy{
			Interval: registrationPollInterval,
			Timeout:  registrationPollTimeout,
		},
		state: StateStart,
		outcome: telemetry.CreateEvent{
			Result: telemetry.ResultFailed,
			Reason: telemetry.ReasonUnknown,
		},
	}, nil
}

// State returns the workflow's current or terminal state.
func (w *Workflow) State() State {
	return w.state
}

// Run executes the workflow to a terminal state. Exactly one outcome event
// is recorded no matter how the run ends. Fatal errors are returned after
// the user has been notified; the degraded paths (registration timeout,
// empty reconciliation) warn the user and return a nil error.
func (w *Workflow) Run(ctx context.Context) (result *Result, err error) {
	result = &Result{}
	defer func() {
		result.State = w.state
		w.deps.Telemetry.Record(w.outcome)
	}()

	// Validating
	w.enter(StateValidating)
	cli, err := w.deps.Validator.DetectValidCli(ctx)
	if err != nil {
		return result, w.fail(ctx, "SAM CLI validation failed", err)
	}
	w.outcome.SamVersion = cli.Version

	// Configuring
	w.enter(StateConfiguring)
	selection, err := w.deps.Wizard.Run(ctx)
	if err != nil {
		return result, w.fail(ctx, "project configuration failed", err)
	}
	if selection == nil {
		w.state = StateCancelled
		w.outcome.Result = telemetry.ResultCancelled
		w.outcome.Reason = telemetry.ReasonUserCancelled
		logutil.Info("project creation cancelled by user")
		return result, nil
	}

	request := selection.Request
	w.outcome.PackageType = string(request.Project.PackageType())
	w.outcome.Runtime = request.Runtime()

	result.ProjectRoot = filepath.Join(request.Location, request.Name)
	result.TemplatePath = filepath.Join(result.ProjectRoot, TemplateFileName)

	// Initializing
	w.enter(StateInitializing)
	err = samcli.RunInit(ctx, request, samcli.Context{
		Validator: w.deps.Validator,
		Invoker:   w.deps.Invoker,
		Env:       w.deps.Env,
	})
	if err != nil {
		return result, w.fail(ctx, "project scaffolding failed", err)
	}

	// AwaitingSchemaDownload
	if selection.Schema != nil {
		w.enter(StateAwaitingSchemaDownload)
		if w.deps.Downloader == nil {
			return result, w.fail(ctx, "schema code download failed",
				errors.New("no schema code downloader configured"))
		}
		err = w.deps.Downloader.DownloadCode(ctx, schemas.DownloadRequest{
			RegistryName:         selection.Schema.RegistryName,
			SchemaName:           selection.Schema.SchemaName,
			SchemaVersion:        selection.Schema.SchemaVersion,
			Language:             selection.Schema.Language,
			DestinationDirectory: result.ProjectRoot,
		})
		if err != nil {
			return result, w.fail(ctx, "schema code download failed", err)
		}
	}

	// RegisteringWorkspace
	w.enter(StateRegisteringWorkspace)
	err = w.deps.Folders.AddFolder(ctx, workspace.Folder{
		Path: result.ProjectRoot,
		Name: request.Name,
	}, true)
	if err != nil {
		return result, w.fail(ctx, "adding project to workspace failed", err)
	}

	// PollingTemplateRegistration
	w.enter(StatePollingTemplateRegistration)
	err = retry.Poll(ctx, w.poll, func(ctx context.Context) (bool, error) {
		_, ok := w.deps.Registry.Registered(result.TemplatePath)
		return ok, nil
	})
	if err != nil {
		if errors.Is(err, retry.ErrTimeout) {
			return result, w.timeoutRegistration(ctx, result.TemplatePath)
		}
		return result, w.fail(ctx, "waiting for template registration failed", err)
	}

	// ReconcilingLaunchConfig
	w.enter(StateReconcilingLaunchConfig)
	candidates, err := w.deps.Candidates.DebugConfigTemplates(ctx, request.Location)
	if err != nil {
		return result, w.fail(ctx, "collecting debug configuration templates failed", err)
	}
	matched, err := launchconfig.Reconcile(ctx, candidates, request.Location,
		result.TemplatePath, request.Runtime(), w.deps.Store)
	if err != nil {
		return result, w.fail(ctx, "saving debug configurations failed", err)
	}
	result.MatchedConfigs = matched
	if len(matched) == 0 {
		w.warn(ctx, "No debug configurations matched the new project",
			"Create a launch configuration manually to debug this application.")
	}

	// Completed
	w.state = StateCompleted
	w.outcome.Result = telemetry.ResultSucceeded
	w.outcome.Reason = telemetry.ReasonComplete
	logutil.Info("project creation completed",
		"projectRoot", result.ProjectRoot,
		"matchedConfigs", len(matched))
	return result, nil
}

func (w *Workflow) enter(state State) {
	w.state = state
	logutil.Debug("creation workflow state", "state", string(state))
}

// fail moves the workflow to Failed, notifies the user once, and returns
// the wrapped error for the caller.
func (w *Workflow) fail(ctx context.Context, title string, cause error) error {
	failedState := w.state
	w.state = StateFailed
	w.outcome.Result = telemetry.ResultFailed
	w.outcome.Reason = telemetry.ReasonError

	logutil.Error("project creation failed",
		"failedState", string(failedState),
		"title", title,
		"error", cause)

	if err := w.deps.Notifier.Send(ctx, notify.Notification{
		Title:    title,
		Message:  "Project creation failed. Check the logs for details.",
		Severity: notify.SeverityError,
	}); err != nil {
		logutil.Warn("failed to deliver error notification", "error", err)
	}

	return fmt.Errorf("%s: %w", title, cause)
}

// timeoutRegistration handles the registration poll expiring. The scaffolded
// project stays on disk; only automatic debug configuration generation is
// lost, so the user gets a warning with a help link rather than an error.
func (w *Workflow) timeoutRegistration(ctx context.Context, templatePath string) error {
	w.state = StateFailed
	w.outcome.Result = telemetry.ResultFailed
	w.outcome.Reason = telemetry.ReasonFileNotFound

	logutil.Warn("template was not registered before the timeout",
		"templatePath", templatePath,
		"timeout", registrationPollTimeout.String())

	w.warn(ctx, "Template registration timed out",
		"The project was created, but debug configurations could not be generated automatically.")
	return nil
}

func (w *Workflow) warn(ctx context.Context, title, message string) {
	if err := w.deps.Notifier.Send(ctx, notify.Notification{
		Title:    title,
		Message:  message,
		Severity: notify.SeverityWarning,
		HelpURL:  HelpURL,
	}); err != nil {
		logutil.Warn("failed to deliver warning notification", "error", err)
	}
}
