package command

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsschemas "github.com/aws/aws-sdk-go-v2/service/schemas"
	"github.com/spf13/cobra"

	"github.com/ss22219/aws-toolkit-vscode/awsclient"
	"github.com/ss22219/aws-toolkit-vscode/browser"
	"github.com/ss22219/aws-toolkit-vscode/cliout"
	"github.com/ss22219/aws-toolkit-vscode/creation"
	"github.com/ss22219/aws-toolkit-vscode/editor"
	"github.com/ss22219/aws-toolkit-vscode/env"
	"github.com/ss22219/aws-toolkit-vscode/launchconfig"
	"github.com/ss22219/aws-toolkit-vscode/notify"
	"github.com/ss22219/aws-toolkit-vscode/registry"
	"github.com/ss22219/aws-toolkit-vscode/samcli"
	"github.com/ss22219/aws-toolkit-vscode/schemas"
	"github.com/ss22219/aws-toolkit-vscode/settings"
	"github.com/ss22219/aws-toolkit-vscode/telemetry"
	"github.com/ss22219/aws-toolkit-vscode/version"
	"github.com/ss22219/aws-toolkit-vscode/workspace"
)

// createOptions are the flag values for the create command. They stand in
// for the IDE's wizard: all parameters arrive up front.
type createOptions struct {
	name              string
	location          string
	runtime           string
	packageType       string
	baseImage         string
	appTemplate       string
	dependencyManager string
	extraContext      map[string]string

	schemaRegistry string
	schemaName     string
	schemaVersion  string
	schemaLanguage string
	region         string

	workspaceFile string
	openEditor    bool
	openHelp      bool
	quiet         bool
}

// NewCreateCommand builds the `create` subcommand, which drives the full
// project creation workflow from the terminal.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new serverless application project",
		Long: `Create a new serverless application project with the AWS SAM CLI.

The project is scaffolded into <location>/<name>, added to the workspace
file, and matching debug configurations are written to .vscode/launch.json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(rootOpts)
			if err != nil {
				return err
			}
			return runCreate(cmd.Context(), opts, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.name, "name", "n", "", "Project name (required)")
	flags.StringVarP(&opts.location, "location", "l", ".", "Directory the project is created under")
	flags.StringVarP(&opts.runtime, "runtime", "r", "", "Lambda runtime, e.g. python3.12 (required)")
	flags.StringVar(&opts.packageType, "package-type", string(samcli.PackageTypeZip), "Package type: Zip or Image")
	flags.StringVar(&opts.baseImage, "base-image", "", "Base image for Image package type (derived from runtime when empty)")
	flags.StringVar(&opts.appTemplate, "app-template", "", "Application template identifier, e.g. hello-world")
	flags.StringVarP(&opts.dependencyManager, "dependency-manager", "d", "", "Dependency manager, e.g. pip or npm (required)")
	flags.StringToStringVar(&opts.extraContext, "extra-context", nil, "Extra cookiecutter context as key=value pairs")

	flags.StringVar(&opts.schemaRegistry, "schema-registry", "", "EventBridge schema registry name")
	flags.StringVar(&opts.schemaName, "schema-name", "", "EventBridge schema to generate code bindings for")
	flags.StringVar(&opts.schemaVersion, "schema-version", "", "Schema version (latest when empty)")
	flags.StringVar(&opts.schemaLanguage, "schema-language", "", "Code binding language, e.g. Python36")
	flags.StringVar(&opts.region, "region", "", "Region for schema downloads")

	flags.StringVar(&opts.workspaceFile, "workspace-file", "", "Workspace file to add the project to")
	flags.BoolVar(&opts.openEditor, "open", false, "Open the generated template in your editor")
	flags.BoolVar(&opts.openHelp, "open-help", false, "Open the documentation when the run degrades")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress output")

	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("runtime")
	_ = cmd.MarkFlagRequired("dependency-manager")

	return cmd
}

func runCreate(ctx context.Context, opts *createOptions, cfg *settings.Settings) error {
	selection, err := buildSelection(opts)
	if err != nil {
		return err
	}

	downloader, err := buildDownloader(ctx, opts, cfg)
	if err != nil {
		return err
	}

	workspacePath := opts.workspaceFile
	if workspacePath == "" {
		workspacePath = defaultWorkspaceFile(opts.location)
	}
	folders, err := workspace.NewFileWorkspace(workspacePath)
	if err != nil {
		return err
	}

	notifier, err := notify.New(notify.DefaultConfig())
	if err != nil {
		notifier = notify.LogNotifier{}
	}
	defer func() { _ = notifier.Close() }()

	var sink telemetry.Sink = telemetry.LogSink{}
	if !cfg.TelemetryEnabled {
		sink = telemetry.NoopSink{}
	}

	workflow, err := creation.New(creation.Deps{
		Validator:  newValidator(cfg),
		Invoker:    samcli.ExecInvoker{},
		Env:        samEnv(cfg),
		Wizard:     staticWizard{selection: selection},
		Downloader: downloader,
		Folders:    folders,
		Registry:   &registeringLookup{registry: registry.ForWorkspace(opts.location)},
		Candidates: &projectCandidates{projectName: opts.name},
		Store:      launchconfig.NewFileStore(opts.location),
		Notifier:   notifier,
		Telemetry:  telemetry.NewRecorder(sink),
	})
	if err != nil {
		return err
	}

	if !opts.quiet {
		cliout.Step("Creating project %q in %s", opts.name, opts.location)
	}

	result, err := workflow.Run(ctx)
	if err != nil {
		cliout.Error("Project creation failed: %v", err)
		return err
	}

	return reportCreateResult(result, opts)
}

// defaultWorkspaceFile returns the workspace file used when --workspace-file
// is not given: a .code-workspace file inside the project location.
func defaultWorkspaceFile(location string) string {
	return filepath.Join(location, "toolkit.code-workspace")
}

// samEnv builds extra environment entries for SAM CLI subprocesses. The
// CLI's own telemetry follows the toolkit's opt-out.
func samEnv(cfg *settings.Settings) []string {
	if cfg.TelemetryEnabled {
		return nil
	}
	return env.MapToSlice(map[string]string{"SAM_CLI_TELEMETRY": "0"})
}

// buildSelection converts flags into the wizard outcome the workflow
// expects. Zip and Image are mutually exclusive at the type level, so the
// package-type flag picks the variant.
func buildSelection(opts *createOptions) (*creation.Selection, error) {
	var project samcli.Project
	switch samcli.PackageType(opts.packageType) {
	case samcli.PackageTypeZip:
		project = samcli.ZipProject{Runtime: opts.runtime, Template: opts.appTemplate}
	case samcli.PackageTypeImage:
		project = samcli.ImageProject{Runtime: opts.runtime, BaseImage: opts.baseImage}
	default:
		return nil, fmt.Errorf("unknown package type %q, expected Zip or Image", opts.packageType)
	}

	request := samcli.InitRequest{
		Name:              opts.name,
		Location:          opts.location,
		DependencyManager: opts.dependencyManager,
		Project:           project,
		ExtraContext:      opts.extraContext,
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}

	selection := &creation.Selection{Request: request}
	if opts.schemaName != "" {
		if opts.schemaRegistry == "" || opts.schemaLanguage == "" {
			return nil, errors.New("--schema-registry and --schema-language are required with --schema-name")
		}
		schemaVersion := opts.schemaVersion
		if schemaVersion == "" {
			schemaVersion = "latest"
		}
		selection.Schema = &creation.SchemaSelection{
			RegistryName:  opts.schemaRegistry,
			SchemaName:    opts.schemaName,
			SchemaVersion: schemaVersion,
			Language:      opts.schemaLanguage,
		}
	}
	return selection, nil
}

// buildDownloader constructs the schema code downloader when a schema was
// requested. The region must offer the schemas service.
func buildDownloader(ctx context.Context, opts *createOptions, cfg *settings.Settings) (schemas.CodeDownloader, error) {
	if opts.schemaName == "" {
		return nil, nil
	}

	region := opts.region
	if region == "" {
		region = cfg.Region
	}
	if region == "" {
		return nil, errors.New("a region is required for schema downloads")
	}
	if !awsclient.IsServiceInRegion("schemas", region) {
		return nil, fmt.Errorf("the schemas service is not available in region %q", region)
	}

	info := version.New("aws-toolkit", "AWS Toolkit")
	client, err := awsclient.New(ctx, awsclient.Options{
		Region:    region,
		Settings:  cfg,
		Product:   info,
		UserAgent: awsclient.BuildUserAgent(info),
	})
	if err != nil {
		return nil, err
	}

	api := awsschemas.NewFromConfig(client.Config(), func(o *awsschemas.Options) {
		if endpoint := client.Endpoint("schemas"); endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})
	return schemas.NewAWSDownloader(api), nil
}

func reportCreateResult(result *creation.Result, opts *createOptions) error {
	switch result.State {
	case creation.StateCompleted:
		cliout.Success("Project created at %s", result.ProjectRoot)
		if len(result.MatchedConfigs) > 0 {
			cliout.Info("Debug configurations written:")
			for _, config := range result.MatchedConfigs {
				cliout.Item(config.Name)
			}
		} else {
			cliout.Hint("No debug configurations matched; see " + creation.HelpURL)
		}
		if opts.openEditor {
			if err := editor.Open(result.TemplatePath); err != nil {
				cliout.Warning("Could not open template: %v", err)
			}
		}
	case creation.StateCancelled:
		cliout.Info("Project creation cancelled")
	default:
		cliout.Warning("Project created with warnings; see " + creation.HelpURL)
		if opts.openHelp {
			if err := browser.Launch(browser.LaunchOptions{
				URL:     creation.HelpURL,
				Timeout: 10 * time.Second,
			}); err != nil {
				cliout.Warning("Could not open documentation: %v", err)
			}
		}
	}
	return nil
}
