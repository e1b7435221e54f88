package command

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ss22219/aws-toolkit-vscode/cache"
	"github.com/ss22219/aws-toolkit-vscode/cliout"
	"github.com/ss22219/aws-toolkit-vscode/logutil"
	"github.com/ss22219/aws-toolkit-vscode/samcli"
	"github.com/ss22219/aws-toolkit-vscode/settings"
	"github.com/ss22219/aws-toolkit-vscode/version"
)

// RootOptions carry the persistent flags shared by all subcommands.
type RootOptions struct {
	OutputFormat string
	SettingsPath string
	Debug        bool
}

// NewRootCommand assembles the toolkit command tree.
func NewRootCommand(info *version.Info) *cobra.Command {
	opts := &RootOptions{}

	root := &cobra.Command{
		Use:           info.ProductID,
		Short:         "Scaffold and package AWS serverless applications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cliout.SetFormat(opts.OutputFormat)
		},
	}

	root.PersistentFlags().StringVarP(&opts.OutputFormat, "output", "o", "", "Output format (json)")
	root.PersistentFlags().StringVar(&opts.SettingsPath, "settings", "", "Path to the settings file")
	root.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Enable debug logging")

	root.AddCommand(NewCreateCommand(opts))
	root.AddCommand(NewPackageCommand(opts))
	root.AddCommand(version.NewCommand(info, &opts.OutputFormat))

	return root
}

// newValidator builds the SAM CLI validator, caching detection results next
// to the settings file so back-to-back commands skip the version probe.
func newValidator(cfg *settings.Settings) samcli.Validator {
	base := &samcli.CliValidator{Location: cfg.SamLocation}

	home, err := os.UserHomeDir()
	if err != nil {
		return base
	}
	return &samcli.CachedValidator{
		Validator: base,
		Cache: cache.NewManager(cache.Options{
			Dir: filepath.Join(home, ".aws-toolkit", "cache"),
			TTL: 15 * time.Minute,
		}),
	}
}

// loadSettings resolves and loads settings, then configures logging from the
// combined flag and settings state.
func loadSettings(opts *RootOptions) (*settings.Settings, error) {
	path := opts.SettingsPath
	if path == "" {
		defaultPath, err := settings.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg, err := settings.Load(path)
	if err != nil {
		return nil, err
	}

	logutil.SetupLogger(opts.Debug || cfg.Debug, false)
	return cfg, nil
}
