package command

import (
	"github.com/spf13/cobra"

	"github.com/ss22219/aws-toolkit-vscode/cliout"
	"github.com/ss22219/aws-toolkit-vscode/samcli"
)

// NewPackageCommand builds the `package` subcommand, which wraps
// `sam package` for a built template.
func NewPackageCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		request    samcli.PackageRequest
		workingDir string
	)

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Package a serverless application template for deployment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(rootOpts)
			if err != nil {
				return err
			}

			err = samcli.RunPackage(cmd.Context(), request, workingDir, samcli.Context{
				Validator: newValidator(cfg),
				Invoker:   samcli.ExecInvoker{},
				Env:       samEnv(cfg),
			})
			if err != nil {
				cliout.Error("Packaging failed: %v", err)
				return err
			}

			cliout.Success("Packaged template written to %s", request.DestinationTemplatePath)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&request.SourceTemplatePath, "template-file", "", "Template to package (required)")
	flags.StringVar(&request.DestinationTemplatePath, "output-template-file", "", "Where to write the packaged template (required)")
	flags.StringVar(&request.S3Bucket, "s3-bucket", "", "Bucket for packaged artifacts (required)")
	flags.StringVar(&request.Region, "region", "", "Region to package for (required)")
	flags.StringVar(&request.ECRRepo, "image-repository", "", "ECR repository for image-based functions")
	flags.StringVar(&workingDir, "working-dir", ".", "Directory to run the SAM CLI in")

	_ = cmd.MarkFlagRequired("template-file")
	_ = cmd.MarkFlagRequired("output-template-file")
	_ = cmd.MarkFlagRequired("s3-bucket")
	_ = cmd.MarkFlagRequired("region")

	return cmd
}
