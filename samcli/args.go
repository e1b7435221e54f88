package samcli

import (
	"encoding/json"
	"fmt"
)

// BuildInitArgs builds the argument vector for the init subcommand. Flags
// are never emitted for absent values.
func BuildInitArgs(request InitRequest) ([]string, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	args := []string{
		"init",
		"--name", request.Name,
		"--no-interactive",
		"--dependency-manager", request.DependencyManager,
	}

	switch p := request.Project.(type) {
	case ImageProject:
		args = append(args,
			"--package-type", string(PackageTypeImage),
			"--base-image", p.Image(),
		)
	case ZipProject:
		args = append(args, "--runtime", p.Runtime)
		if p.Template != "" {
			args = append(args, "--app-template", p.Template)
		}
	default:
		return nil, fmt.Errorf("init request: unsupported project payload %T", request.Project)
	}

	if len(request.ExtraContext) > 0 {
		context, err := json.Marshal(request.ExtraContext)
		if err != nil {
			return nil, fmt.Errorf("init request: failed to encode extra context: %w", err)
		}
		args = append(args, "--extra-context", string(context))
	}

	return args, nil
}

// BuildPackageArgs builds the argument vector for the package subcommand.
func BuildPackageArgs(request PackageRequest) []string {
	args := []string{
		"package",
		"--template-file", request.SourceTemplatePath,
		"--s3-bucket", request.S3Bucket,
		"--output-template-file", request.DestinationTemplatePath,
		"--region", request.Region,
	}

	if request.ECRRepo != "" {
		args = append(args, "--image-repository", request.ECRRepo)
	}

	return args
}
