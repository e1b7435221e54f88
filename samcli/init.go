package samcli

import (
	"context"
	"fmt"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// Context carries the collaborators an init run depends on. Env entries are
// layered onto the inherited environment of the spawned CLI process.
type Context struct {
	Validator Validator
	Invoker   Invoker
	Env       []string
}

// RunInit performs a single "create project" CLI call: validate the CLI
// installation, build arguments, invoke with the request location as the
// working directory, and require exit code 0. Each step is a hard
// dependency on the previous one succeeding, and a failed attempt is
// terminal; there is no retry.
func RunInit(ctx context.Context, request InitRequest, deps Context) error {
	cli, err := deps.Validator.DetectValidCli(ctx)
	if err != nil {
		return fmt.Errorf("cannot create project: %w", err)
	}

	args, err := BuildInitArgs(request)
	if err != nil {
		return err
	}

	logutil.Info("creating sam application",
		"name", request.Name,
		"location", request.Location,
		"packageType", string(request.Project.PackageType()),
		"runtime", request.Runtime(),
	)

	result := deps.Invoker.Invoke(ctx, Invocation{
		Executable: cli.Path,
		WorkingDir: request.Location,
		Args:       args,
		Env:        deps.Env,
	})

	return CheckExit(result, 0)
}

// RunPackage performs a single "package" CLI call with the same
// validate-build-invoke-check sequence as RunInit.
func RunPackage(ctx context.Context, request PackageRequest, workingDir string, deps Context) error {
	cli, err := deps.Validator.DetectValidCli(ctx)
	if err != nil {
		return fmt.Errorf("cannot package application: %w", err)
	}

	result := deps.Invoker.Invoke(ctx, Invocation{
		Executable: cli.Path,
		WorkingDir: workingDir,
		Args:       BuildPackageArgs(request),
		Env:        deps.Env,
	})

	return CheckExit(result, 0)
}
