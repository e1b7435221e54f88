package samcli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// Invocation describes a single CLI subprocess run. Immutable once
// constructed.
type Invocation struct {
	// Executable is the path to the CLI binary.
	Executable string
	// WorkingDir is the subprocess working directory. For init this is the
	// parent directory the project is created under.
	WorkingDir string
	// Args is the ordered argument vector, excluding the executable itself.
	Args []string
	// Env holds additional environment variables (KEY=VALUE). The parent
	// environment is always inherited.
	Env []string
}

// Result is the outcome of one invocation.
//
// LaunchErr is set when the process never ran (binary missing, permission
// denied); ExitCode is only meaningful when LaunchErr is nil. A nonzero
// exit is not an invocation error.
type Result struct {
	ExitCode  int
	LaunchErr error
	Stdout    string
	Stderr    string
}

// Ran reports whether the process was launched and ran to completion.
func (r Result) Ran() bool {
	return r.LaunchErr == nil
}

// Invoker runs CLI subprocesses.
type Invoker interface {
	// Invoke runs the invocation to completion, consuming all output.
	// It always returns a Result; launch failures and nonzero exits are
	// surfaced through the Result, never as panics or hidden errors.
	Invoke(ctx context.Context, invocation Invocation) Result
}

// ExecInvoker is the os/exec based Invoker.
type ExecInvoker struct{}

// Invoke runs the subprocess and captures its full stdout and stderr.
func (ExecInvoker) Invoke(ctx context.Context, invocation Invocation) Result {
	logutil.Debug("invoking cli",
		"executable", invocation.Executable,
		"args", invocation.Args,
		"dir", invocation.WorkingDir,
	)

	cmd := exec.CommandContext(ctx, invocation.Executable, invocation.Args...)
	cmd.Dir = invocation.WorkingDir
	cmd.Env = append(os.Environ(), invocation.Env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.LaunchErr = err
		}
	}

	return result
}
