package samcli

import (
	"fmt"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// maxDiagnosticOutput bounds how much captured output goes into logs and
// error values.
const maxDiagnosticOutput = 2048

// UnexpectedExitCodeError reports a CLI run that did not exit with the
// expected code, or never launched at all. It carries the captured output so
// callers can surface diagnostics without re-running the process.
type UnexpectedExitCodeError struct {
	Expected  int
	Actual    int
	LaunchErr error
	Stdout    string
	Stderr    string
}

// Error implements the error interface.
func (e *UnexpectedExitCodeError) Error() string {
	if e.LaunchErr != nil {
		return fmt.Sprintf("sam cli did not run: %v", e.LaunchErr)
	}
	return fmt.Sprintf("sam cli exited with code %d, expected %d", e.Actual, e.Expected)
}

// Unwrap exposes the launch error when the process never ran.
func (e *UnexpectedExitCodeError) Unwrap() error {
	return e.LaunchErr
}

// CheckExit validates that result carries the expected exit code. A present
// launch error is an automatic mismatch. On mismatch it emits exactly one
// structured diagnostic record and then returns an *UnexpectedExitCodeError;
// the log always precedes the error so both are usable independently.
func CheckExit(result Result, expected int) error {
	if result.LaunchErr == nil && result.ExitCode == expected {
		return nil
	}

	launchMsg := ""
	if result.LaunchErr != nil {
		launchMsg = result.LaunchErr.Error()
	}

	logutil.Error("sam cli exit code validation failed",
		"expectedExitCode", expected,
		"actualExitCode", result.ExitCode,
		"launchError", launchMsg,
		"stdout", truncate(result.Stdout, maxDiagnosticOutput),
		"stderr", truncate(result.Stderr, maxDiagnosticOutput),
	)

	return &UnexpectedExitCodeError{
		Expected:  expected,
		Actual:    result.ExitCode,
		LaunchErr: result.LaunchErr,
		Stdout:    truncate(result.Stdout, maxDiagnosticOutput),
		Stderr:    truncate(result.Stderr, maxDiagnosticOutput),
	}
}

// truncate limits s to max bytes, marking the cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...[truncated]"
}
