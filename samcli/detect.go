package samcli

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
	"github.com/ss22219/aws-toolkit-vscode/pathutil"
)

// ToolName is the CLI binary name.
const ToolName = "sam"

// Supported CLI version range: minimum inclusive, maximum exclusive.
const (
	MinVersion          = "1.0.0"
	MaxVersionExclusive = "2.0.0"
)

// versionPattern extracts the version from `sam --version` output,
// e.g. "SAM CLI, version 1.100.0".
var versionPattern = regexp.MustCompile(`version\s+([0-9]+\.[0-9]+\.[0-9]+[^\s]*)`)

// ValidationFailure classifies why a CLI installation was rejected.
type ValidationFailure string

const (
	FailureNotFound       ValidationFailure = "notFound"
	FailureVersionTooLow  ValidationFailure = "versionTooLow"
	FailureVersionTooHigh ValidationFailure = "versionTooHigh"
	FailureUnparseable    ValidationFailure = "unparseableVersion"
)

// InvalidSamCliError reports a missing or unsupported CLI installation.
// It is user-facing: Error() explains what to do next.
type InvalidSamCliError struct {
	Failure ValidationFailure
	Path    string
	Version string
}

// Error implements the error interface.
func (e *InvalidSamCliError) Error() string {
	switch e.Failure {
	case FailureNotFound:
		return fmt.Sprintf("the AWS SAM CLI was not found. %s", pathutil.GetInstallSuggestion(ToolName))
	case FailureVersionTooLow:
		return fmt.Sprintf("SAM CLI %s at %s is too old; version %s or later is required", e.Version, e.Path, MinVersion)
	case FailureVersionTooHigh:
		return fmt.Sprintf("SAM CLI %s at %s is not supported yet; versions below %s are required", e.Version, e.Path, MaxVersionExclusive)
	default:
		return fmt.Sprintf("could not determine the SAM CLI version at %s", e.Path)
	}
}

// CliInfo describes a validated CLI installation.
type CliInfo struct {
	Path    string
	Version string
}

// Validator detects a valid CLI installation.
type Validator interface {
	// DetectValidCli locates the CLI and validates its version, returning a
	// typed *InvalidSamCliError when the installation is missing or
	// unsupported.
	DetectValidCli(ctx context.Context) (*CliInfo, error)
}

// CliValidator locates the CLI on disk and validates it by running
// `sam --version`.
type CliValidator struct {
	// Location is an explicit binary path from settings. When empty the
	// binary is searched in PATH and well-known install directories.
	Location string
	// Invoker runs the version probe. Defaults to ExecInvoker.
	Invoker Invoker
}

// DetectValidCli implements Validator.
func (v *CliValidator) DetectValidCli(ctx context.Context) (*CliInfo, error) {
	path := v.locate()
	if path == "" {
		return nil, &InvalidSamCliError{Failure: FailureNotFound}
	}

	invoker := v.Invoker
	if invoker == nil {
		invoker = ExecInvoker{}
	}

	result := invoker.Invoke(ctx, Invocation{
		Executable: path,
		Args:       []string{"--version"},
	})
	if result.LaunchErr != nil {
		logutil.Warn("sam cli version probe failed to launch", "path", path, "error", result.LaunchErr)
		return nil, &InvalidSamCliError{Failure: FailureNotFound, Path: path}
	}

	rawVersion := parseVersionOutput(result.Stdout)
	if rawVersion == "" {
		rawVersion = parseVersionOutput(result.Stderr)
	}
	if rawVersion == "" {
		return nil, &InvalidSamCliError{Failure: FailureUnparseable, Path: path}
	}

	if err := validateVersion(rawVersion, path); err != nil {
		return nil, err
	}

	logutil.Debug("detected valid sam cli", "path", path, "version", rawVersion)
	return &CliInfo{Path: path, Version: rawVersion}, nil
}

// locate finds the CLI binary path.
func (v *CliValidator) locate() string {
	if v.Location != "" {
		return v.Location
	}
	if path := pathutil.FindToolInPath(ToolName); path != "" {
		return path
	}
	return pathutil.SearchToolInSystemPath(ToolName)
}

// parseVersionOutput extracts the semantic version from probe output.
func parseVersionOutput(output string) string {
	matches := versionPattern.FindStringSubmatch(strings.TrimSpace(output))
	if len(matches) < 2 {
		return ""
	}
	return matches[1]
}

// validateVersion checks the version against the supported range.
func validateVersion(rawVersion, path string) error {
	parsed, err := semver.NewVersion(rawVersion)
	if err != nil {
		return &InvalidSamCliError{Failure: FailureUnparseable, Path: path, Version: rawVersion}
	}

	min := semver.MustParse(MinVersion)
	max := semver.MustParse(MaxVersionExclusive)

	if parsed.LessThan(min) {
		return &InvalidSamCliError{Failure: FailureVersionTooLow, Path: path, Version: rawVersion}
	}
	if !parsed.LessThan(max) {
		return &InvalidSamCliError{Failure: FailureVersionTooHigh, Path: path, Version: rawVersion}
	}
	return nil
}
