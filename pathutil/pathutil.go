// Package pathutil provides cross-platform executable discovery utilities.
//
// It locates tools in PATH with automatic handling of Windows executable
// extensions, falls back to well-known installation directories when PATH is
// stale (common right after an installer finishes), and suggests installation
// URLs for missing dependencies.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"os/exec"
)

// FindToolInPath searches for a tool executable in the system PATH.
// Returns the full path to the executable if found, empty string otherwise.
func FindToolInPath(toolName string) string {
	path, err := exec.LookPath(withExeSuffix(toolName))
	if err != nil {
		return ""
	}
	return path
}

// SearchToolInSystemPath searches for a tool in common installation
// directories. This finds tools that are installed but not in the current
// PATH, e.g. when the process started before an installer updated PATH.
// Returns the full path to the executable if found, empty string otherwise.
func SearchToolInSystemPath(toolName string) string {
	exeName := withExeSuffix(toolName)

	var searchPaths []string
	if runtime.GOOS == "windows" {
		searchPaths = []string{
			filepath.Join(os.Getenv("ProgramFiles"), "Amazon", "AWSSAMCLI", "bin"),
			filepath.Join(os.Getenv("ProgramFiles(x86)"), "Amazon", "AWSSAMCLI", "bin"),
			filepath.Join(os.Getenv("LOCALAPPDATA"), "Programs", "Python"),
			filepath.Join(os.Getenv("APPDATA"), "Python", "Scripts"),
			filepath.Join(os.Getenv("USERPROFILE"), "go", "bin"),
		}
	} else {
		homeDir, _ := os.UserHomeDir()
		searchPaths = []string{
			"/usr/local/bin",
			"/usr/bin",
			"/bin",
			"/opt/homebrew/bin",
			filepath.Join(homeDir, ".local", "bin"),
			filepath.Join(homeDir, "go", "bin"),
		}
	}

	for _, dir := range searchPaths {
		fullPath := filepath.Join(dir, exeName)
		if info, err := os.Stat(fullPath); err == nil && info.Mode().IsRegular() {
			return fullPath
		}
	}

	return ""
}

// GetInstallSuggestion returns a suggestion for how to install a missing tool.
func GetInstallSuggestion(toolName string) string {
	suggestions := map[string]string{
		"sam":    "Install from https://docs.aws.amazon.com/serverless-application-model/latest/developerguide/serverless-sam-cli-install.html",
		"aws":    "Install from https://docs.aws.amazon.com/cli/latest/userguide/getting-started-install.html",
		"docker": "Install Docker Desktop from https://www.docker.com/products/docker-desktop",
		"git":    "Install from https://git-scm.com/downloads",
		"python": "Install from https://www.python.org/downloads/",
		"node":   "Install from https://nodejs.org/",
	}

	if suggestion, ok := suggestions[toolName]; ok {
		return suggestion
	}
	return fmt.Sprintf("Please install %s manually", toolName)
}

// withExeSuffix appends .exe on Windows when not already present.
func withExeSuffix(toolName string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(toolName), ".exe") {
		return toolName + ".exe"
	}
	return toolName
}
