// Package settings loads toolkit configuration from a YAML settings file with
// environment variable overrides.
//
// Settings are optional: a missing file yields defaults. Environment
// variables use the AWS_TOOLKIT_ prefix with dots replaced by underscores,
// e.g. AWS_TOOLKIT_SAM_LOCATION overrides sam.location.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "AWS_TOOLKIT"

// Settings holds user-configurable toolkit behavior.
type Settings struct {
	// SamLocation is an explicit path to the SAM CLI binary. When empty the
	// binary is located via PATH and well-known install directories.
	SamLocation string

	// Endpoints maps a service identifier (e.g. "schemas") to an endpoint
	// URL that overrides the SDK default.
	Endpoints map[string]string

	// Region is the default region for cloud calls.
	Region string

	// TelemetryEnabled controls whether outcome events are recorded.
	TelemetryEnabled bool

	// Debug enables debug logging.
	Debug bool
}

// DefaultPath returns the default settings file location
// (~/.aws-toolkit/settings.yaml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".aws-toolkit", "settings.yaml"), nil
}

// Load reads settings from the provided path. If path is empty, the default
// location is used. A missing file is not an error; defaults are returned.
func Load(path string) (*Settings, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("sam.location", "")
	v.SetDefault("endpoints", map[string]string{})
	v.SetDefault("region", "")
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
		}
	}

	return &Settings{
		SamLocation:      v.GetString("sam.location"),
		Endpoints:        v.GetStringMapString("endpoints"),
		Region:           v.GetString("region"),
		TelemetryEnabled: v.GetBool("telemetry.enabled"),
		Debug:            v.GetBool("debug"),
	}, nil
}

// Endpoint returns the endpoint override for the given service identifier,
// or "" when none is configured.
func (s *Settings) Endpoint(service string) string {
	if s == nil || s.Endpoints == nil {
		return ""
	}
	return s.Endpoints[strings.ToLower(service)]
}
