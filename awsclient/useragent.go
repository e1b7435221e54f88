package awsclient

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/ss22219/aws-toolkit-vscode/version"
)

// BuildUserAgent constructs the toolkit user agent string:
// "<ProductName>/<version> <platformName>/<platformVersion>".
//
// Platform facts come from the host; when host inspection fails the Go
// runtime OS identifier is used with an "unknown" version so the string
// always has both segments.
func BuildUserAgent(product *version.Info) string {
	name := "aws-toolkit"
	ver := "0.0.0"
	if product != nil {
		if product.ProductID != "" {
			name = product.ProductID
		}
		if product.Version != "" {
			ver = product.Version
		}
	}

	platformName, platformVersion := platformFacts()
	return fmt.Sprintf("%s/%s %s/%s", sanitizeToken(name), sanitizeToken(ver),
		sanitizeToken(platformName), sanitizeToken(platformVersion))
}

// platformFacts returns the host platform name and version.
func platformFacts() (string, string) {
	info, err := host.Info()
	if err != nil || info.Platform == "" {
		return runtime.GOOS, "unknown"
	}

	platformVersion := info.PlatformVersion
	if platformVersion == "" {
		platformVersion = "unknown"
	}
	return info.Platform, platformVersion
}

// sanitizeToken strips whitespace and slashes so tokens cannot break the
// user agent product/version structure.
func sanitizeToken(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	if s == "" {
		return "unknown"
	}
	return s
}
