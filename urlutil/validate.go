// Package urlutil validates URLs before they are handed to external
// surfaces like the system browser or OS notifications.
package urlutil

import (
	"fmt"
	neturl "net/url"
	"strings"
)

// MaxURLLength is the practical URL length limit from RFC 2616.
const MaxURLLength = 2048

// Validate checks that rawURL is a well-formed http or https URL with a
// host, within MaxURLLength.
func Validate(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)

	if rawURL == "" {
		return fmt.Errorf("url cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return fmt.Errorf("url exceeds maximum length of %d characters", MaxURLLength)
	}

	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("url must use http or https, got %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("url has no host")
	}
	return nil
}
