// Package browser provides utilities for launching URLs in the user's web
// browser. The toolkit uses it to open help links attached to degraded-result
// warnings. It supports Windows, macOS, and Linux with automatic detection of
// the system default browser.
package browser

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
	"github.com/ss22219/aws-toolkit-vscode/urlutil"
)

// DefaultTimeout bounds the browser launch command.
const DefaultTimeout = 5 * time.Second

// LaunchOptions contains options for launching a browser.
type LaunchOptions struct {
	// URL to open. Must be http or https.
	URL string
	// Timeout for the launch command (default 5 seconds).
	Timeout time.Duration
}

// Launch opens the specified URL in the system default browser.
// The function is non-blocking: the browser is launched in a separate
// goroutine and launch failures are logged, not returned, since an unopened
// help page is never critical.
func Launch(opts LaunchOptions) error {
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	if err := urlutil.Validate(opts.URL); err != nil {
		return fmt.Errorf("refusing to open URL: %w", err)
	}

	go func() {
		if err := launchSync(opts.URL, opts.Timeout); err != nil {
			logutil.Warn("could not open browser", "url", opts.URL, "error", err)
		}
	}()

	return nil
}

// launchSync performs the actual browser launch synchronously.
func launchSync(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return buildSystemCommand(ctx, url).Run()
}

// buildSystemCommand builds the command to launch the system default browser.
func buildSystemCommand(ctx context.Context, url string) *exec.Cmd {
	switch runtime.GOOS {
	case "windows":
		// 'start' with an empty title avoids URLs being parsed as the title
		return exec.CommandContext(ctx, "cmd", "/c", "start", "", url)
	case "darwin":
		return exec.CommandContext(ctx, "open", url)
	default:
		if _, err := exec.LookPath("xdg-open"); err == nil {
			return exec.CommandContext(ctx, "xdg-open", url)
		}
		return exec.CommandContext(ctx, "sensible-browser", url)
	}
}
