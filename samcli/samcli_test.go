package samcli

import (
	"bytes"
	"testing"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// setupTestLogger redirects the global logger into buf for the duration of
// the test.
func setupTestLogger(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	logutil.SetupLoggerWithWriter(buf, false, false)
	t.Cleanup(func() { logutil.SetupLogger(false, false) })
}
