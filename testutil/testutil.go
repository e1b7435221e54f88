// Package testutil provides shared test helpers: capturing stdout and
// writing throwaway SAM template fixtures.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CaptureOutput captures stdout while fn runs. The original stdout is always
// restored. Errors returned by fn are logged, not fatal, so callers can
// assert on partial output from failing commands.
func CaptureOutput(t *testing.T, fn func() error) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	outCh := make(chan string, 1)
	go func() {
		var output strings.Builder
		buf := make([]byte, 1024)
		for {
			n, readErr := r.Read(buf)
			if n > 0 {
				output.Write(buf[:n])
			}
			if readErr != nil {
				break
			}
		}
		outCh <- output.String()
	}()

	fnErr := fn()

	if err := w.Close(); err != nil {
		t.Logf("Failed to close pipe writer: %v", err)
	}
	os.Stdout = origStdout

	output := <-outCh
	if fnErr != nil {
		t.Logf("Captured command error: %v", fnErr)
	}
	return output
}

// WriteSamTemplate writes a minimal SAM template with the given resource
// names under dir and returns the template path.
func WriteSamTemplate(t *testing.T, dir string, resources ...string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("AWSTemplateFormatVersion: \"2010-09-09\"\n")
	b.WriteString("Transform: AWS::Serverless-2016-10-31\n")
	b.WriteString("Resources:\n")
	for _, name := range resources {
		b.WriteString("  " + name + ":\n")
		b.WriteString("    Type: AWS::Serverless::Function\n")
	}

	path := filepath.Join(dir, "template.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("Failed to write template fixture: %v", err)
	}
	return path
}
