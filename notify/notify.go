// Package notify provides cross-platform OS notification support.
//
// The creation workflow surfaces terminal outcomes through a Notifier:
// fatal failures produce exactly one error notification directing the user
// to the logs, and degraded successes produce a warning carrying a help
// link.
package notify

import (
	"context"
	"time"
)

// Severity levels for notifications.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Notification represents a notification to be displayed.
type Notification struct {
	// Title is the notification title.
	Title string

	// Message is the notification body.
	Message string

	// Severity is one of the Severity* constants.
	Severity string

	// HelpURL is an optional link offering the user a followup action.
	// Warnings about degraded results carry one.
	HelpURL string

	// Timestamp when the notification was created.
	Timestamp time.Time
}

// Notifier is the interface for notification surfaces.
type Notifier interface {
	// Send displays a notification.
	Send(ctx context.Context, notification Notification) error

	// Close cleans up notification resources.
	Close() error
}

// Config contains notification system configuration.
type Config struct {
	// AppName is the application name shown in notifications.
	AppName string

	// Timeout for notification operations.
	Timeout time.Duration
}

// DefaultConfig returns default notification configuration.
func DefaultConfig() Config {
	return Config{
		AppName: "AWS Toolkit",
		Timeout: 5 * time.Second,
	}
}

// New creates a new OS-backed notifier.
func New(config Config) (Notifier, error) {
	return newBeeepNotifier(config)
}
