package notify

import (
	"context"

	"github.com/ss22219/aws-toolkit-vscode/logutil"
)

// LogNotifier writes notifications to the structured log instead of the OS
// notification surface. Used in headless environments and CI.
type LogNotifier struct{}

// Send logs the notification at a level matching its severity.
func (LogNotifier) Send(_ context.Context, notification Notification) error {
	args := []any{
		"title", notification.Title,
		"helpUrl", notification.HelpURL,
	}

	switch notification.Severity {
	case SeverityError:
		logutil.Error(notification.Message, args...)
	case SeverityWarning:
		logutil.Warn(notification.Message, args...)
	default:
		logutil.Info(notification.Message, args...)
	}
	return nil
}

// Close is a no-op.
func (LogNotifier) Close() error {
	return nil
}
