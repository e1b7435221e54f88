package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// beeepNotifier implements Notifier using the cross-platform beeep library.
type beeepNotifier struct {
	config Config
}

// newBeeepNotifier creates a beeep-based notifier.
func newBeeepNotifier(config Config) (Notifier, error) {
	return &beeepNotifier{
		config: config,
	}, nil
}

// Send sends a notification using beeep. Error severity uses an alert so
// platforms that distinguish urgency render it prominently.
func (n *beeepNotifier) Send(_ context.Context, notification Notification) error {
	message := notification.Message
	if notification.HelpURL != "" {
		message = fmt.Sprintf("%s\n%s", message, notification.HelpURL)
	}

	if notification.Severity == SeverityError {
		return beeep.Alert(notification.Title, message, "")
	}
	return beeep.Notify(notification.Title, message, "")
}

// Close is a no-op for beeep.
func (n *beeepNotifier) Close() error {
	return nil
}
