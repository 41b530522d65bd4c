// Package notify sends one-line notifications after a successful
// generation. Notification failures are never fatal to the pipeline.
package notify

import "context"

// Notifier posts a short message to an external channel.
type Notifier interface {
	// Name returns the channel name for logging.
	Name() string

	// Notify posts the message.
	Notify(ctx context.Context, text string) error
}
