// Package slack implements notify.Notifier using the Slack Web API.
package slack

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

// Notifier posts messages to a fixed Slack channel.
type Notifier struct {
	api     *slack.Client
	channel string
}

// New creates a Slack notifier for the given bot token and channel ID.
func New(botToken, channel string) *Notifier {
	return &Notifier{
		api:     slack.New(botToken),
		channel: channel,
	}
}

// Name returns the channel name.
func (n *Notifier) Name() string { return "slack" }

// Notify posts the message to the configured channel.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	_, _, err := n.api.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return fmt.Errorf("posting to %s: %w", n.channel, err)
	}
	return nil
}
