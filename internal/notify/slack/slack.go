// Package slack implements the notify.Notifier for Slack over the Web API.
package slack

import (
	"fmt"

	slackapi "github.com/slack-go/slack"
)

// client abstracts the Slack API methods we use, enabling test mocks.
type client interface {
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// Notifier posts messages to a single Slack channel.
type Notifier struct {
	client    client
	channelID string
}

// Opts holds parameters for creating a Slack Notifier.
type Opts struct {
	BotToken  string // xoxb-... Slack bot token
	ChannelID string // channel to post to
}

// New creates a Slack Notifier.
func New(opts Opts) (*Notifier, error) {
	if opts.BotToken == "" {
		return nil, fmt.Errorf("slack: bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("slack: channel ID is required")
	}
	return &Notifier{
		client:    slackapi.New(opts.BotToken),
		channelID: opts.ChannelID,
	}, nil
}

// NewWithClient creates a Notifier with an injected client. Used by tests.
func NewWithClient(c client, channelID string) *Notifier {
	return &Notifier{client: c, channelID: channelID}
}

// Post sends a titled message to the configured channel.
func (n *Notifier) Post(title, body string) error {
	text := "*" + title + "*"
	if body != "" {
		text += "\n" + body
	}
	_, _, err := n.client.PostMessage(n.channelID, slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("slack: post to %s: %w", n.channelID, err)
	}
	return nil
}
