// Package discord implements the notify.Notifier for Discord over the REST API.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// session abstracts the discordgo.Session methods we use, enabling test mocks.
type session interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts messages to a single Discord channel.
type Notifier struct {
	sess      session
	channelID string
}

// Opts holds parameters for creating a Discord Notifier.
type Opts struct {
	BotToken  string
	ChannelID string
}

// New creates a Discord Notifier. Posting uses plain REST calls, so no
// gateway connection is opened.
func New(opts Opts) (*Notifier, error) {
	if opts.BotToken == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}
	if opts.ChannelID == "" {
		return nil, fmt.Errorf("discord: channel ID is required")
	}
	sess, err := discordgo.New("Bot " + opts.BotToken)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	return &Notifier{sess: sess, channelID: opts.ChannelID}, nil
}

// NewWithSession creates a Notifier with an injected session. Used by tests.
func NewWithSession(s session, channelID string) *Notifier {
	return &Notifier{sess: s, channelID: channelID}
}

// Post sends a titled message to the configured channel.
func (n *Notifier) Post(title, body string) error {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: body,
	}
	if _, err := n.sess.ChannelMessageSendEmbed(n.channelID, embed); err != nil {
		return fmt.Errorf("discord: post to %s: %w", n.channelID, err)
	}
	return nil
}
