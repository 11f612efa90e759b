package slack

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/slack-go/slack"
)

// Notifier posts report notifications to one Slack channel
type Notifier struct {
	api     *slack.Client
	channel string
	baseURL string
}

var _ interfaces.ReportNotifier = &Notifier{}

// Option is a functional option for Notifier configuration
type Option func(*Notifier)

// WithAPIURL overrides the Slack API endpoint
func WithAPIURL(url string) Option {
	return func(n *Notifier) {
		n.baseURL = url
	}
}

// New creates a Notifier with the provided bot token. The channel is either a
// channel ID or a "#name" which is normalized to a valid channel name.
func New(token, channel string, opts ...Option) (*Notifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	target := ChannelTarget(channel)
	if target == "" {
		return nil, goerr.New("Slack channel is required", goerr.V("channel", channel))
	}

	n := &Notifier{channel: target}
	for _, opt := range opts {
		opt(n)
	}

	var apiOpts []slack.Option
	if n.baseURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(n.baseURL))
	}
	n.api = slack.New(token, apiOpts...)

	return n, nil
}

// Channel returns the channel messages are posted to
func (n *Notifier) Channel() string {
	return n.channel
}

// NotifyReport posts a summary of a generated report
func (n *Notifier) NotifyReport(ctx context.Context, bundle *model.Bundle, location string) error {
	blocks, text := buildReportMessage(bundle, location)

	_, _, err := n.api.PostMessageContext(ctx, n.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post report notification",
			goerr.V("channel", n.channel), goerr.V("owner_id", bundle.OwnerID))
	}
	return nil
}

// ChannelTarget resolves a configured channel. "#name" is normalized to a
// channel name, anything else is used as a channel ID.
func ChannelTarget(channel string) string {
	channel = strings.TrimSpace(channel)
	if name, ok := strings.CutPrefix(channel, "#"); ok {
		return NormalizeChannelName(name)
	}
	return channel
}
