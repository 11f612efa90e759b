package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/service/slack"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Slack struct {
	botToken string
	channel  string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token (for report notifications)",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("BCPLANNER_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Channel ID or #name to post report notifications to",
			Category:    "Slack",
			Destination: &x.channel,
			Sources:     cli.EnvVars("BCPLANNER_SLACK_CHANNEL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel", x.channel),
	)
}

// IsConfigured reports whether both token and channel are set
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channel != ""
}

// Configure returns nil when Slack is not configured. Setting only one of
// token and channel is an error.
func (x *Slack) Configure() (*slack.Notifier, error) {
	if x.botToken == "" && x.channel == "" {
		logging.Default().Info("Slack notification is not configured")
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrMissingFlag, "both --slack-bot-token and --slack-channel are required",
			goerr.V("channel", x.channel))
	}

	notifier, err := slack.New(x.botToken, x.channel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure slack notifier")
	}
	logging.Default().Info("Slack notification enabled", "channel", notifier.Channel())
	return notifier, nil
}
