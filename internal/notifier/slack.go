package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/netspec/prtg-reporter/internal/config"
	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

// Delivery is the outcome of posting to one channel
type Delivery struct {
	Channel string
	Err     error
}

// Notifier posts failure notices to Slack channels
type Notifier struct {
	client   *slack.Client
	channels []string
	logger   zerolog.Logger
}

// NewNotifier creates a Slack notifier for the configured channels
func NewNotifier(cfg config.SlackConfig, httpClient *http.Client, logger zerolog.Logger) *Notifier {
	return &Notifier{
		client: slack.New(cfg.Token,
			slack.OptionAPIURL(cfg.APIURL),
			slack.OptionHTTPClient(httpClient),
		),
		channels: cfg.ChannelIDs,
		logger:   logger.With().Str("component", "slack").Logger(),
	}
}

// Send posts message to a single channel via chat.postMessage
func (n *Notifier) Send(ctx context.Context, channelID, message string) error {
	if channelID == "" {
		return fmt.Errorf("slack channel id is required")
	}
	_, _, err := n.client.PostMessageContext(ctx, channelID, slack.MsgOptionText(message, false))
	return err
}

// Broadcast posts message to every configured channel in order. A failed
// channel is logged and does not stop delivery to the rest.
func (n *Notifier) Broadcast(ctx context.Context, message string) []Delivery {
	if len(n.channels) == 0 {
		n.logger.Warn().Msg("No Slack channels configured, failure notice not delivered")
		return nil
	}

	results := make([]Delivery, 0, len(n.channels))
	for _, channel := range n.channels {
		n.logger.Info().
			Str("channel", channel).
			Msg("Sending message to Slack")

		err := n.Send(ctx, channel, message)
		if err != nil {
			n.logger.Error().
				Str("channel", channel).
				Str("reason", reason(err)).
				Msg("Slack message failed to send")
		} else {
			n.logger.Info().
				Str("channel", channel).
				Msg("Slack message sent")
		}
		results = append(results, Delivery{Channel: channel, Err: err})
	}

	return results
}

// reason extracts Slack's error code (e.g. channel_not_found) when present
func reason(err error) string {
	var slackErr slack.SlackErrorResponse
	if errors.As(err, &slackErr) {
		return slackErr.Err
	}
	var statusErr slack.StatusCodeError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return err.Error()
}
