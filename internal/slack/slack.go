// Package slack schedules and sends game notifications through the Slack
// Web API.
package slack

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	slackapi "github.com/slack-go/slack"
)

// Channel is a logical notification channel. Channel IDs come from
// configuration so invalid channels fail at construction, not send time.
type Channel string

const (
	ChannelTesting Channel = "testing"
	ChannelGeneral Channel = "general"
)

// ParseChannel validates a channel name.
func ParseChannel(s string) (Channel, error) {
	switch Channel(s) {
	case ChannelTesting, ChannelGeneral:
		return Channel(s), nil
	}
	return "", fmt.Errorf("invalid channel %q", s)
}

// Notifier wraps the Slack client with channel mapping.
type Notifier struct {
	client   *slackapi.Client
	channels map[Channel]string
	logger   *slog.Logger
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier, *[]slackapi.Option)

// WithAPIURL overrides the Slack API base URL (tests).
func WithAPIURL(u string) NotifierOption {
	return func(_ *Notifier, opts *[]slackapi.Option) {
		*opts = append(*opts, slackapi.OptionAPIURL(u))
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) NotifierOption {
	return func(n *Notifier, _ *[]slackapi.Option) {
		n.logger = logger
	}
}

// NewNotifier creates a Notifier from a bot token and channel ID mapping.
func NewNotifier(token, testingID, generalID string, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		channels: map[Channel]string{
			ChannelTesting: testingID,
			ChannelGeneral: generalID,
		},
		logger: slog.Default(),
	}

	var apiOpts []slackapi.Option
	for _, opt := range opts {
		opt(n, &apiOpts)
	}

	n.client = slackapi.New(token, apiOpts...)
	return n
}

func (n *Notifier) channelID(ch Channel) (string, error) {
	id, ok := n.channels[ch]
	if !ok || id == "" {
		return "", fmt.Errorf("no channel ID configured for %q", ch)
	}
	return id, nil
}

// SendMessage posts a message immediately.
func (n *Notifier) SendMessage(ctx context.Context, ch Channel, text string) error {
	id, err := n.channelID(ch)
	if err != nil {
		return err
	}

	if _, _, err := n.client.PostMessageContext(ctx, id, slackapi.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("post message: %w", err)
	}

	return nil
}

// ScheduleMessage schedules a message for future delivery. The send time is
// converted to UTC Unix seconds as Slack expects.
func (n *Notifier) ScheduleMessage(ctx context.Context, ch Channel, text string, at time.Time) error {
	id, err := n.channelID(ch)
	if err != nil {
		return err
	}

	postAt := strconv.FormatInt(at.UTC().Unix(), 10)

	if _, _, err := n.client.ScheduleMessageContext(ctx, id, postAt, slackapi.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("schedule message: %w", err)
	}

	n.logger.Debug("scheduled message", "channel", string(ch), "post_at", postAt)

	return nil
}

// ListScheduled returns pending scheduled messages for a channel.
func (n *Notifier) ListScheduled(ctx context.Context, ch Channel) ([]slackapi.ScheduledMessage, error) {
	id, err := n.channelID(ch)
	if err != nil {
		return nil, err
	}

	msgs, _, err := n.client.GetScheduledMessagesContext(ctx, &slackapi.GetScheduledMessagesParameters{
		Channel: id,
	})
	if err != nil {
		return nil, fmt.Errorf("list scheduled messages: %w", err)
	}

	return msgs, nil
}

// ClearScheduled deletes every pending scheduled message for a channel and
// returns how many were removed.
func (n *Notifier) ClearScheduled(ctx context.Context, ch Channel) (int, error) {
	id, err := n.channelID(ch)
	if err != nil {
		return 0, err
	}

	msgs, err := n.ListScheduled(ctx, ch)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, msg := range msgs {
		_, err := n.client.DeleteScheduledMessageContext(ctx, &slackapi.DeleteScheduledMessageParameters{
			Channel:            id,
			ScheduledMessageID: msg.ID,
		})
		if err != nil {
			return deleted, fmt.Errorf("delete scheduled message %s: %w", msg.ID, err)
		}
		deleted++
	}

	return deleted, nil
}
