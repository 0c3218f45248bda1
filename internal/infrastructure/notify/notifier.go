package notify

import (
	"context"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/hrm/backend/internal/infrastructure/config"
)

// Category routes a notification to its Slack channel
type Category string

const (
	CategorySchedule   Category = "schedule"
	CategoryAttendance Category = "attendance"
	CategoryDefault    Category = "default"
)

// Notifier posts short status messages to a team channel. Implementations
// are best-effort: callers invoke them after the primary transaction
// commits and ignore the returned error beyond logging.
type Notifier interface {
	Notify(ctx context.Context, category Category, message string) error
}

// SlackNotifier posts messages through the Slack Web API
type SlackNotifier struct {
	client   *slack.Client
	channels map[Category]string
	logger   *zap.Logger
}

var _ Notifier = (*SlackNotifier)(nil)

// NewSlackNotifier creates a notifier from config. When the bot token is
// empty the notifier is disabled and every Notify call is a silent no-op.
func NewSlackNotifier(cfg config.SlackConfig, logger *zap.Logger) *SlackNotifier {
	n := &SlackNotifier{
		channels: map[Category]string{
			CategorySchedule:   cfg.ScheduleChannel,
			CategoryAttendance: cfg.AttendanceChannel,
			CategoryDefault:    cfg.DefaultChannel,
		},
		logger: logger,
	}
	if cfg.BotToken != "" {
		n.client = slack.New(cfg.BotToken)
	}
	return n
}

// Notify posts a message to the channel mapped to the category, falling
// back to the default channel when the category has none configured.
func (n *SlackNotifier) Notify(ctx context.Context, category Category, message string) error {
	if n.client == nil {
		return nil
	}
	channel := n.channels[category]
	if channel == "" {
		channel = n.channels[CategoryDefault]
	}
	if channel == "" {
		return nil
	}
	_, _, err := n.client.PostMessageContext(ctx, channel,
		slack.MsgOptionText(message, false),
	)
	if err != nil {
		n.logger.Warn("Slack notification failed",
			zap.String("category", string(category)),
			zap.Error(err))
		return err
	}
	return nil
}

// NoopNotifier discards every notification. Used in tests.
type NoopNotifier struct{}

var _ Notifier = (*NoopNotifier)(nil)

// Notify does nothing
func (NoopNotifier) Notify(context.Context, Category, string) error {
	return nil
}
