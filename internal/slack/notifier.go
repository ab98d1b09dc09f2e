package slack

import (
	"context"
	"fmt"
	"net/http"
	"time"

	slackapi "github.com/slack-go/slack"
)

// Notifier posts messages to a single Slack channel. Delivery is
// best-effort; callers log and move on when a post fails.
type Notifier struct {
	api     *slackapi.Client
	channel string
}

func NewNotifier(token, channel string) *Notifier {
	api := slackapi.New(token, slackapi.OptionHTTPClient(&http.Client{
		Timeout: 15 * time.Second,
	}))
	return &Notifier{api: api, channel: channel}
}

func (n *Notifier) Post(ctx context.Context, text string) error {
	_, _, err := n.api.PostMessageContext(ctx, n.channel, slackapi.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("post to %s: %w", n.channel, err)
	}
	return nil
}
