package contract

import (
	"context"

	"github.com/slack-go/slack"
)

// SlackAPI defines the slice of the Slack client the bot uses.
// This allows mocking in tests while keeping the real implementation simple
type SlackAPI interface {
	// PostMessageContext sends a message to a channel or group
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}
