package output

import (
	"context"
	"errors"
)

// ErrMessageGone signals that a referenced message no longer exists and the
// caller should fall back to re-resolving the posted representation.
var ErrMessageGone = errors.New("message gone")

// Control is an interactive button attached to a posted event message.
// ID is the wire identifier routed back on button presses.
type Control struct {
	ID     string
	Label  string
	Emoji  string
	Danger bool
}

// Messenger abstracts the chat platform: publishing and editing the posted
// event representation, history search, and direct messages.
type Messenger interface {
	Publish(ctx context.Context, channelID, content string, controls []Control) (messageID string, err error)
	// Edit returns ErrMessageGone when the message was deleted.
	Edit(ctx context.Context, channelID, messageID, content string, controls []Control) error
	// SearchHistory scans up to limit recent messages in the channel and
	// returns the ID of the first one whose content matches, or "".
	SearchHistory(ctx context.Context, channelID string, limit int, match func(content string) bool) (messageID string, err error)
	// DirectMessage is best-effort from the caller's point of view: users
	// may have DMs disabled.
	DirectMessage(ctx context.Context, userID, content string) error
	// CreateThread opens a discussion thread under a posted message.
	CreateThread(ctx context.Context, channelID, messageID, name string) error
}
