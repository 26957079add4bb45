package notify

import (
	"context"
	"log"
)

// Gateway delivers one text message to one Telegram chat. Delivery is
// best effort: callers log failures and never let them roll back or
// block the operation that triggered the send.
type Gateway interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// LogGateway writes messages to the process log instead of Telegram.
// Used in development when no bot token is configured.
type LogGateway struct{}

func (LogGateway) Send(_ context.Context, chatID int64, text string) error {
	log.Printf("notify (dry-run) -> %d: %s", chatID, text)
	return nil
}
