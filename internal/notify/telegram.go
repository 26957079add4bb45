package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramGateway sends messages through the Telegram Bot API.
type TelegramGateway struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramGateway connects to the Bot API. The HTTP client timeout
// bounds every send, so a hung delivery fails instead of stalling the
// caller.
func NewTelegramGateway(token string, timeout time.Duration) (*TelegramGateway, error) {
	client := &http.Client{Timeout: timeout}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return nil, fmt.Errorf("connect telegram bot api: %w", err)
	}
	return &TelegramGateway{bot: bot}, nil
}

func (g *TelegramGateway) Send(ctx context.Context, chatID int64, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := g.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send telegram message to %d: %w", chatID, err)
	}
	return nil
}
