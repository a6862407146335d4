package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Telegram sends registrations to one chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram authorizes the bot token against the Telegram API.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("NewTelegram: %w", err)
	}
	bot.Debug = false
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Notify(ctx context.Context, reg Registration) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("(*Telegram).Notify: %w", err)
	}
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, reg.Message())); err != nil {
		return fmt.Errorf("(*Telegram).Notify: %w", err)
	}
	return nil
}
