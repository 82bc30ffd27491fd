// Package notify delivers rendered alerts to the operator's Telegram
// chat.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	tele "gopkg.in/telebot.v4"
)

// Telegram sends messages to a single configured chat. Sends are paced
// to ~1 msg/sec, matching the Bot API's per-chat limit.
type Telegram struct {
	bot     *tele.Bot
	chatID  int64
	limiter *rate.Limiter
}

// NewTelegram builds a bot client for the given credential and chat.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Client: &http.Client{Timeout: 15 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &Telegram{
		bot:     b,
		chatID:  chatID,
		limiter: rate.NewLimiter(rate.Every(1100*time.Millisecond), 1),
	}, nil
}

// Send posts one Markdown message. Link previews stay enabled so the
// explorer link renders a card. Failures are returned to the caller,
// which logs and moves on; there is no retry here.
func (t *Telegram) Send(ctx context.Context, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("telegram rate wait: %w", err)
	}
	chat := &tele.Chat{ID: t.chatID}
	_, err := t.bot.Send(chat, text, &tele.SendOptions{
		ParseMode:             tele.ModeMarkdown,
		DisableWebPagePreview: false,
	})
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	return nil
}
