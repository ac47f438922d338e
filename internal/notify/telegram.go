package notify

import (
	"context"
	"fmt"
	"time"

	bot "github.com/go-telegram/bot"
	zap "go.uber.org/zap"
)

const telegramTimeout = 10 * time.Second

// telegramSender is the part of the bot client the notifier uses
type telegramSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) error
}

type botSender struct {
	b *bot.Bot
}

func (s botSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) error {
	_, err := s.b.SendMessage(ctx, params)
	return err
}

// TelegramNotifier posts messages to a Telegram chat
type TelegramNotifier struct {
	sender telegramSender
	chatID int64
	log    *zap.Logger
}

// NewTelegramNotifier creates a notifier for chatID using the bot token
func NewTelegramNotifier(token string, chatID int64, log *zap.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return nil, fmt.Errorf("telegram notifier requires a token and a chat id")
	}
	if log == nil {
		log = zap.NewNop()
	}

	b, err := bot.New(token, bot.WithSkipGetMe())
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		sender: botSender{b: b},
		chatID: chatID,
		log:    log,
	}, nil
}

// Show posts message in the background
func (n *TelegramNotifier) Show(message string) {
	params := &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   fmt.Sprintf("[%s] %s", AppName, message),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), telegramTimeout)
		defer cancel()

		if err := n.sender.SendMessage(ctx, params); err != nil {
			n.log.Warn("telegram notification failed",
				zap.Int64("chat_id", n.chatID),
				zap.Error(err))
		}
	}()
}
