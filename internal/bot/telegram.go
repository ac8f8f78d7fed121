package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/trophybot/internal/models"
)

var ErrChatNotSet = errors.New("chat ID not set")

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, fantasyService CardService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error authorizing telegram bot: %w", err)
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(fantasyService),
		chatID:  chatID,
	}, nil
}

// Start answers commands until ctx is cancelled.
func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}

			slog.Debug("Handling command", "command", update.Message.Command(), "chat", update.Message.Chat.ID)
			msg := t.handler.HandleCommand(ctx, update)
			if _, err := t.bot.Send(msg); err != nil {
				slog.Error("Error sending message", "error", err)
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Send posts a card to the configured chat.
func (t *TelegramBot) Send(_ context.Context, card models.Card) error {
	if t.chatID == 0 {
		return ErrChatNotSet
	}

	msg := tgbotapi.NewMessage(t.chatID, RenderMarkdown(card))
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("error sending telegram message: %w", err)
	}

	slog.Info("Posted card to telegram", "title", card.Title)
	return nil
}
