package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var errNoReviewGroup = errors.New("review group id is not configured")

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier delivers HTML messages to the review group or a user's private chat.
type TelegramNotifier struct {
	bot           botSender
	reviewGroupID int64
}

func NewTelegramNotifier(token string, reviewGroupID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	bot.Debug = false
	return &TelegramNotifier{bot: bot, reviewGroupID: reviewGroupID}, nil
}

func (n *TelegramNotifier) chatID(to domain.Recipient) (int64, error) {
	switch to.Kind {
	case domain.RecipientReviewGroup:
		if n.reviewGroupID == 0 {
			return 0, errNoReviewGroup
		}
		return n.reviewGroupID, nil
	case domain.RecipientUser:
		if to.UserID == 0 {
			return 0, errors.New("recipient user id is empty")
		}
		// A private chat id equals the user's id.
		return to.UserID, nil
	}
	return 0, fmt.Errorf("unknown recipient kind %q", to.Kind)
}

func (n *TelegramNotifier) Publish(ctx context.Context, to domain.Recipient, text string) error {
	chatID, err := n.chatID(to)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotifyFailed, err)
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotifyFailed, err)
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("%w: send to %d: %v", domain.ErrNotifyFailed, chatID, err)
	}
	return nil
}
