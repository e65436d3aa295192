package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"
)

type fakeBot struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if b.err != nil {
		return tgbotapi.Message{}, b.err
	}
	b.sent = append(b.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func TestPublishRoutesByRecipient(t *testing.T) {
	bot := &fakeBot{}
	n := &TelegramNotifier{bot: bot, reviewGroupID: -1001}

	require.NoError(t, n.Publish(context.Background(), domain.ReviewGroup(), "new deal"))
	require.NoError(t, n.Publish(context.Background(), domain.User(42), "approved"))

	require.Len(t, bot.sent, 2)
	require.Equal(t, int64(-1001), bot.sent[0].ChatID)
	require.Equal(t, int64(42), bot.sent[1].ChatID)
	require.Equal(t, tgbotapi.ModeHTML, bot.sent[1].ParseMode)
}

func TestPublishWithoutReviewGroupFails(t *testing.T) {
	n := &TelegramNotifier{bot: &fakeBot{}}

	err := n.Publish(context.Background(), domain.ReviewGroup(), "new deal")
	require.ErrorIs(t, err, domain.ErrNotifyFailed)
}

func TestPublishWrapsSendError(t *testing.T) {
	n := &TelegramNotifier{bot: &fakeBot{err: errors.New("forbidden: bot was blocked")}, reviewGroupID: -1}

	err := n.Publish(context.Background(), domain.User(42), "hi")
	require.ErrorIs(t, err, domain.ErrNotifyFailed)
	require.ErrorContains(t, err, "blocked")
}

func TestPublishHonoursCancelledContext(t *testing.T) {
	bot := &fakeBot{}
	n := &TelegramNotifier{bot: bot, reviewGroupID: -1}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.Error(t, n.Publish(ctx, domain.User(42), "hi"))
	require.Empty(t, bot.sent)
}
