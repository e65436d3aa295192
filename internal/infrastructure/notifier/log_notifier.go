package notifier

import (
	"context"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
	"github.com/rs/zerolog"
)

// LogNotifier stands in for the chat channel when no bot token is configured.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "log_notifier").Logger()}
}

func (n *LogNotifier) Publish(_ context.Context, to domain.Recipient, text string) error {
	n.log.Info().
		Str("recipient", string(to.Kind)).
		Int64("user_id", to.UserID).
		Str("text", text).
		Msg("notification")
	return nil
}
