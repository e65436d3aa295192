package publisher

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-deal-service/internal/domain"
)

// FanOut delivers each event to every publisher, even when an earlier one fails.
type FanOut []domain.EventPublisher

func (f FanOut) PublishDealEvent(ctx context.Context, event domain.DealEvent) error {
	var errs []error
	for _, p := range f {
		if err := p.PublishDealEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
