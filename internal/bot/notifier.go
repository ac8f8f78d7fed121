package bot

import (
	"context"
	"errors"

	"github.com/omarshaarawi/trophybot/internal/models"
)

// Notifier delivers a card to one external channel.
type Notifier interface {
	Send(ctx context.Context, card models.Card) error
}

// Notifiers fans a card out to every sink. Every sink is attempted once;
// the errors of those that failed are joined.
type Notifiers []Notifier

func (n Notifiers) Send(ctx context.Context, card models.Card) error {
	var errs []error
	for _, notifier := range n {
		if err := notifier.Send(ctx, card); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
