package notify

import (
	"context"
	"errors"

	"github.com/semmidev/azwebapp/internal/domain"
)

// Multi sends to every notifier and joins their errors.
type Multi []domain.Notifier

func (m Multi) Notify(ctx context.Context, target domain.SiteTarget, item *domain.BackupItem) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, target, item); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
