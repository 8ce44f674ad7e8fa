package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/errs"
)

type ExpirationCommands interface {
	// NotifyExpiring mails every holder of an ISSUED grant whose campaign
	// expires exactly NoticeDays from today. Individual delivery failures are
	// logged and skipped; the scan itself only fails on a ledger error.
	NotifyExpiring(ctx context.Context) error
}

type expirationUseCaseImpl struct {
	grantRepo GrantRepository
	notifier  Notifier
	cfg       config.ExpiryConfig
	clock     clock.Clock
}

func NewExpirationUseCase(
	grantRepo GrantRepository,
	notifier Notifier,
	cfg config.ExpiryConfig,
	clock clock.Clock,
) ExpirationCommands {
	return &expirationUseCaseImpl{
		grantRepo: grantRepo,
		notifier:  notifier,
		cfg:       cfg,
		clock:     clock,
	}
}

func (u *expirationUseCaseImpl) NotifyExpiring(ctx context.Context) error {
	now := u.clock.Now()
	y, m, d := now.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, u.cfg.NoticeDays)

	notified := 0
	for offset := 0; ; offset += u.cfg.ChunkSize {
		rows, err := u.grantRepo.FindExpiringOn(ctx, target, u.cfg.ChunkSize, offset)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		for _, row := range rows {
			subject := fmt.Sprintf("Your %s coupon expires on %s", row.CampaignName, target.Format("2006-01-02"))
			body := fmt.Sprintf("The coupon for campaign %q expires on %s. Use it before it is gone.",
				row.CampaignName, target.Format("2006-01-02"))
			if err := u.notifier.Send(ctx, row.Requester, subject, body); err != nil {
				slog.Warn("failed to send expiry notice", "requester", row.Requester, "error", err)
				continue
			}
			notified++
		}

		if len(rows) < u.cfg.ChunkSize {
			break
		}
	}

	slog.Info("expiry notice scan finished", "expiration_date", target.Format("2006-01-02"), "notified", notified)
	return nil
}
