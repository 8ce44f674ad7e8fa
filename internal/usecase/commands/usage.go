package commands

import (
	"context"
	"errors"
	"log/slog"

	"coupon-service/internal/domain/grant"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/stream"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/metrics"
)

type UsageCommands interface {
	Use(ctx context.Context, requester string) error
}

type usageUseCaseImpl struct {
	grantRepo    GrantRepository
	campaignRepo CampaignRepository
	publisher    Publisher
	clock        clock.Clock
}

func NewUsageUseCase(
	grantRepo GrantRepository,
	campaignRepo CampaignRepository,
	publisher Publisher,
	clock clock.Clock,
) UsageCommands {
	return &usageUseCaseImpl{
		grantRepo:    grantRepo,
		campaignRepo: campaignRepo,
		publisher:    publisher,
		clock:        clock,
	}
}

func (u *usageUseCaseImpl) Use(ctx context.Context, requester string) error {
	err := u.use(ctx, requester)
	metrics.UsageResults.WithLabelValues(usageLabel(err)).Inc()
	return err
}

func (u *usageUseCaseImpl) use(ctx context.Context, requester string) error {
	row, err := u.grantRepo.FindByRequester(ctx, requester)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrGrantNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	campRow, err := u.campaignRepo.FindByID(ctx, row.CampaignID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	prior := grant.Status(row.Status)
	g := grant.NewGrant(row.ID, row.Requester, row.CampaignID, row.IssuedAt, row.UsedAt, prior)
	useErr := g.Use(u.clock.Now(), campRow.ExpirationDate)

	// Persist any transition the state machine made, including the lazy
	// ISSUED -> EXPIRED flip on a use attempt past the expiration date. The
	// update is guarded by the status this decision was based on, so two
	// concurrent calls can never both report success.
	if g.Status() != prior {
		applied, updErr := u.grantRepo.TransitionStatus(ctx, g, prior)
		if updErr != nil {
			return errs.Mark(updErr, errs.ErrDatabaseOperationFailed)
		}
		if !applied {
			if g.Status() == grant.StatusExpired {
				return errs.ErrExpired
			}
			return errs.ErrAlreadyUsed
		}
	}

	if useErr != nil {
		switch {
		case errors.Is(useErr, grant.ErrAlreadyUsed):
			return errs.ErrAlreadyUsed
		case errors.Is(useErr, grant.ErrExpired):
			return errs.ErrExpired
		default:
			return errs.Wrap(useErr, "grant use failed")
		}
	}

	// Fire-and-forget: the use succeeded regardless of whether the
	// notification event makes it out.
	event := stream.UsageEvent{Requester: requester, CampaignName: campRow.Name}
	if pubErr := u.publisher.PublishUsage(ctx, event); pubErr != nil {
		slog.Warn("failed to publish usage event", "requester", requester, "error", pubErr)
	}
	return nil
}

func usageLabel(err error) string {
	switch {
	case err == nil:
		return "used"
	case errs.Is(err, errs.ErrGrantNotFound):
		return "not_found"
	case errs.Is(err, errs.ErrAlreadyUsed):
		return "already_used"
	case errs.Is(err, errs.ErrExpired):
		return "expired"
	default:
		return "error"
	}
}
