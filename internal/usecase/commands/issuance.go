package commands

import (
	"context"
	"log/slog"
	"time"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/redisstore"
	"coupon-service/internal/infra/repository"
	"coupon-service/internal/infra/stream"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/metrics"
)

type IssuanceCommands interface {
	// Issue decides and persists synchronously through the configured
	// admission strategy.
	Issue(ctx context.Context, code, requester string) error
	// Submit runs the fast-path reservation and enqueues persistence; a nil
	// return means accepted, not yet persisted.
	Submit(ctx context.Context, code, requester string) error
}

type issuanceUseCaseImpl struct {
	campaignRepo CampaignRepository
	strategy     AdmissionStrategy
	reserver     Reserver
	publisher    Publisher
	clock        clock.Clock
}

func NewIssuanceUseCase(
	campaignRepo CampaignRepository,
	strategy AdmissionStrategy,
	reserver Reserver,
	publisher Publisher,
	clock clock.Clock,
) IssuanceCommands {
	return &issuanceUseCaseImpl{
		campaignRepo: campaignRepo,
		strategy:     strategy,
		reserver:     reserver,
		publisher:    publisher,
		clock:        clock,
	}
}

func (u *issuanceUseCaseImpl) Issue(ctx context.Context, code, requester string) error {
	start := time.Now()
	err := u.issue(ctx, code, requester)
	metrics.RecordAdmission(u.strategy.Name(), admissionLabel(err), time.Since(start).Seconds())
	return err
}

func (u *issuanceUseCaseImpl) issue(ctx context.Context, code, requester string) error {
	row, _, err := u.loadIssuable(ctx, code)
	if err != nil {
		return err
	}
	return u.strategy.Admit(ctx, row, requester, u.clock.Now())
}

func (u *issuanceUseCaseImpl) Submit(ctx context.Context, code, requester string) error {
	start := time.Now()
	err := u.submit(ctx, code, requester)
	metrics.RecordAdmission("pipeline", admissionLabel(err), time.Since(start).Seconds())
	return err
}

func (u *issuanceUseCaseImpl) submit(ctx context.Context, code, requester string) error {
	row, camp, err := u.loadIssuable(ctx, code)
	if err != nil {
		return err
	}
	now := u.clock.Now()

	result, err := u.reserver.Reserve(ctx, code, requester, row.TotalQuantity, camp.ReservationTTL(now))
	if err != nil {
		return errs.Mark(err, errs.ErrReservationFailed)
	}
	switch result {
	case redisstore.ReserveDuplicate:
		return errs.ErrAlreadyIssued
	case redisstore.ReserveExhausted:
		return errs.ErrSoldOut
	}

	req := stream.IssuanceRequest{
		Requester:    requester,
		CampaignCode: code,
		CampaignID:   row.ID,
		SubmittedAt:  now,
	}
	if err := u.publisher.PublishIssuance(ctx, req); err != nil {
		// an accepted request must reach the queue; undo the reservation so
		// the requester can retry
		if relErr := u.reserver.Release(ctx, code, requester); relErr != nil {
			slog.Error("failed to roll back reservation after publish failure",
				"campaign_code", code, "requester", requester, "error", relErr)
		}
		return err
	}
	return nil
}

// loadIssuable runs the first two admission checks in their fixed order:
// unknown code, then issuance window.
func (u *issuanceUseCaseImpl) loadIssuable(ctx context.Context, code string) (*repository.CampaignRow, *campaign.Campaign, error) {
	row, err := u.campaignRepo.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.ErrInvalidCode
		}
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	camp, err := toCampaign(row)
	if err != nil {
		return nil, nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !camp.IsIssuableAt(u.clock.Now()) {
		return nil, nil, errs.ErrNotIssuableTime
	}
	return row, camp, nil
}

func admissionLabel(err error) string {
	switch {
	case err == nil:
		return "issued"
	case errs.Is(err, errs.ErrAlreadyIssued):
		return "duplicate"
	case errs.Is(err, errs.ErrSoldOut):
		return "sold_out"
	case errs.Is(err, errs.ErrNotIssuableTime):
		return "outside_window"
	case errs.Is(err, errs.ErrInvalidCode):
		return "invalid_code"
	case errs.Is(err, errs.ErrLockFailed):
		return "lock_failed"
	default:
		return "error"
	}
}
