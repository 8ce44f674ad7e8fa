package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"coupon-service/internal/domain/grant"
	"coupon-service/internal/infra"
	"coupon-service/internal/infra/stream"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// IssuanceProcessor is the consumer side of the pipeline: it turns accepted
// issuance requests into ledger grants. It must tolerate redelivery, so the
// grant insert is idempotent and a replay of an already-persisted request is
// a silent no-op.
type IssuanceProcessor struct {
	campaignRepo CampaignRepository
	grantRepo    GrantRepository
	db           TxBeginner
	reserver     Reserver
	clock        clock.Clock
	logger       *slog.Logger
}

func NewIssuanceProcessor(
	campaignRepo CampaignRepository,
	grantRepo GrantRepository,
	db TxBeginner,
	reserver Reserver,
	clock clock.Clock,
	logger *slog.Logger,
) *IssuanceProcessor {
	return &IssuanceProcessor{
		campaignRepo: campaignRepo,
		grantRepo:    grantRepo,
		db:           db,
		reserver:     reserver,
		clock:        clock,
		logger:       logger,
	}
}

func (p *IssuanceProcessor) Handle(ctx context.Context, payload []byte) error {
	var req stream.IssuanceRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return stream.Permanent(errs.Wrap(err, "malformed issuance request"))
	}
	if req.Requester == "" || req.CampaignID == uuid.Nil {
		return stream.Permanent(errs.New("issuance request missing requester or campaign"))
	}

	tx, err := p.db.Begin(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to begin issuance transaction")
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			p.logger.Warn("failed to rollback issuance transaction", "error", rbErr)
		}
	}()

	inserted, err := p.grantRepo.Insert(ctx, tx, grant.Issue(req.Requester, req.CampaignID, p.clock.Now()))
	if err != nil {
		// a campaign deleted after acceptance will never reappear on retry
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return stream.Permanent(err)
		}
		return err
	}
	if !inserted {
		// redelivery after a successful persist
		p.logger.Info("grant already persisted, skipping",
			"campaign_code", req.CampaignCode, "requester", req.Requester)
		return nil
	}

	reserved, err := p.campaignRepo.TryReserve(ctx, tx, req.CampaignID)
	if err != nil {
		return err
	}
	if !reserved {
		// the ledger is authoritative; a fast-path acceptance the ledger
		// cannot honor will never succeed on retry, so give back the
		// advisory reservation before the message is dead-lettered
		if relErr := p.reserver.Release(ctx, req.CampaignCode, req.Requester); relErr != nil {
			p.logger.Warn("failed to release reservation for dead request",
				"campaign_code", req.CampaignCode, "requester", req.Requester, "error", relErr)
		}
		return stream.Permanent(errs.Mark(
			errs.New("ledger quota exhausted for accepted request"), errs.ErrSoldOut))
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Wrap(err, "failed to commit issuance transaction")
	}

	p.logger.Info("grant persisted",
		"campaign_code", req.CampaignCode, "requester", req.Requester)
	return nil
}

// UsageProcessor consumes usage events and sends the notification mail.
// Payload problems are permanent; delivery problems are retried.
type UsageProcessor struct {
	notifier Notifier
	logger   *slog.Logger
}

func NewUsageProcessor(notifier Notifier, logger *slog.Logger) *UsageProcessor {
	return &UsageProcessor{notifier: notifier, logger: logger}
}

func (p *UsageProcessor) Handle(ctx context.Context, payload []byte) error {
	var event stream.UsageEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return stream.Permanent(errs.Wrap(err, "malformed usage event"))
	}
	if event.Requester == "" {
		return stream.Permanent(errs.New("usage event missing requester"))
	}

	subject := fmt.Sprintf("Your %s coupon has been used", event.CampaignName)
	body := fmt.Sprintf("The coupon for campaign %q was redeemed. Thank you!", event.CampaignName)
	if err := p.notifier.Send(ctx, event.Requester, subject, body); err != nil {
		return errs.Wrap(err, "failed to send usage notification")
	}

	p.logger.Info("usage notification sent", "requester", event.Requester)
	return nil
}
