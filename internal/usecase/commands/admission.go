package commands

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"coupon-service/internal/domain/grant"
	"coupon-service/internal/infra/redisstore"
	"coupon-service/internal/infra/repository"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	StrategyExclusiveRegion = "exclusive_region"
	StrategyRowLock         = "row_lock"
	StrategyRedisScript     = "redis_script"
	StrategyRedisLock       = "redis_lock"
)

// AdmissionStrategy serializes the dedup+quota decision for one issuance
// attempt. The caller has already verified the code and the issuance window;
// the strategy owns the rest of the check order: duplicate first, quota
// second, both decided atomically.
//
// Outcomes are the shared sentinels: nil means a grant was persisted,
// errs.ErrAlreadyIssued and errs.ErrSoldOut are business rejections, anything
// else is a failure.
type AdmissionStrategy interface {
	Name() string
	Admit(ctx context.Context, row *repository.CampaignRow, requester string, now time.Time) error
}

// NewAdmissionStrategy selects the implementation named by configuration.
func NewAdmissionStrategy(
	cfg config.AdmissionConfig,
	campaignRepo CampaignRepository,
	grantRepo GrantRepository,
	reserver Reserver,
	locker Locker,
	db TxBeginner,
) (AdmissionStrategy, error) {
	deps := strategyDeps{campaignRepo: campaignRepo, grantRepo: grantRepo, db: db}

	switch cfg.Strategy {
	case StrategyExclusiveRegion:
		return &exclusiveRegionStrategy{strategyDeps: deps}, nil
	case StrategyRowLock:
		return &rowLockStrategy{strategyDeps: deps}, nil
	case StrategyRedisScript:
		return &redisScriptStrategy{strategyDeps: deps, reserver: reserver}, nil
	case StrategyRedisLock:
		return &redisLockStrategy{strategyDeps: deps, locker: locker}, nil
	default:
		return nil, errs.New("unknown admission strategy: " + cfg.Strategy)
	}
}

type strategyDeps struct {
	campaignRepo CampaignRepository
	grantRepo    GrantRepository
	db           TxBeginner
}

// issueWithinTx performs the atomic dedup+quota step against the ledger: the
// grant insert hits the unique (campaign_id, requester) index before the
// conditional decrement touches the quota, so a duplicate is rejected without
// consuming a slot, and a sold-out rejection rolls the insert back.
func (d strategyDeps) issueWithinTx(ctx context.Context, campaignID uuid.UUID, requester string, now time.Time) error {
	tx, err := d.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback issuance transaction", "error", rbErr)
		}
	}()

	inserted, err := d.grantRepo.Insert(ctx, tx, grant.Issue(requester, campaignID, now))
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !inserted {
		return errs.ErrAlreadyIssued
	}

	reserved, err := d.campaignRepo.TryReserve(ctx, tx, campaignID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !reserved {
		return errs.ErrSoldOut
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// exclusiveRegionStrategy serializes admission with an in-process mutex per
// campaign code. It only guards a single process: running more than one
// instance behind a load balancer voids its guarantee, which is why the
// ledger keeps its own unique index and conditional decrement as backstop.
type exclusiveRegionStrategy struct {
	strategyDeps
	mutexes sync.Map // campaign code -> *sync.Mutex
}

func (s *exclusiveRegionStrategy) Name() string { return StrategyExclusiveRegion }

func (s *exclusiveRegionStrategy) Admit(ctx context.Context, row *repository.CampaignRow, requester string, now time.Time) error {
	v, _ := s.mutexes.LoadOrStore(row.Code, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	return s.issueWithinTx(ctx, row.ID, requester, now)
}

// rowLockStrategy serializes admission on the campaign row itself with
// SELECT ... FOR UPDATE, so concurrent attempts across any number of
// instances queue on the database row.
type rowLockStrategy struct {
	strategyDeps
}

func (s *rowLockStrategy) Name() string { return StrategyRowLock }

func (s *rowLockStrategy) Admit(ctx context.Context, row *repository.CampaignRow, requester string, now time.Time) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback issuance transaction", "error", rbErr)
		}
	}()

	locked, err := s.campaignRepo.FindByCodeForUpdate(ctx, tx, row.Code)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	inserted, err := s.grantRepo.Insert(ctx, tx, grant.Issue(requester, locked.ID, now))
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !inserted {
		return errs.ErrAlreadyIssued
	}

	reserved, err := s.campaignRepo.TryReserve(ctx, tx, locked.ID)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !reserved {
		return errs.ErrSoldOut
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// redisScriptStrategy decides admission with the scripted check-and-reserve,
// then persists the grant. A persistence failure compensates by rolling the
// reservation back so the quota slot is not stranded in the fast path.
type redisScriptStrategy struct {
	strategyDeps
	reserver Reserver
}

func (s *redisScriptStrategy) Name() string { return StrategyRedisScript }

func (s *redisScriptStrategy) Admit(ctx context.Context, row *repository.CampaignRow, requester string, now time.Time) error {
	camp, err := toCampaign(row)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	result, err := s.reserver.Reserve(ctx, row.Code, requester, row.TotalQuantity, camp.ReservationTTL(now))
	if err != nil {
		return errs.Mark(err, errs.ErrReservationFailed)
	}
	switch result {
	case redisstore.ReserveDuplicate:
		return errs.ErrAlreadyIssued
	case redisstore.ReserveExhausted:
		return errs.ErrSoldOut
	}

	if err := s.issueWithinTx(ctx, row.ID, requester, now); err != nil {
		// the ledger has final say; undo the fast-path reservation
		if relErr := s.reserver.Release(ctx, row.Code, requester); relErr != nil {
			slog.Error("failed to roll back reservation after persist failure",
				"campaign_code", row.Code, "requester", requester, "error", relErr)
		}
		return err
	}
	return nil
}

// redisLockStrategy serializes admission under a cluster-wide mutex, then
// runs the same ledger transaction as the other lock-based strategies.
type redisLockStrategy struct {
	strategyDeps
	locker Locker
}

func (s *redisLockStrategy) Name() string { return StrategyRedisLock }

func (s *redisLockStrategy) Admit(ctx context.Context, row *repository.CampaignRow, requester string, now time.Time) error {
	release, err := s.locker.Acquire(ctx, row.Code)
	if err != nil {
		return err
	}
	defer func() {
		if relErr := release(); relErr != nil {
			slog.Warn("failed to release issuance lock", "campaign_code", row.Code, "error", relErr)
		}
	}()

	return s.issueWithinTx(ctx, row.ID, requester, now)
}
