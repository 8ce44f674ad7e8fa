package commands

import (
	"context"
	"time"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/domain/grant"
	"coupon-service/internal/infra/redisstore"
	"coupon-service/internal/infra/repository"
	"coupon-service/internal/infra/stream"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// TxBeginner opens ledger transactions; *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Write-side ports. The ledger repositories take an explicit DBTX so one
// transaction can span the dedup insert and the quota decrement.
type CampaignRepository interface {
	Create(ctx context.Context, c *campaign.Campaign) error
	FindByCode(ctx context.Context, code string) (*repository.CampaignRow, error)
	FindByCodeForUpdate(ctx context.Context, tx repository.DBTX, code string) (*repository.CampaignRow, error)
	FindByID(ctx context.Context, id uuid.UUID) (*repository.CampaignRow, error)
	TryReserve(ctx context.Context, q repository.DBTX, campaignID uuid.UUID) (bool, error)
	ReleaseReservation(ctx context.Context, q repository.DBTX, campaignID uuid.UUID) error
	ExistsByNameAndExpiration(ctx context.Context, name string, expirationDate time.Time) (bool, error)
}

type GrantRepository interface {
	Insert(ctx context.Context, q repository.DBTX, g *grant.Grant) (bool, error)
	FindByRequester(ctx context.Context, requester string) (*repository.GrantRow, error)
	ExistsByCampaignAndRequester(ctx context.Context, q repository.DBTX, campaignID uuid.UUID, requester string) (bool, error)
	TransitionStatus(ctx context.Context, g *grant.Grant, from grant.Status) (bool, error)
	FindExpiringOn(ctx context.Context, date time.Time, limit, offset int) ([]repository.ExpiringGrantRow, error)
}

// Reserver is the atomic reservation backend: duplicate check, quota check
// and reservation mark as one indivisible step.
type Reserver interface {
	Reserve(ctx context.Context, campaignCode, requester string, totalQuantity int32, ttl time.Duration) (redisstore.ReserveResult, error)
	Release(ctx context.Context, campaignCode, requester string) error
}

// Locker hands out a cluster-wide mutex per campaign; the returned closure
// releases it.
type Locker interface {
	Acquire(ctx context.Context, campaignCode string) (func() error, error)
}

type Publisher interface {
	PublishIssuance(ctx context.Context, req stream.IssuanceRequest) error
	PublishUsage(ctx context.Context, event stream.UsageEvent) error
}

type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

func toCampaign(row *repository.CampaignRow) (*campaign.Campaign, error) {
	return campaign.NewCampaign(
		row.ID,
		row.Code,
		row.Name,
		row.TotalQuantity,
		row.RemainingQuantity,
		row.ExpirationDate,
		row.IssueStartTime,
		row.IssueEndTime,
	)
}
