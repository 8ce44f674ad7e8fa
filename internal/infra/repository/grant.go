package repository

import (
	"context"
	"errors"
	"time"

	"coupon-service/internal/domain/grant"
	"coupon-service/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// GrantRow mirrors the grants table.
type GrantRow struct {
	ID         uuid.UUID
	Requester  string
	CampaignID uuid.UUID
	IssuedAt   time.Time
	UsedAt     *time.Time
	Status     string
}

// ExpiringGrantRow is the join row the expiration scan pages through.
type ExpiringGrantRow struct {
	Requester    string
	CampaignName string
}

type GrantRepository struct {
	db DBTX
}

func NewGrantRepository(db DBTX) *GrantRepository {
	return &GrantRepository{db: db}
}

// Insert writes the grant, relying on the unique (campaign_id, requester)
// index for idempotence: a conflicting insert is reported as inserted=false,
// never as an error. This is what makes at-least-once redelivery safe.
func (r *GrantRepository) Insert(ctx context.Context, q DBTX, g *grant.Grant) (bool, error) {
	tag, err := q.Exec(ctx, `
		INSERT INTO grants (id, requester, campaign_id, issued_at, used_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (campaign_id, requester) DO NOTHING`,
		g.ID(), g.Requester(), g.CampaignID(), g.IssuedAt(), g.UsedAt(), string(g.Status()),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return false, infra.WrapRepoErr("campaign does not exist", err, infra.KindForeignKeyViolated)
		}
		return false, infra.WrapRepoErr("failed to insert grant", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *GrantRepository) FindByRequester(ctx context.Context, requester string) (*GrantRow, error) {
	var row GrantRow
	err := r.db.QueryRow(ctx, `
		SELECT id, requester, campaign_id, issued_at, used_at, status
		FROM grants
		WHERE requester = $1
		ORDER BY issued_at DESC
		LIMIT 1`,
		requester,
	).Scan(&row.ID, &row.Requester, &row.CampaignID, &row.IssuedAt, &row.UsedAt, &row.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("grant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find grant", err)
	}
	return &row, nil
}

func (r *GrantRepository) ExistsByCampaignAndRequester(ctx context.Context, q DBTX, campaignID uuid.UUID, requester string) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM grants WHERE campaign_id = $1 AND requester = $2)`,
		campaignID, requester,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check grant existence", err)
	}
	return exists, nil
}

// TransitionStatus persists a lifecycle transition (USED/EXPIRED) decided by
// the domain entity, guarded by the status the decision was based on. A false
// return means a concurrent writer transitioned the grant first and nothing
// was changed.
func (r *GrantRepository) TransitionStatus(ctx context.Context, g *grant.Grant, from grant.Status) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE grants SET status = $2, used_at = $3 WHERE id = $1 AND status = $4`,
		g.ID(), string(g.Status()), g.UsedAt(), string(from),
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update grant status", err)
	}
	return tag.RowsAffected() == 1, nil
}

// FindExpiringOn pages through ISSUED grants whose campaign expires on the
// given date, ordered by requester for stable pagination.
func (r *GrantRepository) FindExpiringOn(ctx context.Context, date time.Time, limit, offset int) ([]ExpiringGrantRow, error) {
	rows, err := r.db.Query(ctx, `
		SELECT g.requester, c.name
		FROM grants g
		JOIN campaigns c ON g.campaign_id = c.id
		WHERE c.expiration_date = $1 AND g.status = 'ISSUED'
		ORDER BY g.requester
		LIMIT $2 OFFSET $3`,
		date, limit, offset,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query expiring grants", err)
	}
	defer rows.Close()

	var out []ExpiringGrantRow
	for rows.Next() {
		var row ExpiringGrantRow
		if err := rows.Scan(&row.Requester, &row.CampaignName); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expiring grant row", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate expiring grant rows", err)
	}
	return out, nil
}
