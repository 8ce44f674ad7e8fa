package repository

import (
	"context"
	"errors"
	"time"

	"coupon-service/internal/domain/campaign"
	"coupon-service/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CampaignRow mirrors the campaigns table.
type CampaignRow struct {
	ID                uuid.UUID
	Code              string
	Name              string
	TotalQuantity     int32
	RemainingQuantity int32
	ExpirationDate    time.Time
	IssueStartTime    time.Time
	IssueEndTime      time.Time
}

type CampaignRepository struct {
	db DBTX
}

func NewCampaignRepository(db DBTX) *CampaignRepository {
	return &CampaignRepository{db: db}
}

const campaignColumns = `id, code, name, total_quantity, remaining_quantity,
	expiration_date, issue_start_time, issue_end_time`

func (r *CampaignRepository) Create(ctx context.Context, c *campaign.Campaign) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO campaigns (id, code, name, total_quantity, remaining_quantity,
			expiration_date, issue_start_time, issue_end_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID(), c.Code().String(), c.Name(), c.TotalQuantity(), c.RemainingQuantity(),
		c.ExpirationDate(), c.IssueStartTime(), c.IssueEndTime(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return infra.WrapRepoErr("campaign already exists", err, infra.KindDuplicateKey)
		}
		return infra.WrapRepoErr("failed to create campaign", err)
	}
	return nil
}

func (r *CampaignRepository) FindByCode(ctx context.Context, code string) (*CampaignRow, error) {
	return r.findOne(ctx, r.db, `SELECT `+campaignColumns+` FROM campaigns WHERE code = $1`, code)
}

// FindByCodeForUpdate takes an exclusive row lock on the campaign for the
// duration of the surrounding transaction.
func (r *CampaignRepository) FindByCodeForUpdate(ctx context.Context, tx DBTX, code string) (*CampaignRow, error) {
	return r.findOne(ctx, tx, `SELECT `+campaignColumns+` FROM campaigns WHERE code = $1 FOR UPDATE`, code)
}

func (r *CampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*CampaignRow, error) {
	return r.findOne(ctx, r.db, `SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id)
}

func (r *CampaignRepository) findOne(ctx context.Context, q DBTX, sql string, arg any) (*CampaignRow, error) {
	var row CampaignRow
	err := q.QueryRow(ctx, sql, arg).Scan(
		&row.ID, &row.Code, &row.Name, &row.TotalQuantity, &row.RemainingQuantity,
		&row.ExpirationDate, &row.IssueStartTime, &row.IssueEndTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find campaign", err)
	}
	return &row, nil
}

// TryReserve is the ledger's atomic conditional decrement: one UPDATE guarded
// by remaining_quantity > 0. Zero rows affected means the quota is exhausted,
// with no partial state change.
func (r *CampaignRepository) TryReserve(ctx context.Context, q DBTX, campaignID uuid.UUID) (bool, error) {
	tag, err := q.Exec(ctx, `
		UPDATE campaigns
		SET remaining_quantity = remaining_quantity - 1
		WHERE id = $1 AND remaining_quantity > 0`,
		campaignID,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve campaign quota", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseReservation undoes a TryReserve that could not be completed, capped
// at total_quantity so compensation can never overshoot.
func (r *CampaignRepository) ReleaseReservation(ctx context.Context, q DBTX, campaignID uuid.UUID) error {
	_, err := q.Exec(ctx, `
		UPDATE campaigns
		SET remaining_quantity = remaining_quantity + 1
		WHERE id = $1 AND remaining_quantity < total_quantity`,
		campaignID,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release campaign reservation", err)
	}
	return nil
}

func (r *CampaignRepository) ExistsByNameAndExpiration(ctx context.Context, name string, expirationDate time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM campaigns WHERE name = $1 AND expiration_date = $2)`,
		name, expirationDate,
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check campaign existence", err)
	}
	return exists, nil
}

func (r *CampaignRepository) List(ctx context.Context) ([]CampaignRow, error) {
	rows, err := r.db.Query(ctx, `SELECT `+campaignColumns+` FROM campaigns ORDER BY issue_start_time DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list campaigns", err)
	}
	defer rows.Close()

	var out []CampaignRow
	for rows.Next() {
		var row CampaignRow
		if err := rows.Scan(
			&row.ID, &row.Code, &row.Name, &row.TotalQuantity, &row.RemainingQuantity,
			&row.ExpirationDate, &row.IssueStartTime, &row.IssueEndTime,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan campaign row", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate campaign rows", err)
	}
	return out, nil
}
