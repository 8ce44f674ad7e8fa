package repository

import (
	"context"
	"errors"

	"coupon-service/internal/infra"
	"coupon-service/internal/usecase/queries"

	"github.com/jackc/pgx/v5"
)

// Read stores return query views directly, keeping the read path free of
// domain entity construction.

type CampaignReadStore struct {
	db DBTX
}

func NewCampaignReadStore(db DBTX) *CampaignReadStore {
	return &CampaignReadStore{db: db}
}

func (s *CampaignReadStore) FindByCode(ctx context.Context, code string) (*queries.CampaignView, error) {
	var view queries.CampaignView
	err := s.db.QueryRow(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns WHERE code = $1`,
		code,
	).Scan(
		&view.ID, &view.Code, &view.Name, &view.TotalQuantity, &view.RemainingQuantity,
		&view.ExpirationDate, &view.IssueStartTime, &view.IssueEndTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("campaign not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find campaign", err)
	}
	return &view, nil
}

func (s *CampaignReadStore) List(ctx context.Context) ([]*queries.CampaignView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns ORDER BY issue_start_time DESC`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list campaigns", err)
	}
	defer rows.Close()

	var out []*queries.CampaignView
	for rows.Next() {
		var view queries.CampaignView
		if err := rows.Scan(
			&view.ID, &view.Code, &view.Name, &view.TotalQuantity, &view.RemainingQuantity,
			&view.ExpirationDate, &view.IssueStartTime, &view.IssueEndTime,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan campaign view", err)
		}
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate campaign views", err)
	}
	return out, nil
}

type GrantReadStore struct {
	db DBTX
}

func NewGrantReadStore(db DBTX) *GrantReadStore {
	return &GrantReadStore{db: db}
}

func (s *GrantReadStore) FindByRequester(ctx context.Context, requester string) (*queries.GrantView, error) {
	var view queries.GrantView
	err := s.db.QueryRow(ctx, `
		SELECT g.id, g.requester, g.campaign_id, c.name, g.status, g.issued_at, g.used_at, c.expiration_date
		FROM grants g
		JOIN campaigns c ON g.campaign_id = c.id
		WHERE g.requester = $1
		ORDER BY g.issued_at DESC
		LIMIT 1`,
		requester,
	).Scan(
		&view.ID, &view.Requester, &view.CampaignID, &view.CampaignName,
		&view.Status, &view.IssuedAt, &view.UsedAt, &view.ExpirationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("grant not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find grant", err)
	}
	return &view, nil
}
