package queries

import (
	"context"
	"time"

	"coupon-service/internal/infra"
	"coupon-service/internal/pkg/errs"

	"github.com/google/uuid"
)

type GrantView struct {
	ID             uuid.UUID  `json:"id"`
	Requester      string     `json:"requester"`
	CampaignID     uuid.UUID  `json:"campaign_id"`
	CampaignName   string     `json:"campaign_name"`
	Status         string     `json:"status"`
	IssuedAt       time.Time  `json:"issued_at"`
	UsedAt         *time.Time `json:"used_at,omitempty"`
	ExpirationDate time.Time  `json:"expiration_date"`
}

type GrantReadStore interface {
	FindByRequester(ctx context.Context, requester string) (*GrantView, error)
}

type GrantQueries interface {
	GetByRequester(ctx context.Context, requester string) (*GrantView, error)
}

type grantQueriesImpl struct {
	store GrantReadStore
}

func NewGrantQueries(store GrantReadStore) GrantQueries {
	return &grantQueriesImpl{store: store}
}

func (q *grantQueriesImpl) GetByRequester(ctx context.Context, requester string) (*GrantView, error) {
	view, err := q.store.FindByRequester(ctx, requester)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrGrantNotFound
		}
		return nil, err
	}
	return view, nil
}
