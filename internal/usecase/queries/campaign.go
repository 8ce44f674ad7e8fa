package queries

import (
	"context"
	"time"

	"coupon-service/internal/infra"
	"coupon-service/internal/pkg/errs"

	"github.com/google/uuid"
)

type CampaignView struct {
	ID                uuid.UUID `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	TotalQuantity     int32     `json:"total_quantity"`
	RemainingQuantity int32     `json:"remaining_quantity"`
	ExpirationDate    time.Time `json:"expiration_date"`
	IssueStartTime    time.Time `json:"issue_start_time"`
	IssueEndTime      time.Time `json:"issue_end_time"`
}

type CampaignReadStore interface {
	FindByCode(ctx context.Context, code string) (*CampaignView, error)
	List(ctx context.Context) ([]*CampaignView, error)
}

type CampaignQueries interface {
	GetByCode(ctx context.Context, code string) (*CampaignView, error)
	List(ctx context.Context) ([]*CampaignView, error)
}

type campaignQueriesImpl struct {
	store CampaignReadStore
}

func NewCampaignQueries(store CampaignReadStore) CampaignQueries {
	return &campaignQueriesImpl{store: store}
}

func (q *campaignQueriesImpl) GetByCode(ctx context.Context, code string) (*CampaignView, error) {
	view, err := q.store.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCampaignNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *campaignQueriesImpl) List(ctx context.Context) ([]*CampaignView, error) {
	return q.store.List(ctx)
}
