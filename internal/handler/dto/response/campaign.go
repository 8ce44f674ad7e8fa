package response

import (
	"time"

	"coupon-service/internal/infra/repository"
	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type CampaignResponse struct {
	ID                uuid.UUID `json:"id"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	TotalQuantity     int32     `json:"total_quantity"`
	RemainingQuantity int32     `json:"remaining_quantity"`
	ExpirationDate    time.Time `json:"expiration_date"`
	IssueStartTime    time.Time `json:"issue_start_time"`
	IssueEndTime      time.Time `json:"issue_end_time"`
}

func FromCampaignView(v *queries.CampaignView) CampaignResponse {
	return CampaignResponse{
		ID:                v.ID,
		Code:              v.Code,
		Name:              v.Name,
		TotalQuantity:     v.TotalQuantity,
		RemainingQuantity: v.RemainingQuantity,
		ExpirationDate:    v.ExpirationDate,
		IssueStartTime:    v.IssueStartTime,
		IssueEndTime:      v.IssueEndTime,
	}
}

func FromCampaignViews(views []*queries.CampaignView) []CampaignResponse {
	out := make([]CampaignResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromCampaignView(v))
	}
	return out
}

func FromCampaignRow(row *repository.CampaignRow) CampaignResponse {
	return CampaignResponse{
		ID:                row.ID,
		Code:              row.Code,
		Name:              row.Name,
		TotalQuantity:     row.TotalQuantity,
		RemainingQuantity: row.RemainingQuantity,
		ExpirationDate:    row.ExpirationDate,
		IssueStartTime:    row.IssueStartTime,
		IssueEndTime:      row.IssueEndTime,
	}
}
