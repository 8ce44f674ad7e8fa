package request

import (
	"time"

	"coupon-service/internal/usecase/commands"
)

type CreateCampaignRequest struct {
	Name           string    `json:"name" binding:"required"`
	TotalQuantity  int32     `json:"total_quantity" binding:"required,gt=0"`
	ExpirationDate time.Time `json:"expiration_date" binding:"required"`
	IssueStartTime time.Time `json:"issue_start_time" binding:"required"`
	IssueEndTime   time.Time `json:"issue_end_time" binding:"required"`
}

func (r CreateCampaignRequest) ToInput() commands.CreateCampaignInput {
	return commands.CreateCampaignInput{
		Name:           r.Name,
		TotalQuantity:  r.TotalQuantity,
		ExpirationDate: r.ExpirationDate,
		IssueStartTime: r.IssueStartTime,
		IssueEndTime:   r.IssueEndTime,
	}
}
