package response

import (
	"time"

	"coupon-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type GrantResponse struct {
	ID             uuid.UUID  `json:"id"`
	Requester      string     `json:"requester"`
	CampaignID     uuid.UUID  `json:"campaign_id"`
	CampaignName   string     `json:"campaign_name"`
	Status         string     `json:"status"`
	IssuedAt       time.Time  `json:"issued_at"`
	UsedAt         *time.Time `json:"used_at,omitempty"`
	ExpirationDate time.Time  `json:"expiration_date"`
}

func FromGrantView(v *queries.GrantView) GrantResponse {
	return GrantResponse{
		ID:             v.ID,
		Requester:      v.Requester,
		CampaignID:     v.CampaignID,
		CampaignName:   v.CampaignName,
		Status:         v.Status,
		IssuedAt:       v.IssuedAt,
		UsedAt:         v.UsedAt,
		ExpirationDate: v.ExpirationDate,
	}
}

// AcceptedResponse acknowledges an asynchronous issuance submission: the
// request passed the fast-path checks but the grant is not persisted yet.
type AcceptedResponse struct {
	Status string `json:"status"`
}
