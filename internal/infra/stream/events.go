package stream

import (
	"time"

	"github.com/google/uuid"
)

// IssuanceRequest is the transient pipeline message: it exists only inside
// the queue and is never persisted beyond queue retention.
type IssuanceRequest struct {
	Requester    string    `json:"requester"`
	CampaignCode string    `json:"campaign_code"`
	CampaignID   uuid.UUID `json:"campaign_id"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// UsageEvent triggers the fire-and-forget notification on successful use.
type UsageEvent struct {
	Requester    string `json:"requester"`
	CampaignName string `json:"campaign_name"`
}
