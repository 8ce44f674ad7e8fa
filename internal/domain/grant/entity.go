package grant

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyUsed = errors.New("grant already used")
	ErrExpired     = errors.New("grant expired")
)

type Status string

const (
	StatusIssued  Status = "ISSUED"
	StatusUsed    Status = "USED"
	StatusExpired Status = "EXPIRED"
)

// Grant ties one requester to one campaign. It references the campaign by id
// only; listing a campaign's grants is a query, not a pointer walk.
type Grant struct {
	id         uuid.UUID
	requester  string
	campaignID uuid.UUID
	issuedAt   time.Time
	usedAt     *time.Time
	status     Status
}

func NewGrant(
	id uuid.UUID,
	requester string,
	campaignID uuid.UUID,
	issuedAt time.Time,
	usedAt *time.Time,
	status Status,
) *Grant {
	return &Grant{
		id:         id,
		requester:  requester,
		campaignID: campaignID,
		issuedAt:   issuedAt,
		usedAt:     usedAt,
		status:     status,
	}
}

// Issue creates a fresh ISSUED grant for the requester.
func Issue(requester string, campaignID uuid.UUID, now time.Time) *Grant {
	return &Grant{
		id:         uuid.New(),
		requester:  requester,
		campaignID: campaignID,
		issuedAt:   now,
		status:     StatusIssued,
	}
}

// Use advances the state machine. Expiry takes precedence over everything:
// once the campaign's expiration date (date granularity) has passed, the
// grant transitions to EXPIRED and every call reports ErrExpired, even if it
// was never used. A USED grant stays USED and reports ErrAlreadyUsed.
func (g *Grant) Use(now, campaignExpiration time.Time) error {
	if g.status == StatusExpired {
		return ErrExpired
	}
	if isPastDate(now, campaignExpiration) {
		g.status = StatusExpired
		return ErrExpired
	}
	if g.status == StatusUsed {
		return ErrAlreadyUsed
	}
	g.status = StatusUsed
	used := now
	g.usedAt = &used
	return nil
}

func (g *Grant) IsUsed() bool { return g.status == StatusUsed }

func isPastDate(now, expiration time.Time) bool {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := expiration.Date()
	nowDate := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	expDate := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return nowDate.After(expDate)
}

func (g *Grant) ID() uuid.UUID         { return g.id }
func (g *Grant) Requester() string     { return g.requester }
func (g *Grant) CampaignID() uuid.UUID { return g.campaignID }
func (g *Grant) IssuedAt() time.Time   { return g.issuedAt }
func (g *Grant) UsedAt() *time.Time    { return g.usedAt }
func (g *Grant) Status() Status        { return g.status }
