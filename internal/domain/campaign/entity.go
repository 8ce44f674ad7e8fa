package campaign

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuantity = errors.New("total quantity must be positive")
	ErrInvalidWindow   = errors.New("issuance window start must precede end")
	ErrQuantityRange   = errors.New("remaining quantity out of range")
)

// Campaign is one coupon offer: a fixed quota of single-use grants issuable
// during [issueStartTime, issueEndTime). totalQuantity never changes after
// creation; remainingQuantity only ever decreases, through the ledger's
// conditional decrement.
type Campaign struct {
	id                uuid.UUID
	code              Code
	name              string
	totalQuantity     int32
	remainingQuantity int32
	expirationDate    time.Time
	issueStartTime    time.Time
	issueEndTime      time.Time
}

func NewCampaign(
	id uuid.UUID,
	code string,
	name string,
	totalQuantity int32,
	remainingQuantity int32,
	expirationDate time.Time,
	issueStartTime, issueEndTime time.Time,
) (*Campaign, error) {
	if totalQuantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !issueStartTime.Before(issueEndTime) {
		return nil, ErrInvalidWindow
	}
	if remainingQuantity < 0 || remainingQuantity > totalQuantity {
		return nil, ErrQuantityRange
	}

	return &Campaign{
		id:                id,
		code:              Code(code),
		name:              name,
		totalQuantity:     totalQuantity,
		remainingQuantity: remainingQuantity,
		expirationDate:    expirationDate,
		issueStartTime:    issueStartTime,
		issueEndTime:      issueEndTime,
	}, nil
}

// Create builds a fresh campaign with a generated code and a full quota.
func Create(
	name string,
	totalQuantity int32,
	expirationDate time.Time,
	issueStartTime, issueEndTime time.Time,
) (*Campaign, error) {
	return NewCampaign(
		uuid.New(),
		GenerateCode(),
		name,
		totalQuantity,
		totalQuantity,
		expirationDate,
		issueStartTime,
		issueEndTime,
	)
}

// IsIssuableAt reports whether t falls inside [issueStartTime, issueEndTime).
func (c *Campaign) IsIssuableAt(t time.Time) bool {
	return !t.Before(c.issueStartTime) && t.Before(c.issueEndTime)
}

// ReservationTTL is how long a dedup marker in the reservation backend stays
// relevant: the rest of the campaign's active issuance window.
func (c *Campaign) ReservationTTL(now time.Time) time.Duration {
	remaining := c.issueEndTime.Sub(now)
	if remaining < time.Second {
		return time.Second
	}
	return remaining
}

// IsExpiredOn compares at date granularity: the campaign is expired once the
// current date is strictly after the expiration date.
func (c *Campaign) IsExpiredOn(now time.Time) bool {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := c.expirationDate.Date()
	nowDate := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	expDate := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return nowDate.After(expDate)
}

func (c *Campaign) ID() uuid.UUID             { return c.id }
func (c *Campaign) Code() Code                { return c.code }
func (c *Campaign) Name() string              { return c.name }
func (c *Campaign) TotalQuantity() int32      { return c.totalQuantity }
func (c *Campaign) RemainingQuantity() int32  { return c.remainingQuantity }
func (c *Campaign) ExpirationDate() time.Time { return c.expirationDate }
func (c *Campaign) IssueStartTime() time.Time { return c.issueStartTime }
func (c *Campaign) IssueEndTime() time.Time   { return c.issueEndTime }
