package errs

import "errors"

// Domain-specific sentinel errors for the issuance and usage flows
var (
	// Admission rejections (business outcomes, not failures)
	ErrInvalidCode     = errors.New("invalid campaign code")
	ErrNotIssuableTime = errors.New("campaign is not issuable at this time")
	ErrAlreadyIssued   = errors.New("coupon already issued to requester")
	ErrSoldOut         = errors.New("coupon sold out")

	// Usage rejections
	ErrGrantNotFound = errors.New("issued coupon not found")
	ErrAlreadyUsed   = errors.New("coupon already used")
	ErrExpired       = errors.New("coupon expired")

	// Contention (retryable by the caller)
	ErrLockFailed = errors.New("failed to acquire issuance lock")

	// Admin errors
	ErrCampaignExists     = errors.New("campaign with same name and expiration already exists")
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrCampaignValidation = errors.New("campaign validation failed")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrReservationFailed       = errors.New("reservation backend operation failed")
	ErrPublishFailed           = errors.New("failed to publish issuance request")
)
