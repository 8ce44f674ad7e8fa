package api

import (
	"net/http"

	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// abortDomainError translates the shared sentinel errors into HTTP statuses.
// Business rejections keep their own messages; anything unrecognized is a 500
// with the raw error preserved for the error middleware.
func abortDomainError(c *gin.Context, err error) {
	switch {
	case errs.Is(err, errs.ErrInvalidCode):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Invalid campaign code", nil)
	case errs.Is(err, errs.ErrNotIssuableTime):
		httperr.AbortWithError(c, http.StatusConflict, err, "Campaign is not issuable at this time", nil)
	case errs.Is(err, errs.ErrAlreadyIssued):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coupon already issued", nil)
	case errs.Is(err, errs.ErrSoldOut):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coupon sold out", nil)
	case errs.Is(err, errs.ErrLockFailed):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Issuance is busy, try again", nil)
	case errs.Is(err, errs.ErrGrantNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Issued coupon not found", nil)
	case errs.Is(err, errs.ErrAlreadyUsed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coupon already used", nil)
	case errs.Is(err, errs.ErrExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Coupon expired", nil)
	case errs.Is(err, errs.ErrCampaignExists):
		httperr.AbortWithError(c, http.StatusConflict, err, "Campaign already exists", nil)
	case errs.Is(err, errs.ErrCampaignValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid campaign parameters", nil)
	case errs.Is(err, errs.ErrCampaignNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Campaign not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
