package api

import (
	"net/http"

	reqdto "coupon-service/internal/handler/dto/request"
	resdto "coupon-service/internal/handler/dto/response"
	"coupon-service/internal/handler/httperr"
	"coupon-service/internal/usecase/commands"
	"coupon-service/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	issuance commands.IssuanceCommands
	usage    commands.UsageCommands
	grants   queries.GrantQueries
}

func NewCouponHandler(issuance commands.IssuanceCommands, usage commands.UsageCommands, grants queries.GrantQueries) *CouponHandler {
	return &CouponHandler{issuance: issuance, usage: usage, grants: grants}
}

// @Summary Issue coupon
// @Description Issue a coupon synchronously through the configured admission strategy
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.IssueCouponRequest true "Issue coupon request"
// @Success 200 {object} resdto.GrantResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /coupons/issue [post]
func (h *CouponHandler) Issue(c *gin.Context) {
	var req reqdto.IssueCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.issuance.Issue(c.Request.Context(), req.Code, req.Requester); err != nil {
		abortDomainError(c, err)
		return
	}
	view, err := h.grants.GetByRequester(c.Request.Context(), req.Requester)
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromGrantView(view))
}

// @Summary Submit issuance request
// @Description Accept an issuance request for asynchronous processing
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.IssueCouponRequest true "Issue coupon request"
// @Success 202 {object} resdto.AcceptedResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /coupons/issue-requests [post]
func (h *CouponHandler) Submit(c *gin.Context) {
	var req reqdto.IssueCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.issuance.Submit(c.Request.Context(), req.Code, req.Requester); err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, resdto.AcceptedResponse{Status: "accepted"})
}

// @Summary Use coupon
// @Description Redeem the requester's issued coupon
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.UseCouponRequest true "Use coupon request"
// @Success 200 {object} resdto.GrantResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /coupons/use [post]
func (h *CouponHandler) Use(c *gin.Context) {
	var req reqdto.UseCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.usage.Use(c.Request.Context(), req.Requester); err != nil {
		abortDomainError(c, err)
		return
	}
	view, err := h.grants.GetByRequester(c.Request.Context(), req.Requester)
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromGrantView(view))
}

// @Summary Get issued coupon
// @Description Get the requester's most recently issued coupon
// @Tags coupons
// @Produce json
// @Param requester path string true "Requester"
// @Success 200 {object} resdto.GrantResponse
// @Failure 404 {object} map[string]string
// @Router /coupons/{requester} [get]
func (h *CouponHandler) Get(c *gin.Context) {
	requester := c.Param("requester")
	view, err := h.grants.GetByRequester(c.Request.Context(), requester)
	if err != nil {
		abortDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromGrantView(view))
}
