package request

type IssueCouponRequest struct {
	Code      string `json:"code" binding:"required"`
	Requester string `json:"requester" binding:"required"`
}

type UseCouponRequest struct {
	Requester string `json:"requester" binding:"required"`
}
