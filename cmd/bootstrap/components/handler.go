package components

import (
	"coupon-service/internal/handler"
	"coupon-service/internal/handler/api"
	"coupon-service/internal/infra/stream"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCouponHandler,
		func(a *stream.Admin) api.TopicInspector { return a },
		api.NewAdminHandler,
	),
	fx.Invoke(handler.NewRouter),
)
