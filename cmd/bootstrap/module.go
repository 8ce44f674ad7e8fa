package bootstrap

import (
	"coupon-service/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	RedisModule,
	KafkaModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
	components.WorkerModule,
)
