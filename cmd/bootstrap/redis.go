package bootstrap

import (
	"context"

	"coupon-service/internal/infra/redisstore"
	"coupon-service/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
		redisstore.NewReservationStore,
		NewLockManager,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) (*redis.Client, error) {
	client, cleanup, err := redisstore.Connect(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return client, nil
}

func NewLockManager(client *redis.Client, cfg config.Config) *redisstore.LockManager {
	return redisstore.NewLockManager(client, cfg.Lock.WaitTimeout, cfg.Lock.HoldTTL)
}
