package bootstrap

import (
	"context"

	"coupon-service/internal/infra/stream"
	"coupon-service/internal/pkg/config"

	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewProducer,
		NewAdmin,
	),
	fx.Invoke(EnsureTopics),
)

func NewProducer(lc fx.Lifecycle, cfg config.Config) (*stream.Producer, error) {
	producer, cleanup, err := stream.NewProducer(cfg.Kafka)
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

	return producer, nil
}

func NewAdmin(lc fx.Lifecycle, cfg config.Config) (*stream.Admin, error) {
	admin, cleanup, err := stream.NewAdmin(cfg.Kafka)
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

	return admin, nil
}

// EnsureTopics runs at startup so consumers never join a group on a missing
// topic.
func EnsureTopics(admin *stream.Admin) error {
	return admin.EnsureTopics()
}
