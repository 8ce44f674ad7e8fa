package components

import (
	"context"
	"log/slog"
	"time"

	"coupon-service/internal/infra/stream"
	"coupon-service/internal/pkg/clock"
	"coupon-service/internal/pkg/config"
	"coupon-service/internal/usecase/commands"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Invoke(
		StartPipelineConsumers,
		StartExpiryScheduler,
	),
)

// StartPipelineConsumers runs the issuance and usage consumer groups for the
// lifetime of the application. Both share the retry policy and dead-letter
// through the producer.
func StartPipelineConsumers(
	lc fx.Lifecycle,
	cfg config.Config,
	producer *stream.Producer,
	issuanceProc *commands.IssuanceProcessor,
	usageProc *commands.UsageProcessor,
	logger *slog.Logger,
) error {
	policy := stream.NewRetryPolicy(cfg.Retry)

	issuanceConsumer, issuanceCleanup, err := stream.NewConsumer(
		cfg.Kafka.Brokers, cfg.Kafka.ConsumerGroup, cfg.Kafka.IssuanceTopic, policy, producer, logger)
	if err != nil {
		return err
	}

	usageConsumer, usageCleanup, err := stream.NewConsumer(
		cfg.Kafka.Brokers, cfg.Kafka.UsageGroup, cfg.Kafka.UsageTopic, policy, producer, logger)
	if err != nil {
		issuanceCleanup()
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := issuanceConsumer.Run(ctx, issuanceProc); err != nil {
					logger.Error("issuance consumer stopped", "error", err)
				}
			}()
			go func() {
				if err := usageConsumer.Run(ctx, usageProc); err != nil {
					logger.Error("usage consumer stopped", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			usageCleanup()
			issuanceCleanup()
			return nil
		},
	})
	return nil
}

// StartExpiryScheduler fires the expiration notice scan once per day at
// midnight UTC.
func StartExpiryScheduler(
	lc fx.Lifecycle,
	expiration commands.ExpirationCommands,
	clk clock.Clock,
	logger *slog.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go runExpiryLoop(ctx, expiration, clk, logger)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}

func runExpiryLoop(ctx context.Context, expiration commands.ExpirationCommands, clk clock.Clock, logger *slog.Logger) {
	for {
		timer := time.NewTimer(untilNextMidnight(clk.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := expiration.NotifyExpiring(ctx); err != nil {
			logger.Error("expiry notice scan failed", "error", err)
		}
	}
}

func untilNextMidnight(now time.Time) time.Duration {
	now = now.UTC()
	next := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	return next.Sub(now)
}
