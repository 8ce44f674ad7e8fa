package stream

import (
	"context"
	"log/slog"
	"time"

	"coupon-service/internal/pkg/errs"
	"coupon-service/internal/pkg/metrics"

	"github.com/IBM/sarama"
)

// Handler processes one message payload. Returning an error wrapped with
// Permanent routes the message straight to the dead-letter sink; any other
// error is retried under the consumer's RetryPolicy.
type Handler interface {
	Handle(ctx context.Context, payload []byte) error
}

type HandlerFunc func(ctx context.Context, payload []byte) error

func (f HandlerFunc) Handle(ctx context.Context, payload []byte) error { return f(ctx, payload) }

// DeadLetterSink receives messages that exhausted retry or were classified
// non-retryable.
type DeadLetterSink interface {
	PublishDeadLetter(ctx context.Context, payload []byte, reason string) error
}

// Consumer drives a sarama consumer group with manual acknowledgment: an
// offset is marked only after the handler committed or the message was
// dead-lettered, so a crash in between causes redelivery, never loss.
// Partitions are consumed in parallel; within a partition processing is
// sequential.
type Consumer struct {
	group  sarama.ConsumerGroup
	topic  string
	policy RetryPolicy
	dlq    DeadLetterSink
	logger *slog.Logger
}

func NewConsumer(brokers []string, groupID, topic string, policy RetryPolicy, dlq DeadLetterSink, logger *slog.Logger) (*Consumer, func(), error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaCfg.Consumer.Offsets.AutoCommit.Enable = false
	saramaCfg.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, saramaCfg)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to create kafka consumer group")
	}

	cleanup := func() {
		_ = group.Close()
	}
	return &Consumer{
		group:  group,
		topic:  topic,
		policy: policy,
		dlq:    dlq,
		logger: logger,
	}, cleanup, nil
}

// Run blocks until ctx is cancelled, rejoining the group after rebalances.
func (c *Consumer) Run(ctx context.Context, handler Handler) error {
	h := &groupHandler{consumer: c, handler: handler}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, h); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("consumer group session failed", "topic", c.topic, "error", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

type groupHandler struct {
	consumer *Consumer
	handler  Handler
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()
	for msg := range claim.Messages() {
		if err := h.consumer.process(ctx, h.handler, msg.Value); err != nil {
			// the context is gone or the dead-letter publish failed; leave
			// the offset unmarked so the message is redelivered
			return err
		}
		session.MarkMessage(msg, "")
		session.Commit()
	}
	return nil
}

// process applies the retry policy to one message. It returns nil once the
// message is either committed or dead-lettered; the partition never blocks on
// a single bad message.
func (c *Consumer) process(ctx context.Context, handler Handler, payload []byte) error {
	var lastErr error
	for attempt := 0; attempt <= c.policy.MaxAttempts; attempt++ {
		if attempt > 0 {
			metrics.PipelineRetries.Inc()
			select {
			case <-time.After(c.policy.Delay(attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = handler.Handle(ctx, payload)
		if lastErr == nil {
			return nil
		}
		if !c.policy.IsRetryable(lastErr) {
			c.logger.Warn("non-retryable message routed to dead letter", "topic", c.topic, "error", lastErr)
			return c.deadLetter(ctx, payload, lastErr, "poison")
		}
		c.logger.Warn("message processing failed, will retry", "topic", c.topic, "attempt", attempt, "error", lastErr)
	}

	c.logger.Error("retries exhausted, routing to dead letter", "topic", c.topic, "error", lastErr)
	return c.deadLetter(ctx, payload, lastErr, "retry_exhausted")
}

// deadLetter hands the message to the sink. A failed publish is returned as an
// error so the offset stays unmarked: a message must land in the ledger or the
// dead-letter topic before it is acknowledged.
func (c *Consumer) deadLetter(ctx context.Context, payload []byte, cause error, class string) error {
	if err := c.dlq.PublishDeadLetter(ctx, payload, cause.Error()); err != nil {
		c.logger.Error("failed to publish dead letter", "topic", c.topic, "error", err)
		return errs.Wrap(err, "failed to publish dead letter")
	}
	metrics.DeadLettered.WithLabelValues(class).Inc()
	return nil
}
