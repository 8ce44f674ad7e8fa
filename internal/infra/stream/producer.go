package stream

import (
	"context"
	"encoding/json"

	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// Producer publishes issuance requests, usage events and dead letters.
// Issuance requests are keyed by campaign code so every request for one
// campaign lands in the same bounded set of partitions (ordering is only
// guaranteed within a partition).
type Producer struct {
	producer sarama.SyncProducer
	cfg      config.KafkaConfig
}

func NewProducer(cfg config.KafkaConfig) (*Producer, func(), error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 3
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to create kafka producer")
	}

	cleanup := func() {
		_ = producer.Close()
	}
	return &Producer{producer: producer, cfg: cfg}, cleanup, nil
}

func (p *Producer) PublishIssuance(_ context.Context, req IssuanceRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return errs.Wrap(err, "failed to encode issuance request")
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.cfg.IssuanceTopic,
		Key:   sarama.StringEncoder(req.CampaignCode),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to publish issuance request"), errs.ErrPublishFailed)
	}
	return nil
}

func (p *Producer) PublishUsage(_ context.Context, event UsageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to encode usage event")
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.cfg.UsageTopic,
		Key:   sarama.StringEncoder(event.Requester),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to publish usage event"), errs.ErrPublishFailed)
	}
	return nil
}

// PublishDeadLetter forwards the original payload untouched, with the failure
// reason in a header, for offline inspection.
func (p *Producer) PublishDeadLetter(_ context.Context, payload []byte, reason string) error {
	_, _, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.cfg.IssuanceDLQTopic,
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("failure-reason"), Value: []byte(reason)},
		},
	})
	if err != nil {
		return errs.Wrap(err, "failed to publish dead letter")
	}
	return nil
}
