package stream

import (
	"errors"
	"fmt"

	"coupon-service/internal/pkg/config"
	"coupon-service/internal/pkg/errs"

	"github.com/IBM/sarama"
)

// PartitionInfo describes one partition of a topic for the admin endpoint.
type PartitionInfo struct {
	Partition int32    `json:"partition"`
	Leader    string   `json:"leader"`
	Replicas  []string `json:"replicas"`
}

type Admin struct {
	admin sarama.ClusterAdmin
	cfg   config.KafkaConfig
}

func NewAdmin(cfg config.KafkaConfig) (*Admin, func(), error) {
	saramaCfg := sarama.NewConfig()
	admin, err := sarama.NewClusterAdmin(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to create kafka cluster admin")
	}

	cleanup := func() {
		_ = admin.Close()
	}
	return &Admin{admin: admin, cfg: cfg}, cleanup, nil
}

// EnsureTopics creates the pipeline topics if they do not exist yet. The
// issuance topic gets the configured partition count; the DLQ and usage
// topics are single-partition.
func (a *Admin) EnsureTopics() error {
	topics := []struct {
		name       string
		partitions int32
	}{
		{a.cfg.IssuanceTopic, a.cfg.IssuancePartitions},
		{a.cfg.IssuanceDLQTopic, 1},
		{a.cfg.UsageTopic, 1},
	}

	for _, t := range topics {
		err := a.admin.CreateTopic(t.name, &sarama.TopicDetail{
			NumPartitions:     t.partitions,
			ReplicationFactor: a.cfg.ReplicationFactor,
		}, false)
		if err != nil && !errors.Is(err, sarama.ErrTopicAlreadyExists) {
			var topicErr *sarama.TopicError
			if errors.As(err, &topicErr) && topicErr.Err == sarama.ErrTopicAlreadyExists {
				continue
			}
			return errs.Wrap(err, "failed to create topic "+t.name)
		}
	}
	return nil
}

func (a *Admin) TopicInfo(topic string) ([]PartitionInfo, error) {
	metadata, err := a.admin.DescribeTopics([]string{topic})
	if err != nil {
		return nil, errs.Wrap(err, "failed to describe topic")
	}
	if len(metadata) == 0 {
		return nil, errs.New("topic not found")
	}

	var out []PartitionInfo
	for _, p := range metadata[0].Partitions {
		info := PartitionInfo{
			Partition: p.ID,
			Leader:    fmt.Sprintf("broker-%d", p.Leader),
		}
		for _, r := range p.Replicas {
			info.Replicas = append(info.Replicas, fmt.Sprintf("broker-%d", r))
		}
		out = append(out, info)
	}
	return out, nil
}
