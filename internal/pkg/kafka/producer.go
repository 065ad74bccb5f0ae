package kafka

import (
	"Journaly/internal/api/config"
	"Journaly/internal/pkg/mail"
	"context"
	log "log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// EmailProducer 把邮件任务写入邮件主题
type EmailProducer struct {
	producer sarama.SyncProducer
	topic    string
}

func NewEmailProducer(cfg *config.Config) (*EmailProducer, error) {
	producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, newProducerConfig(cfg.Kafka))
	if err != nil {
		return nil, errors.Wrap(err, "create email producer")
	}
	return NewEmailProducerWith(producer, cfg.KafkaEmail.Topic), nil
}

func NewEmailProducerWith(producer sarama.SyncProducer, topic string) *EmailProducer {
	return &EmailProducer{producer: producer, topic: topic}
}

// Enqueue 以接收者 id 作为分区键
func (s *EmailProducer) Enqueue(ctx context.Context, job *mail.Job) error {
	value, err := json.Marshal(job)
	if err != nil {
		return errors.Wrap(err, "marshal email job")
	}
	msg := &sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(strconv.FormatUint(job.UserID, 10)),
		Value: sarama.ByteEncoder(value),
	}
	partition, offset, err := s.producer.SendMessage(msg)
	if err != nil {
		return errors.Wrapf(err, "enqueue email job %s", job.ID)
	}
	log.DebugContext(ctx, "email job enqueued", "job_id", job.ID, "partition", partition, "offset", offset)
	return nil
}

func (s *EmailProducer) Close() error {
	return s.producer.Close()
}
