package kafka

import (
	"Journaly/internal/api/config"
	"Journaly/internal/pkg/mail"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	emailConsumer sarama.ConsumerGroup
	emailHandler  sarama.ConsumerGroupHandler

	activityConsumer sarama.ConsumerGroup
	activityHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(
	cfg *config.Config,
	sender mail.Sender,
	tracker DeliveryTracker,
	notifier ActivityNotifier,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)
	maxRetries := cfg.Kafka.Consumer.MaxRetries

	emailConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEmail.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	activityConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaActivity.GroupID, saramaCfg)
	if err != nil {
		_ = emailConsumer.Close()
		return nil, err
	}

	return &ConsumerManager{
		emailConsumer:    emailConsumer,
		emailHandler:     NewEmailHandler(sender, tracker, maxRetries),
		activityConsumer: activityConsumer,
		activityHandler:  NewActivityHandler(notifier, maxRetries),
	}, nil
}

func (m *ConsumerManager) run(ctx context.Context, name, topic string, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler) {
	log.Info(name+" consumer started", "topic", topic)
	for {
		if err := group.Consume(ctx, []string{topic}, handler); err != nil {
			log.Error("Error from consumer", "consumer", name, "err", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// Start 启动所有消费者，ctx 结束后关闭
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go m.run(ctx, "Email", cfg.KafkaEmail.Topic, m.emailConsumer, m.emailHandler)
	go m.run(ctx, "Activity", cfg.KafkaActivity.Topic, m.activityConsumer, m.activityHandler)

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.emailConsumer.Close(); err != nil {
		log.Error("Failed to close email consumer", "err", err)
	}
	if err := m.activityConsumer.Close(); err != nil {
		log.Error("Failed to close activity consumer", "err", err)
	}
	return nil
}
