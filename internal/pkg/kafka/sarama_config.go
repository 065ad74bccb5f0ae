package kafka

import (
	"Journaly/internal/api/config"
	"time"

	"github.com/IBM/sarama"
)

func applySasl(c *sarama.Config, kafkaCfg config.KafkaConfig) {
	if kafkaCfg.Sasl.Enable {
		c.Net.SASL.Enable = true
		c.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		c.Net.SASL.User = kafkaCfg.Sasl.Username
		c.Net.SASL.Password = kafkaCfg.Sasl.Password
	}
}

// newSaramaConfig 消费者组配置，手动提交位点
func newSaramaConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()
	applySasl(c, kafkaCfg)

	c.Consumer.Return.Errors = true
	c.Consumer.Offsets.Initial = sarama.OffsetNewest

	c.Consumer.Group.Session.Timeout = time.Duration(kafkaCfg.Consumer.SessionTimeout) * time.Second
	c.Consumer.Group.Heartbeat.Interval = time.Duration(kafkaCfg.Consumer.HeartbeatInterval) * time.Second
	c.Consumer.Group.Rebalance.Timeout = time.Duration(kafkaCfg.Consumer.RebalanceTimeout) * time.Second
	c.Consumer.Offsets.AutoCommit.Enable = false
	c.Consumer.MaxProcessingTime = time.Duration(kafkaCfg.Consumer.MaxProcessingTime) * time.Second

	return c
}

// newProducerConfig 同步生产者，等待全部副本确认
func newProducerConfig(kafkaCfg config.KafkaConfig) *sarama.Config {
	c := sarama.NewConfig()
	applySasl(c, kafkaCfg)

	c.Producer.RequiredAcks = sarama.WaitForAll
	c.Producer.Return.Successes = true
	c.Producer.Return.Errors = true
	c.Producer.Idempotent = false
	if kafkaCfg.Producer.RetryMax > 0 {
		c.Producer.Retry.Max = kafkaCfg.Producer.RetryMax
	}
	if kafkaCfg.Producer.Timeout > 0 {
		c.Producer.Timeout = time.Duration(kafkaCfg.Producer.Timeout) * time.Second
	}
	return c
}
