package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("database.slow_sql_ms", 200)
	v.SetDefault("jwt.issuer", "Journaly")
	v.SetDefault("jwt.expiration_hours", 24)
	v.SetDefault("minio.presign_expiry", 3600)
	v.SetDefault("mail.timeout", 10)
	v.SetDefault("notify.concurrency", 8)
	v.SetDefault("notify.max_attempts", 5)
	v.SetDefault("notify.feed_limit", 100)
	v.SetDefault("notify.unread_cache_ttl", 600)
	v.SetDefault("cron.delivery_retry", "0 */5 * * * *")
	v.SetDefault("cron.retry_batch", 100)
	v.SetDefault("kafka.consumer.session_timeout", 10)
	v.SetDefault("kafka.consumer.heartbeat_interval", 3)
	v.SetDefault("kafka.consumer.rebalance_timeout", 60)
	v.SetDefault("kafka.consumer.max_processing_time", 5)
	v.SetDefault("kafka.consumer.max_retries", 5)
	v.SetDefault("kafka.producer.retry_max", 3)
	v.SetDefault("kafka.producer.timeout", 5)
}
