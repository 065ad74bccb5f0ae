package config

// Config 配置主体
type Config struct {
	Server        ServerConfig     `mapstructure:"server"`
	DB            DBConfig         `mapstructure:"database"`
	Redis         RedisConfig      `mapstructure:"redis"`
	Mongo         MongoConfig      `mapstructure:"mongo"`
	MinIO         MinIOConfig      `mapstructure:"minio"`
	Logstash      LogstashConfig   `mapstructure:"logstash"`
	JWT           JWTConfig        `mapstructure:"jwt"`
	Mail          MailConfig       `mapstructure:"mail"`
	Notify        NotifyConfig     `mapstructure:"notify"`
	Cron          CronConfig       `mapstructure:"cron"`
	Kafka         KafkaConfig      `mapstructure:"kafka"`
	KafkaEmail    KafkaTopicConfig `mapstructure:"kafka_email"`
	KafkaActivity KafkaTopicConfig `mapstructure:"kafka_activity"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`
	SiteURL      string `mapstructure:"site_url"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	// AllowedOrigins 为空时放行任意来源
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	SlowSQL     int    `mapstructure:"slow_sql_ms"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
	UsePublicLink    bool   `mapstructure:"use_public_link"`
	PresignExpiry    int    `mapstructure:"presign_expiry"`
}

// LogstashConfig 远程日志
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
	Level   string `mapstructure:"level"`
}

type JWTConfig struct {
	Secret          string `mapstructure:"secret"`
	Issuer          string `mapstructure:"issuer"`
	ExpirationHours int    `mapstructure:"expiration_hours"`
}

// MailConfig 邮件服务商 HTTP 接口
type MailConfig struct {
	URL      string `mapstructure:"url"`
	ApiKey   string `mapstructure:"api_key"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	Timeout  int    `mapstructure:"timeout"`
}

// NotifyConfig 通知分发
type NotifyConfig struct {
	Concurrency    int `mapstructure:"concurrency"`
	MaxAttempts    int `mapstructure:"max_attempts"`
	FeedLimit      int `mapstructure:"feed_limit"`
	UnreadCacheTTL int `mapstructure:"unread_cache_ttl"`
}

type CronConfig struct {
	DeliveryRetry string `mapstructure:"delivery_retry"`
	RetryBatch    int    `mapstructure:"retry_batch"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
	Producer ProducerConfig `mapstructure:"producer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
	MaxRetries        int `mapstructure:"max_retries"`
}

type ProducerConfig struct {
	RetryMax int `mapstructure:"retry_max"`
	Timeout  int `mapstructure:"timeout"`
}

// KafkaTopicConfig 单个消费者组 / 主题
type KafkaTopicConfig struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
