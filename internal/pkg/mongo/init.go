package mongo

import (
	"Journaly/internal/api/config"
	"Journaly/internal/pkg/logger"
	"context"
	"errors"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var client *mongo.Client

// InitMongo 建立连接并返回投递日志所在的 Database
func InitMongo(cfg config.MongoConfig) (*mongo.Database, error) {
	if cfg.Database == "" {
		return nil, errors.New("mongo database name is empty")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetAppName("journaly").
		SetServerSelectionTimeout(5*time.Second).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, err
	}
	if err = c.Ping(ctx, readpref.Primary()); err != nil {
		_ = c.Disconnect(context.Background())
		return nil, err
	}

	client = c
	log.Info("MongoDB initialized successfully", "db", cfg.Database)
	return c.Database(cfg.Database), nil
}

// Disconnect 退出时释放连接池
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
