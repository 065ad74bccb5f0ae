package mongo

import (
	"Journaly/internal/pkg/notify"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type DeliveryLogRepo interface {
	RecordReport(ctx context.Context, report *notify.Report) error
	MarkSent(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
	FindRetryable(ctx context.Context, maxAttempts int, limit int) ([]*DeliveryLog, error)
	MarkRequeued(ctx context.Context, jobID string) error
}

type deliveryLogRepoImpl struct {
	col *mongo.Collection
}

func NewDeliveryLogRepo(db *mongo.Database) DeliveryLogRepo {
	return &deliveryLogRepoImpl{
		col: db.Collection("delivery_log"),
	}
}

// EnsureIndexes 重试扫描用的复合索引
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("delivery_log").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "channel", Value: 1}, {Key: "status", Value: 1}, {Key: "attempts", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

// RecordReport 无序批量 upsert，消费端可能先一步回写了状态
func (s *deliveryLogRepoImpl) RecordReport(ctx context.Context, report *notify.Report) error {
	docs := docsFromReport(report, time.Now())
	if len(docs) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(docs))
	for _, d := range docs {
		models = append(models, recordModel(d))
	}
	_, err := s.col.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

func (s *deliveryLogRepoImpl) MarkSent(ctx context.Context, jobID string) error {
	_, err := s.col.UpdateByID(ctx, jobID, markUpdate(notify.StatusSent, "", time.Now()), options.Update().SetUpsert(true))
	return err
}

func (s *deliveryLogRepoImpl) MarkFailed(ctx context.Context, jobID string, reason string) error {
	_, err := s.col.UpdateByID(ctx, jobID, markUpdate(notify.StatusFailed, reason, time.Now()), options.Update().SetUpsert(true))
	return err
}

// FindRetryable 失败且未超过最大尝试次数的邮件，旧的在前
func (s *deliveryLogRepoImpl) FindRetryable(ctx context.Context, maxAttempts int, limit int) ([]*DeliveryLog, error) {
	filter := bson.M{
		"channel":  notify.ChannelEmail,
		"status":   notify.StatusFailed,
		"attempts": bson.M{"$lt": maxAttempts},
		"job":      bson.M{"$exists": true},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := s.col.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var logs []*DeliveryLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *deliveryLogRepoImpl) MarkRequeued(ctx context.Context, jobID string) error {
	_, err := s.col.UpdateByID(ctx, jobID, bson.M{
		"$set": bson.M{"status": notify.StatusQueued, "updated_at": time.Now()},
	})
	return err
}
