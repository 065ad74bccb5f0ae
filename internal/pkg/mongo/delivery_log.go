package mongo

import (
	"Journaly/internal/pkg/mail"
	"Journaly/internal/pkg/notify"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DeliveryLog 单个接收者在单个渠道上的投递记录
type DeliveryLog struct {
	ID             string         `bson:"_id" json:"id"`
	EventID        string         `bson:"event_id" json:"eventId"`
	Type           string         `bson:"type" json:"type"`
	Channel        notify.Channel `bson:"channel" json:"channel"`
	UserID         uint64         `bson:"user_id" json:"userId"`
	ActorID        uint64         `bson:"actor_id" json:"actorId"`
	NotificationID uint64         `bson:"notification_id,omitempty" json:"notificationId"`
	Status         notify.Status  `bson:"status" json:"status"`
	Error          string         `bson:"error,omitempty" json:"error"`
	Attempts       int            `bson:"attempts" json:"attempts"`
	Job            *mail.Job      `bson:"job,omitempty" json:"job"`
	CreatedAt      time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time      `bson:"updated_at" json:"updatedAt"`
}

// docsFromReport 邮件记录以任务 id 为主键，便于消费端回写
func docsFromReport(report *notify.Report, now time.Time) []*DeliveryLog {
	if report == nil {
		return nil
	}
	docs := make([]*DeliveryLog, 0, len(report.Results)*2)
	for _, res := range report.Results {
		base := DeliveryLog{
			EventID:   report.EventID,
			Type:      string(report.Type),
			UserID:    res.UserID,
			ActorID:   report.ActorID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if res.Job != nil {
			email := base
			email.ID = res.Job.ID
			email.Channel = notify.ChannelEmail
			email.Status = res.Email.Status
			email.Job = res.Job
			if res.Email.Err != nil {
				email.Error = res.Email.Err.Error()
				email.Attempts = 1
			}
			docs = append(docs, &email)
		}

		if res.InApp.Status != notify.StatusSkipped {
			inApp := base
			inApp.ID = report.EventID + ":" + strconv.FormatUint(res.UserID, 10) + ":" + string(notify.ChannelInApp)
			inApp.Channel = notify.ChannelInApp
			inApp.Status = res.InApp.Status
			inApp.NotificationID = res.NotificationID
			if res.InApp.Err != nil {
				inApp.Error = res.InApp.Err.Error()
			}
			docs = append(docs, &inApp)
		}
	}
	return docs
}

// recordModel 描述字段总是写入；状态字段只在插入时写，不覆盖消费端的回写
func recordModel(d *DeliveryLog) *mongo.UpdateOneModel {
	set := bson.M{
		"event_id":   d.EventID,
		"type":       d.Type,
		"channel":    d.Channel,
		"user_id":    d.UserID,
		"actor_id":   d.ActorID,
		"created_at": d.CreatedAt,
	}
	if d.NotificationID != 0 {
		set["notification_id"] = d.NotificationID
	}
	if d.Job != nil {
		set["job"] = d.Job
	}
	return mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": d.ID}).
		SetUpdate(bson.M{
			"$set": set,
			"$setOnInsert": bson.M{
				"status":     d.Status,
				"error":      d.Error,
				"attempts":   d.Attempts,
				"updated_at": d.UpdatedAt,
			},
		}).
		SetUpsert(true)
}

// markUpdate 消费端回写邮件结果，记录不存在时直接创建
func markUpdate(status notify.Status, reason string, now time.Time) bson.M {
	return bson.M{
		"$set": bson.M{
			"channel":    notify.ChannelEmail,
			"status":     status,
			"error":      reason,
			"updated_at": now,
		},
		"$inc": bson.M{"attempts": 1},
	}
}
