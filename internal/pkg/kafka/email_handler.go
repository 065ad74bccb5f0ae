package kafka

import (
	"Journaly/internal/pkg/logger"
	"Journaly/internal/pkg/mail"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// DeliveryTracker 回写邮件投递状态
type DeliveryTracker interface {
	MarkSent(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
}

// EmailHandler 消费邮件任务并调用邮件服务发送
type EmailHandler struct {
	sender     mail.Sender
	tracker    DeliveryTracker
	maxRetries int
}

func NewEmailHandler(sender mail.Sender, tracker DeliveryTracker, maxRetries int) *EmailHandler {
	return &EmailHandler{
		sender:     sender,
		tracker:    tracker,
		maxRetries: maxRetries,
	}
}

func (s *EmailHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("email consumer setup")
	return nil
}

func (s *EmailHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("email consumer cleanup")
	return nil
}

func (s *EmailHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-email consume claim")
	err := pullMessageBatch(session, claim, s.logic, s.maxRetries)
	if err != nil {
		log.Error("topic-email process batch error", "err", err)
		return err
	}
	log.Info("topic-email consume claim end")
	return nil
}

// logic 发送失败只记录到投递日志，由定时任务重新入队
func (s *EmailHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var job mail.Job
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		log.Error("unmarshal email job error", "offset", msg.Offset, "err", err)
		return nil
	}
	ctx = context.WithValue(ctx, logger.TraceIDKey, "email-"+job.ID)

	if err := s.sender.Send(ctx, &job); err != nil {
		log.WarnContext(ctx, "send email failed", "job_id", job.ID, "user_id", job.UserID, "err", err)
		return s.tracker.MarkFailed(ctx, job.ID, err.Error())
	}
	return s.tracker.MarkSent(ctx, job.ID)
}
