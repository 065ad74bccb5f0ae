package job

import (
	"Journaly/internal/pkg/consts"
	"Journaly/internal/pkg/logger"
	"Journaly/internal/pkg/mongo"
	"Journaly/internal/pkg/notify"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const retryLockTTL = 5 * time.Minute

// Locker 多实例部署时保证同一时刻只有一个实例在重投
type Locker interface {
	TryLock(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)
	UnLock(ctx context.Context, key string, value string)
}

// DeliveryRetryJob 扫描投递失败的邮件并重新放回队列
type DeliveryRetryJob struct {
	logs        mongo.DeliveryLogRepo
	queue       notify.EmailQueue
	locker      Locker
	maxAttempts int
	batch       int
}

func NewDeliveryRetryJob(logs mongo.DeliveryLogRepo, queue notify.EmailQueue, locker Locker, maxAttempts, batch int) *DeliveryRetryJob {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if batch <= 0 {
		batch = 100
	}
	return &DeliveryRetryJob{
		logs:        logs,
		queue:       queue,
		locker:      locker,
		maxAttempts: maxAttempts,
		batch:       batch,
	}
}

func (s *DeliveryRetryJob) Run() {
	ctx := logger.NewTraceContext(context.Background(), "job-delivery-retry")
	requeued, err := s.RunOnce(ctx)
	if err != nil {
		log.ErrorContext(ctx, "delivery retry job failed", "err", err)
		return
	}
	if requeued > 0 {
		log.InfoContext(ctx, "delivery retry job finished", "requeued", requeued)
	}
}

// RunOnce 返回本轮重新入队的邮件数
func (s *DeliveryRetryJob) RunOnce(ctx context.Context) (int, error) {
	owner := uuid.NewString()
	ok, err := s.locker.TryLock(ctx, consts.DeliveryRetryLock, owner, retryLockTTL)
	if err != nil {
		return 0, err
	}
	if !ok {
		log.DebugContext(ctx, "delivery retry skipped, lock held elsewhere")
		return 0, nil
	}
	defer s.locker.UnLock(ctx, consts.DeliveryRetryLock, owner)

	failed, err := s.logs.FindRetryable(ctx, s.maxAttempts, s.batch)
	if err != nil {
		return 0, err
	}

	requeued := 0
	for _, entry := range failed {
		if entry.Job == nil {
			continue
		}
		job := *entry.Job
		job.Attempt = entry.Attempts
		if err := s.queue.Enqueue(ctx, &job); err != nil {
			log.WarnContext(ctx, "requeue mail job failed", "job_id", job.ID, "err", err)
			continue
		}
		if err := s.logs.MarkRequeued(ctx, job.ID); err != nil {
			log.WarnContext(ctx, "mark requeued failed", "job_id", job.ID, "err", err)
		}
		requeued++
	}
	return requeued, nil
}
