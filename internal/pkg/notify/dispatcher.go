// Package notify 负责把一个领域事件扇出给所有订阅者：每个接收者一封邮件任务和一条站内通知。
package notify

import (
	"Journaly/internal/model"
	"Journaly/internal/pkg/mail"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// EmailQueue 邮件任务入队
type EmailQueue interface {
	Enqueue(ctx context.Context, job *mail.Job) error
}

// InAppStore 查找或创建未读父通知并挂上子事件
type InAppStore interface {
	AttachInApp(ctx context.Context, n *model.InAppNotification, sub model.SubNotification) error
}

// LiveFeed 推送给在线用户并失效未读数缓存
type LiveFeed interface {
	Push(ctx context.Context, n *model.InAppNotification) error
}

// Recorder 持久化投递结果
type Recorder interface {
	RecordReport(ctx context.Context, report *Report) error
}

// InApp 站内通知父记录模板 + 子事件
type InApp struct {
	Notification *model.InAppNotification
	Sub          model.SubNotification
}

// Delivery 发给某个接收者的内容，为 nil 的渠道不投递
type Delivery struct {
	Email *mail.Job
	InApp *InApp
}

type Event struct {
	Type       model.NotificationType
	ActorID    uint64
	Recipients []*model.User
	Build      func(recipient *model.User) Delivery
}

type Dispatcher struct {
	emails      EmailQueue
	inApp       InAppStore
	live        LiveFeed
	recorder    Recorder
	concurrency int
	now         func() time.Time
}

func NewDispatcher(emails EmailQueue, inApp InAppStore, live LiveFeed, recorder Recorder, concurrency int) *Dispatcher {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Dispatcher{
		emails:      emails,
		inApp:       inApp,
		live:        live,
		recorder:    recorder,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Recipients 去重并排除事件发起者本人
func Recipients(actorID uint64, users []*model.User) []*model.User {
	seen := make(map[uint64]bool, len(users))
	res := make([]*model.User, 0, len(users))
	for _, u := range users {
		if u == nil || u.ID == 0 || u.ID == actorID || seen[u.ID] {
			continue
		}
		seen[u.ID] = true
		res = append(res, u)
	}
	return res
}

// Dispatch 并发投递，全部完成后返回。单个接收者失败不影响其他接收者
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) *Report {
	report := &Report{
		EventID: uuid.NewString(),
		Type:    ev.Type,
		ActorID: ev.ActorID,
	}
	recipients := Recipients(ev.ActorID, ev.Recipients)
	report.Results = make([]RecipientResult, len(recipients))

	var g errgroup.Group
	g.SetLimit(d.concurrency)
	for i, u := range recipients {
		g.Go(func() error {
			report.Results[i] = d.deliver(ctx, report.EventID, ev, u)
			return nil
		})
	}
	_ = g.Wait()

	for _, res := range report.Failed() {
		log.WarnContext(ctx, "notification delivery failed",
			"event_id", report.EventID,
			"type", ev.Type,
			"user_id", res.UserID,
			"email_err", res.Email.Err,
			"in_app_err", res.InApp.Err,
		)
	}

	if d.recorder != nil && len(report.Results) > 0 {
		if err := d.recorder.RecordReport(ctx, report); err != nil {
			log.ErrorContext(ctx, "record delivery report error", "event_id", report.EventID, "err", err)
		}
	}
	return report
}

func (d *Dispatcher) deliver(ctx context.Context, eventID string, ev Event, u *model.User) RecipientResult {
	res := RecipientResult{
		UserID: u.ID,
		Email:  Outcome{Status: StatusSkipped},
		InApp:  Outcome{Status: StatusSkipped},
	}
	if ev.Build == nil {
		return res
	}
	delivery := ev.Build(u)

	if job := delivery.Email; job != nil && u.WantsEmail() && d.emails != nil {
		job.ID = eventID + ":" + strconv.FormatUint(u.ID, 10)
		job.UserID = u.ID
		job.ActorID = ev.ActorID
		job.To = u.Email
		job.CreatedAt = d.now()
		res.Job = job
		if err := d.emails.Enqueue(ctx, job); err != nil {
			res.Email = Outcome{Status: StatusFailed, Err: err}
		} else {
			res.Email = Outcome{Status: StatusQueued}
		}
	}

	if in := delivery.InApp; in != nil && in.Notification != nil && d.inApp != nil {
		in.Notification.UserID = u.ID
		if err := d.inApp.AttachInApp(ctx, in.Notification, in.Sub); err != nil {
			res.InApp = Outcome{Status: StatusFailed, Err: err}
			return res
		}
		res.InApp = Outcome{Status: StatusCreated}
		res.NotificationID = in.Notification.ID
		if d.live != nil {
			if err := d.live.Push(ctx, in.Notification); err != nil {
				log.WarnContext(ctx, "push live notification error", "user_id", u.ID, "err", err)
			}
		}
	}
	return res
}
