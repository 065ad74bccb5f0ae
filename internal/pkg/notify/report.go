package notify

import (
	"Journaly/internal/model"
	"Journaly/internal/pkg/mail"
)

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelInApp Channel = "in_app"
)

type Status string

const (
	StatusQueued  Status = "queued"
	StatusCreated Status = "created"
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome 单个渠道的投递结果
type Outcome struct {
	Status Status
	Err    error
}

func (o Outcome) Failed() bool {
	return o.Status == StatusFailed
}

// RecipientResult 单个接收者的投递结果
type RecipientResult struct {
	UserID         uint64
	Email          Outcome
	InApp          Outcome
	Job            *mail.Job
	NotificationID uint64
}

func (r RecipientResult) Failed() bool {
	return r.Email.Failed() || r.InApp.Failed()
}

// Report 一次事件分发的完整结果
type Report struct {
	EventID string
	Type    model.NotificationType
	ActorID uint64
	Results []RecipientResult
}

func (r *Report) Recipients() []uint64 {
	if r == nil {
		return nil
	}
	ids := make([]uint64, 0, len(r.Results))
	for _, res := range r.Results {
		ids = append(ids, res.UserID)
	}
	return ids
}

// Delivered 所有渠道都未失败的接收者
func (r *Report) Delivered() []uint64 {
	if r == nil {
		return nil
	}
	ids := make([]uint64, 0, len(r.Results))
	for _, res := range r.Results {
		if !res.Failed() {
			ids = append(ids, res.UserID)
		}
	}
	return ids
}

func (r *Report) Failed() []RecipientResult {
	if r == nil {
		return nil
	}
	var failed []RecipientResult
	for _, res := range r.Results {
		if res.Failed() {
			failed = append(failed, res)
		}
	}
	return failed
}
