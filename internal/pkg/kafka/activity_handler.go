package kafka

import (
	"Journaly/internal/model"
	"Journaly/internal/pkg/consts"
	"Journaly/internal/pkg/logger"
	"Journaly/internal/pkg/notify"
	"Journaly/internal/service"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"github.com/IBM/sarama"
)

// ActivityNotifier 由平台其他模块写入的行为对应的通知入口
type ActivityNotifier interface {
	NotifyPostClap(ctx context.Context, clapID uint64) (*notify.Report, error)
	NotifyNewPost(ctx context.Context, postID uint64) (*notify.Report, error)
	NotifyNewFollower(ctx context.Context, followerID, followingID uint64) (*notify.Report, error)
}

type activityKind int

const (
	activityPostClap activityKind = iota + 1
	activityNewPost
	activityNewFollower
)

type activity struct {
	kind        activityKind
	id          uint64
	followerID  uint64
	followingID uint64
}

// ActivityHandler 消费 canal binlog，把点赞、关注、发布转换为通知
type ActivityHandler struct {
	notifier   ActivityNotifier
	maxRetries int
}

func NewActivityHandler(notifier ActivityNotifier, maxRetries int) *ActivityHandler {
	return &ActivityHandler{
		notifier:   notifier,
		maxRetries: maxRetries,
	}
}

func (s *ActivityHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("activity consumer setup")
	return nil
}

func (s *ActivityHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("activity consumer cleanup")
	return nil
}

func (s *ActivityHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-activity consume claim")
	err := pullMessageBatch(session, claim, s.logic, s.maxRetries)
	if err != nil {
		log.Error("topic-activity process batch error", "err", err)
		return err
	}
	log.Info("topic-activity consume claim end")
	return nil
}

func (s *ActivityHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	canalMsg, err := ToCanalMessage(msg)
	if err != nil {
		return nil
	}
	ctx = context.WithValue(ctx, logger.TraceIDKey, fmt.Sprintf("canal-%s-%d", canalMsg.Table, canalMsg.ID))

	for _, a := range activitiesOf(canalMsg) {
		if err := s.handle(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// handle 行已被删除时跳过，其余错误交给重试
func (s *ActivityHandler) handle(ctx context.Context, a activity) error {
	var (
		report *notify.Report
		err    error
	)
	switch a.kind {
	case activityPostClap:
		report, err = s.notifier.NotifyPostClap(ctx, a.id)
	case activityNewPost:
		report, err = s.notifier.NotifyNewPost(ctx, a.id)
	case activityNewFollower:
		report, err = s.notifier.NotifyNewFollower(ctx, a.followerID, a.followingID)
	}
	if err != nil {
		if isMissing(err) {
			log.WarnContext(ctx, "activity source row missing, skipped", "kind", a.kind, "err", err)
			return nil
		}
		return err
	}
	if failed := report.Failed(); len(failed) > 0 {
		log.WarnContext(ctx, "activity delivery partially failed", "kind", a.kind, "failed", len(failed))
	}
	return nil
}

func isMissing(err error) bool {
	for sentinel, code := range service.ErrorMap {
		if code == service.NotFound && errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// activitiesOf 只关心新增的点赞、关注，以及首次发布的帖子
func activitiesOf(m *CanalMessage) []activity {
	var res []activity
	for i, row := range m.Data {
		switch m.Table {
		case consts.TablePostClaps:
			if m.Type == consts.INSERT {
				res = append(res, activity{kind: activityPostClap, id: StrToUint64(row["id"])})
			}
		case consts.TableUserFollows:
			if m.Type == consts.INSERT {
				res = append(res, activity{
					kind:        activityNewFollower,
					followerID:  StrToUint64(row["follower_id"]),
					followingID: StrToUint64(row["following_id"]),
				})
			}
		case consts.TablePosts:
			if justPublished(m.Type, row, m.OldRow(i)) {
				res = append(res, activity{kind: activityNewPost, id: StrToUint64(row["id"])})
			}
		}
	}
	return res
}

func justPublished(eventType string, row, old map[string]interface{}) bool {
	if toString(row["status"]) != string(model.PostStatusPublished) {
		return false
	}
	switch eventType {
	case consts.INSERT:
		return true
	case consts.UPDATE:
		prev, changed := old["status"]
		return changed && toString(prev) == string(model.PostStatusDraft)
	default:
		return false
	}
}
