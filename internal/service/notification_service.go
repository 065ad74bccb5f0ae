package service

import (
	"Journaly/internal/api/dto"
	"Journaly/internal/model"
	"Journaly/internal/pkg/feed"
	"Journaly/internal/pkg/notify"
	"Journaly/internal/repository"
	"context"
	log "log/slog"
)

const defaultFeedLimit = 100

type NotificationService interface {
	ListNotifications(ctx context.Context, userID uint64) ([]*dto.LevelOneDTO, error)
	GetNotificationDetail(ctx context.Context, userID uint64, ids []uint64) (*dto.LevelTwoDTO, error)
	GetUnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error)
	MarkRead(ctx context.Context, userID uint64, ids []uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
	Delete(ctx context.Context, userID uint64, ids []uint64) error

	NotifyThreadComment(ctx context.Context, thread *model.Thread, comment *model.Comment, subscribers []*model.User) *notify.Report
	NotifyPostComment(ctx context.Context, post *model.Post, pc *model.PostComment, subscribers []*model.User) *notify.Report
	NotifyCommentThanks(ctx context.Context, thanksID uint64) (*notify.Report, error)
	NotifyPostClap(ctx context.Context, clapID uint64) (*notify.Report, error)
	NotifyNewPost(ctx context.Context, postID uint64) (*notify.Report, error)
	NotifyNewFollower(ctx context.Context, followerID, followingID uint64) (*notify.Report, error)
}

// Dispatcher 事件扇出
type Dispatcher interface {
	Dispatch(ctx context.Context, ev notify.Event) *notify.Report
}

// UnreadCounter 未读数缓存。SetUnread 只在 version 之后没有发生失效时写入
type UnreadCounter interface {
	GetUnread(ctx context.Context, userID uint64) (int64, bool, error)
	UnreadVersion(ctx context.Context, userID uint64) (int64, error)
	SetUnread(ctx context.Context, userID uint64, count int64, version int64) error
	InvalidateUnread(ctx context.Context, userID uint64) error
}

type notificationServiceImpl struct {
	notificationRepo repository.NotificationRepo
	commentRepo      repository.CommentRepo
	postRepo         repository.PostRepo
	userRepo         repository.UserRepo
	followRepo       repository.UserFollowRepo
	subscriptionRepo repository.SubscriptionRepo
	dispatcher       Dispatcher
	counter          UnreadCounter
	imageURL         feed.ImageURLFunc
	feedLimit        int
}

func NewNotificationService(
	notificationRepo repository.NotificationRepo,
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	followRepo repository.UserFollowRepo,
	subscriptionRepo repository.SubscriptionRepo,
	dispatcher Dispatcher,
	counter UnreadCounter,
	imageURL feed.ImageURLFunc,
	feedLimit int,
) NotificationService {
	if feedLimit <= 0 {
		feedLimit = defaultFeedLimit
	}
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		commentRepo:      commentRepo,
		postRepo:         postRepo,
		userRepo:         userRepo,
		followRepo:       followRepo,
		subscriptionRepo: subscriptionRepo,
		dispatcher:       dispatcher,
		counter:          counter,
		imageURL:         imageURL,
		feedLimit:        feedLimit,
	}
}

func (s *notificationServiceImpl) feedOptions() feed.Options {
	return feed.Options{ImageURL: s.imageURL}
}

// ListNotifications Level One 列表
func (s *notificationServiceImpl) ListNotifications(ctx context.Context, userID uint64) ([]*dto.LevelOneDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	rows, err := s.notificationRepo.ListByUser(ctx, userID, s.feedLimit)
	if err != nil {
		return nil, err
	}
	return feed.BuildFeed(rows, userID, s.feedOptions()), nil
}

// GetNotificationDetail ids 为同一条 Level One 下的父通知
func (s *notificationServiceImpl) GetNotificationDetail(ctx context.Context, userID uint64, ids []uint64) (*dto.LevelTwoDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, ErrParamInvalid
	}

	rows, err := s.notificationRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(rows) != len(ids) {
		return nil, ErrNotificationNotFound
	}
	for _, r := range rows {
		if r.UserID != userID {
			return nil, ErrPermissionDenied
		}
	}
	if len(feed.Group(rows)) != 1 {
		return nil, ErrParamInvalid
	}
	return feed.BuildDetail(rows, s.feedOptions()), nil
}

// GetUnreadCount 优先读缓存
func (s *notificationServiceImpl) GetUnreadCount(ctx context.Context, userID uint64) (*dto.UnreadCountDTO, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if count, ok, err := s.counter.GetUnread(ctx, userID); err == nil && ok {
		return &dto.UnreadCountDTO{UnreadCount: count}, nil
	}

	version, verErr := s.counter.UnreadVersion(ctx, userID)
	count, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	if verErr != nil {
		log.WarnContext(ctx, "read unread version error", "user_id", userID, "err", verErr)
		return &dto.UnreadCountDTO{UnreadCount: count}, nil
	}
	if err := s.counter.SetUnread(ctx, userID, count, version); err != nil {
		log.WarnContext(ctx, "cache unread count error", "user_id", userID, "err", err)
	}
	return &dto.UnreadCountDTO{UnreadCount: count}, nil
}

// MarkRead 未读 -> 已读，已读的通知保持不变
func (s *notificationServiceImpl) MarkRead(ctx context.Context, userID uint64, ids []uint64) error {
	ids, err := s.checkOwnership(ctx, userID, ids)
	if err != nil {
		return err
	}
	affected, err := s.notificationRepo.MarkRead(ctx, userID, ids)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.invalidate(ctx, userID)
	}
	return nil
}

func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	if userID == 0 {
		return ErrAuthRequired
	}
	affected, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		return err
	}
	if affected > 0 {
		s.invalidate(ctx, userID)
	}
	return nil
}

// Delete 删除父通知及其全部子事件
func (s *notificationServiceImpl) Delete(ctx context.Context, userID uint64, ids []uint64) error {
	ids, err := s.checkOwnership(ctx, userID, ids)
	if err != nil {
		return err
	}
	if err := s.notificationRepo.Delete(ctx, userID, ids); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *notificationServiceImpl) checkOwnership(ctx context.Context, userID uint64, ids []uint64) ([]uint64, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, ErrParamInvalid
	}
	owners, err := s.notificationRepo.GetOwners(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		owner, ok := owners[id]
		if !ok {
			return nil, ErrNotificationNotFound
		}
		if owner != userID {
			return nil, ErrPermissionDenied
		}
	}
	return ids, nil
}

func (s *notificationServiceImpl) invalidate(ctx context.Context, userID uint64) {
	if err := s.counter.InvalidateUnread(ctx, userID); err != nil {
		log.WarnContext(ctx, "invalidate unread count error", "user_id", userID, "err", err)
	}
}

func uniqueIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]bool, len(ids))
	res := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		res = append(res, id)
	}
	return res
}
