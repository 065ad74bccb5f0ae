package repository

import (
	"Journaly/internal/model"
	"context"

	"gorm.io/gorm"
)

type SubscriptionRepo interface {
	UpsertThreadSubscription(ctx context.Context, userID, threadID uint64) error
	UpsertPostCommentSubscription(ctx context.Context, userID, postID uint64) error
	GetThreadSubscribers(ctx context.Context, threadID uint64) ([]*model.User, error)
	GetPostCommentSubscribers(ctx context.Context, postID uint64) ([]*model.User, error)
}

type SubscriptionRepoImpl struct {
	db *gorm.DB
}

func NewSubscriptionRepo(db *gorm.DB) SubscriptionRepo {
	return &SubscriptionRepoImpl{db: db}
}

func upsertThreadSubscription(tx *gorm.DB, userID, threadID uint64) error {
	return tx.Clauses(doNothing).
		Create(&model.ThreadSubscription{UserID: userID, ThreadID: threadID}).Error
}

func upsertPostCommentSubscription(tx *gorm.DB, userID, postID uint64) error {
	return tx.Clauses(doNothing).
		Create(&model.PostCommentSubscription{UserID: userID, PostID: postID}).Error
}

// UpsertThreadSubscription 已订阅时不做任何事
func (s *SubscriptionRepoImpl) UpsertThreadSubscription(ctx context.Context, userID, threadID uint64) error {
	return upsertThreadSubscription(s.db.WithContext(ctx), userID, threadID)
}

func (s *SubscriptionRepoImpl) UpsertPostCommentSubscription(ctx context.Context, userID, postID uint64) error {
	return upsertPostCommentSubscription(s.db.WithContext(ctx), userID, postID)
}

func (s *SubscriptionRepoImpl) GetThreadSubscribers(ctx context.Context, threadID uint64) ([]*model.User, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).
		Joins("JOIN thread_subscriptions ON thread_subscriptions.user_id = users.id").
		Where("thread_subscriptions.thread_id = ?", threadID).
		Find(&users).Error
	return users, err
}

func (s *SubscriptionRepoImpl) GetPostCommentSubscribers(ctx context.Context, postID uint64) ([]*model.User, error) {
	var users []*model.User
	err := s.db.WithContext(ctx).
		Joins("JOIN post_comment_subscriptions ON post_comment_subscriptions.user_id = users.id").
		Where("post_comment_subscriptions.post_id = ?", postID).
		Find(&users).Error
	return users, err
}
