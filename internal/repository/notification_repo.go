package repository

import (
	"Journaly/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepo interface {
	AttachInApp(ctx context.Context, n *model.InAppNotification, sub model.SubNotification) error
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*model.InAppNotification, error)
	GetByIDs(ctx context.Context, ids []uint64) ([]*model.InAppNotification, error)
	GetOwners(ctx context.Context, ids []uint64) (map[uint64]uint64, error)
	MarkRead(ctx context.Context, userID uint64, ids []uint64) (int64, error)
	MarkAllRead(ctx context.Context, userID uint64) (int64, error)
	Delete(ctx context.Context, userID uint64, ids []uint64) error
	CountUnread(ctx context.Context, userID uint64) (int64, error)
}

type NotificationRepoImpl struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &NotificationRepoImpl{db: db}
}

// withRelations 聚合所需的全部关联
func withRelations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Post.Author").
		Preload("TriggeringUser").
		Preload("ThreadComments.Comment.Author").
		Preload("ThreadComments.Comment.Thread").
		Preload("PostComments.PostComment.Author").
		Preload("ThreadCommentThanks.Thanks.Author").
		Preload("ThreadCommentThanks.Thanks.Comment.Thread").
		Preload("PostClaps.PostClap.Author").
		Preload("NewPosts.Post.Author").
		Preload("NewFollowers.FollowingUser")
}

func whereNullable(q *gorm.DB, column string, v *uint64) *gorm.DB {
	if v == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *v)
}

// AttachInApp 找到 (用户, 类型, key) 下的未读父通知并挂上子事件，没有则新建；父通知的 bumped_at 会被刷新
func (s *NotificationRepoImpl) AttachInApp(ctx context.Context, n *model.InAppNotification, sub model.SubNotification) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND type = ? AND read_status = ?", n.UserID, n.Type, model.ReadStatusUnread)
		q = whereNullable(q, "post_id", n.PostID)
		q = whereNullable(q, "triggering_user_id", n.TriggeringUserID)

		var parent model.InAppNotification
		err := q.Order("id DESC").First(&parent).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			n.ReadStatus = model.ReadStatusUnread
			n.BumpedAt = now
			if err := tx.Omit(clause.Associations).Create(n).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			if err := tx.Model(&parent).Update("bumped_at", now).Error; err != nil {
				return err
			}
			n.ID = parent.ID
			n.ReadStatus = parent.ReadStatus
			n.BumpedAt = now
			n.CreatedAt = parent.CreatedAt
		}

		if sub == nil {
			return nil
		}
		sub.SetNotificationID(n.ID)
		return tx.Omit(clause.Associations).Create(sub).Error
	})
}

// ListByUser 按最近活跃倒序
func (s *NotificationRepoImpl) ListByUser(ctx context.Context, userID uint64, limit int) ([]*model.InAppNotification, error) {
	var list []*model.InAppNotification
	err := withRelations(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("bumped_at DESC, id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (s *NotificationRepoImpl) GetByIDs(ctx context.Context, ids []uint64) ([]*model.InAppNotification, error) {
	var list []*model.InAppNotification
	err := withRelations(s.db.WithContext(ctx)).
		Where("id IN ?", ids).
		Find(&list).Error
	return list, err
}

// GetOwners id -> user_id，不存在的 id 不出现在结果中
func (s *NotificationRepoImpl) GetOwners(ctx context.Context, ids []uint64) (map[uint64]uint64, error) {
	var rows []struct {
		ID     uint64
		UserID uint64
	}
	err := s.db.WithContext(ctx).Model(&model.InAppNotification{}).
		Select("id, user_id").
		Where("id IN ?", ids).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	owners := make(map[uint64]uint64, len(rows))
	for _, r := range rows {
		owners[r.ID] = r.UserID
	}
	return owners, nil
}

// MarkRead 只会把未读改为已读
func (s *NotificationRepoImpl) MarkRead(ctx context.Context, userID uint64, ids []uint64) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.InAppNotification{}).
		Where("user_id = ? AND id IN ? AND read_status = ?", userID, ids, model.ReadStatusUnread).
		Update("read_status", model.ReadStatusRead)
	return res.RowsAffected, res.Error
}

func (s *NotificationRepoImpl) MarkAllRead(ctx context.Context, userID uint64) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.InAppNotification{}).
		Where("user_id = ? AND read_status = ?", userID, model.ReadStatusUnread).
		Update("read_status", model.ReadStatusRead)
	return res.RowsAffected, res.Error
}

// Delete 先删子事件再删父通知
func (s *NotificationRepoImpl) Delete(ctx context.Context, userID uint64, ids []uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owned []uint64
		if err := tx.Model(&model.InAppNotification{}).
			Where("user_id = ? AND id IN ?", userID, ids).
			Pluck("id", &owned).Error; err != nil {
			return err
		}
		if len(owned) == 0 {
			return nil
		}

		subs := []any{
			&model.ThreadCommentNotification{},
			&model.PostCommentNotification{},
			&model.ThreadCommentThanksNotification{},
			&model.PostClapNotification{},
			&model.NewPostNotification{},
			&model.NewFollowerNotification{},
		}
		for _, m := range subs {
			if err := tx.Where("notification_id IN ?", owned).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Where("id IN ?", owned).Delete(&model.InAppNotification{}).Error
	})
}

func (s *NotificationRepoImpl) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.InAppNotification{}).
		Where("user_id = ? AND read_status = ?", userID, model.ReadStatusUnread).
		Count(&count).Error
	return count, err
}
