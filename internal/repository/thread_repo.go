package repository

import (
	"Journaly/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ThreadRepo interface {
	GetThreadByID(ctx context.Context, threadID uint64) (*model.Thread, error)
	GetThreadWithComments(ctx context.Context, threadID uint64) (*model.Thread, error)
	CreateThread(ctx context.Context, thread *model.Thread, subscriberIDs []uint64) error
	DeleteThread(ctx context.Context, threadID uint64) error
}

type ThreadRepoImpl struct {
	db *gorm.DB
}

func NewThreadRepo(db *gorm.DB) ThreadRepo {
	return &ThreadRepoImpl{db: db}
}

// GetThreadByID 附带所属帖子及作者
func (s *ThreadRepoImpl) GetThreadByID(ctx context.Context, threadID uint64) (*model.Thread, error) {
	return firstOrNil[model.Thread](s.db.WithContext(ctx).
		Preload("Post.Author").
		Where("id = ?", threadID))
}

func (s *ThreadRepoImpl) GetThreadWithComments(ctx context.Context, threadID uint64) (*model.Thread, error) {
	return firstOrNil[model.Thread](s.db.WithContext(ctx).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		Preload("Comments.Author").
		Preload("Comments.Thanks").
		Where("id = ?", threadID))
}

// CreateThread 创建讨论并订阅给定用户
func (s *ThreadRepoImpl) CreateThread(ctx context.Context, thread *model.Thread, subscriberIDs []uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(thread).Error; err != nil {
			return err
		}
		for _, uid := range subscriberIDs {
			if err := upsertThreadSubscription(tx, uid, thread.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteThread 仅允许删除空讨论，先删订阅再删讨论
func (s *ThreadRepoImpl) DeleteThread(ctx context.Context, threadID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var thread model.Thread
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", threadID).
			First(&thread).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.Comment{}).Where("thread_id = ?", threadID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrThreadHasComments
		}

		if err := tx.Where("thread_id = ?", threadID).Delete(&model.ThreadSubscription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&thread).Error
	})
}
