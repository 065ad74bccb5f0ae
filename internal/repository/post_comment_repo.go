package repository

import (
	"Journaly/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostCommentRepo interface {
	GetPostCommentByID(ctx context.Context, id uint64) (*model.PostComment, error)
	CreatePostComment(ctx context.Context, pc *model.PostComment) error
	UpdatePostCommentBody(ctx context.Context, id uint64, body string) error
	DeletePostComment(ctx context.Context, id uint64) error
}

type PostCommentRepoImpl struct {
	db *gorm.DB
}

func NewPostCommentRepo(db *gorm.DB) PostCommentRepo {
	return &PostCommentRepoImpl{db: db}
}

func (s *PostCommentRepoImpl) GetPostCommentByID(ctx context.Context, id uint64) (*model.PostComment, error) {
	return firstOrNil[model.PostComment](s.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", id))
}

// CreatePostComment 写入评论并订阅评论者，同一事务
func (s *PostCommentRepoImpl) CreatePostComment(ctx context.Context, pc *model.PostComment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(pc).Error; err != nil {
			return err
		}
		return upsertPostCommentSubscription(tx, pc.AuthorID, pc.PostID)
	})
}

func (s *PostCommentRepoImpl) UpdatePostCommentBody(ctx context.Context, id uint64, body string) error {
	return s.db.WithContext(ctx).Model(&model.PostComment{}).
		Where("id = ?", id).
		Update("body", body).Error
}

func (s *PostCommentRepoImpl) DeletePostComment(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.PostComment{}).Error
}
