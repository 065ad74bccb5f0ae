package repository

import (
	"Journaly/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepo interface {
	GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	UpdateCommentBody(ctx context.Context, commentID uint64, body string) error
	DeleteComment(ctx context.Context, commentID uint64) error

	CreateThanks(ctx context.Context, thanks *model.CommentThanks) error
	GetThanksByID(ctx context.Context, thanksID uint64) (*model.CommentThanks, error)
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, commentID uint64) (*model.Comment, error) {
	return firstOrNil[model.Comment](s.db.WithContext(ctx).
		Preload("Author").
		Preload("Thanks").
		Where("id = ?", commentID))
}

// CreateComment 写入评论并订阅评论者，同一事务
func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(comment).Error; err != nil {
			return err
		}
		return upsertThreadSubscription(tx, comment.AuthorID, comment.ThreadID)
	})
}

func (s *CommentRepoImpl) UpdateCommentBody(ctx context.Context, commentID uint64, body string) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", commentID).
		Update("body", body).Error
}

// DeleteComment 连同感谢记录一起删除
func (s *CommentRepoImpl) DeleteComment(ctx context.Context, commentID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&model.CommentThanks{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", commentID).Delete(&model.Comment{}).Error
	})
}

func (s *CommentRepoImpl) CreateThanks(ctx context.Context, thanks *model.CommentThanks) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(thanks).Error
}

// GetThanksByID 附带感谢者、被感谢评论的作者与讨论
func (s *CommentRepoImpl) GetThanksByID(ctx context.Context, thanksID uint64) (*model.CommentThanks, error) {
	return firstOrNil[model.CommentThanks](s.db.WithContext(ctx).
		Preload("Author").
		Preload("Comment.Author").
		Preload("Comment.Thread.Post").
		Where("id = ?", thanksID))
}
