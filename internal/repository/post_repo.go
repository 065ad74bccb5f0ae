package repository

import (
	"Journaly/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostRepo interface {
	GetPostByID(ctx context.Context, postID uint64) (*model.Post, error)
	GetPostClapByID(ctx context.Context, clapID uint64) (*model.PostClap, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) GetPostByID(ctx context.Context, postID uint64) (*model.Post, error) {
	return firstOrNil[model.Post](s.db.WithContext(ctx).
		Preload("Author").
		Where("id = ?", postID))
}

// GetPostClapByID 附带鼓掌用户与帖子作者
func (s *PostRepoImpl) GetPostClapByID(ctx context.Context, clapID uint64) (*model.PostClap, error) {
	return firstOrNil[model.PostClap](s.db.WithContext(ctx).
		Preload("Author").
		Preload("Post.Author").
		Where("id = ?", clapID))
}
